// Package pricing implements the derived-totals math applied to
// estimation line items: gross amount, GST, and grand total, computed
// identically at row level and in aggregate.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
)

// GSTSplitPer is the per-component GST percentage applied to each
// taxable item: one SGST entry and one CGST entry at this rate.
const GSTSplitPer = 1.5

// Round2 rounds to two decimal places using half-up rounding.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// GrossAmount computes the gross value of a single line item:
// (net weight + wastage) * rate + making charge + stone + misc.
func GrossAmount(li entity.LineItem) float64 {
	return (li.NetWt+li.Wastage)*li.Rate + li.MC + li.StoneAmount + li.MiscAmount
}

// GSTAmount computes the GST on a line item's gross amount using the
// item's own GST percentage.
func GSTAmount(li entity.LineItem) float64 {
	return GrossAmount(li) * li.GSTPer / 100
}

// GrandTotal computes gross plus GST for a single line item.
func GrandTotal(li entity.LineItem) float64 {
	return GrossAmount(li) + GSTAmount(li)
}

// Totals holds the aggregate view over a set of line items.
type Totals struct {
	Pcs         float64 `json:"pcs"`
	GrsWt       float64 `json:"grswt"`
	NetWt       float64 `json:"netwt"`
	StoneAmount float64 `json:"stone_amount"`
	MiscAmount  float64 `json:"misc_amount"`
	Gross       float64 `json:"gross"`
	GST         float64 `json:"gst"`
	Grand       float64 `json:"grand"`
}

// Sum aggregates line items. Each component is the sum of the
// corresponding row-level value, so aggregate totals always equal the
// sum of the displayed rows.
func Sum(items []entity.LineItem) Totals {
	var t Totals
	for _, li := range items {
		t.Pcs += li.Pcs
		t.GrsWt += li.GrsWt
		t.NetWt += li.NetWt
		t.StoneAmount += li.StoneAmount
		t.MiscAmount += li.MiscAmount
		t.Gross += GrossAmount(li)
		t.GST += GSTAmount(li)
		t.Grand += GrandTotal(li)
	}
	return t
}

// TaxSplit computes one GST component (SGST or CGST) on an amount at
// the given percentage, rounded to two decimals.
func TaxSplit(amount, per float64) float64 {
	return Round2(amount * per / 100)
}
