package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
)

func TestGrossAmount(t *testing.T) {
	li := entity.LineItem{
		NetWt:       8.0,
		Wastage:     0.5,
		Rate:        6200,
		MC:          0,
		StoneAmount: 0,
		MiscAmount:  0,
	}
	// (8.0 + 0.5) * 6200 = 52700
	assert.InDelta(t, 52700, GrossAmount(li), 0.001)
}

func TestGSTAndGrandTotal(t *testing.T) {
	li := entity.LineItem{
		NetWt:   8.0,
		Wastage: 0.5,
		Rate:    6200,
		GSTPer:  3,
	}
	assert.InDelta(t, 1581, GSTAmount(li), 0.001)
	assert.InDelta(t, 54281, GrandTotal(li), 0.001)
}

func TestZeroGSTPercent(t *testing.T) {
	li := entity.LineItem{NetWt: 10, Rate: 100}
	assert.InDelta(t, 0, GSTAmount(li), 0.001)
	assert.InDelta(t, GrossAmount(li), GrandTotal(li), 0.001)
}

func TestGrossIncludesChargesAndStones(t *testing.T) {
	li := entity.LineItem{
		NetWt:       2,
		Wastage:     0.1,
		Rate:        1000,
		MC:          150,
		StoneAmount: 500,
		MiscAmount:  25,
	}
	// (2 + 0.1)*1000 + 150 + 500 + 25 = 2775
	assert.InDelta(t, 2775, GrossAmount(li), 0.001)
}

func TestSumMatchesRowLevel(t *testing.T) {
	items := []entity.LineItem{
		{Pcs: 1, GrsWt: 8.5, NetWt: 8.0, Wastage: 0.5, Rate: 6200, GSTPer: 3},
		{Pcs: 2, GrsWt: 12.0, NetWt: 11.5, Rate: 75, MC: 40, GSTPer: 3},
		{Pcs: 1, GrsWt: 1.2, NetWt: 1.2, StoneAmount: 1500, GSTPer: 3},
	}

	var wantGross, wantGST, wantGrand float64
	for _, li := range items {
		wantGross += GrossAmount(li)
		wantGST += GSTAmount(li)
		wantGrand += GrandTotal(li)
	}

	got := Sum(items)
	assert.InDelta(t, wantGross, got.Gross, 0.001)
	assert.InDelta(t, wantGST, got.GST, 0.001)
	assert.InDelta(t, wantGrand, got.Grand, 0.001)
	assert.InDelta(t, 4, got.Pcs, 0.001)
	assert.InDelta(t, 21.7, got.GrsWt, 0.001)
}

func TestSumEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, Sum(nil))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{790.5, 790.5},
		{0, 0},
		{-2.675, -2.68},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 0.0001)
	}
}

func TestTaxSplit(t *testing.T) {
	// 52700 * 1.5% = 790.50
	assert.InDelta(t, 790.5, TaxSplit(52700, GSTSplitPer), 0.0001)
	// rounding to 2dp
	assert.InDelta(t, 0.15, TaxSplit(10.01, 1.5), 0.0001)
}
