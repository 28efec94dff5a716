package entity

import "fmt"

// LineItem is one priced component row held in an operator's pending
// set. A single tag may decompose into several line items (metal plus
// stone groups), each stamped with the same item/tag/employee triple.
type LineItem struct {
	ItemID      int     `json:"item_id"`
	TagNo       string  `json:"tag_no"`
	EmpID       string  `json:"emp_id"`
	Pcs         float64 `json:"pcs"`
	GrsWt       float64 `json:"grswt"`
	NetWt       float64 `json:"netwt"`
	PureWt      float64 `json:"purewt"`
	Rate        float64 `json:"rate"`
	Wastage     float64 `json:"wastage"`
	MC          float64 `json:"mc"`
	StoneAmount float64 `json:"stone_amount"`
	MiscAmount  float64 `json:"misc_amount"`
	GSTPer      float64 `json:"gst_per"`
	MetalID     float64 `json:"metal_id"`
	CatCode     float64 `json:"cat_code"`
}

// Key identifies the tag load this line item came from. Rows sharing
// a key were fetched together and are deduplicated together.
func (li LineItem) Key() string {
	return fmt.Sprintf("%d|%s|%s", li.ItemID, li.TagNo, li.EmpID)
}
