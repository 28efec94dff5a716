package entity

// SlipStone is one stone line shown under a slip item.
type SlipStone struct {
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
	Amount float64 `json:"amount"`
}

// SlipItem is one merged item block on the estimation slip. Rows
// sharing the same itemid/tagno pair are merged into a single block.
type SlipItem struct {
	Seq         int         `json:"seq"`
	ItemID      int         `json:"item_id"`
	TagNo       string      `json:"tag_no"`
	ItemName    string      `json:"item_name"`
	SubItemName string      `json:"sub_item_name,omitempty"`
	Pcs         float64     `json:"pcs"`
	GrsWt       float64     `json:"grswt"`
	NetWt       float64     `json:"netwt"`
	WastPer     float64     `json:"wastper"`
	Amount      float64     `json:"amount"`
	MCAmount    float64     `json:"mc_amount"`
	Stones      []SlipStone `json:"stones,omitempty"`
}

// Slip is the composed estimation slip: everything the receipt
// renderer needs, independent of any output device.
type Slip struct {
	TranNo     string     `json:"tranno"`
	CompanyID  string     `json:"company_id"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	GoldRate   float64    `json:"gold_rate"`
	SilverRate float64    `json:"silver_rate"`
	Items      []SlipItem `json:"items"`

	TotalPcs   float64 `json:"total_pcs"`
	TotalGrsWt float64 `json:"total_grswt"`
	BaseAmount float64 `json:"base_amount"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	GrandTotal float64 `json:"grand_total"`

	OfferWeight    float64 `json:"offer_weight,omitempty"`
	OfferBoardRate float64 `json:"offer_board_rate,omitempty"`
	OfferDiscount  float64 `json:"offer_discount,omitempty"`

	Username string `json:"username"`
}
