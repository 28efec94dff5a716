package request

// EntryRequest is one item/tag/employee triple to load into the grid.
// Fields arrive as strings because they come straight off keyboard or
// barcode input.
type EntryRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	TagNo  string `json:"tag_no" binding:"required"`
	EmpID  string `json:"emp_id" binding:"required"`
}

// RemoveEntryRequest identifies the triple whose rows should be
// removed from the grid.
type RemoveEntryRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	TagNo  string `json:"tag_no" binding:"required"`
	EmpID  string `json:"emp_id" binding:"required"`
}

// ScanRequest is a raw barcode payload plus the field it landed in.
type ScanRequest struct {
	Field string `json:"field" binding:"required,oneof=item_id tag_no"`
	Data  string `json:"data" binding:"required"`
}
