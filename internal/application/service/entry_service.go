package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/internal/domain/erp"
	"github.com/jewelsoft/estima-api/internal/domain/pricing"
	"github.com/jewelsoft/estima-api/pkg/apperror"
)

// EntryService handles line-item capture: validating a tag against the
// billing backend and loading its priced rows into the operator's
// pending set.
type EntryService struct {
	client  erp.Client
	pending *PendingStore
}

// NewEntryService creates a new entry service
func NewEntryService(client erp.Client, pending *PendingStore) *EntryService {
	return &EntryService{client: client, pending: pending}
}

// EntryInput is one item/tag/employee triple to load.
type EntryInput struct {
	ItemID string
	TagNo  string
	EmpID  string
}

// EntryResult is the outcome of a successful entry: the rows appended
// plus the running totals over the whole pending set.
type EntryResult struct {
	Added  []entity.LineItem `json:"added"`
	Items  []entity.LineItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// SubmitEntry validates the triple, checks issue status and duplicates,
// fetches the estimation rows, and appends them to the pending set.
func (s *EntryService) SubmitEntry(ctx context.Context, operator entity.Operator, input EntryInput) (*EntryResult, error) {
	itemIDStr := strings.TrimSpace(input.ItemID)
	tagNo := strings.TrimSpace(input.TagNo)
	empID := strings.TrimSpace(input.EmpID)

	if itemIDStr == "" || tagNo == "" || empID == "" {
		return nil, apperror.NewValidationError("Please enter valid Item ID, Tag No, and Employee", nil)
	}

	itemID, err := strconv.Atoi(itemIDStr)
	if err != nil {
		return nil, apperror.NewValidationError("Item ID must be a number", []apperror.FieldError{
			{Field: "item_id", Message: "must be numeric"},
		})
	}

	// Reject tags the backend already issued.
	status, err := s.client.TagIssueStatus(ctx, itemID, tagNo)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to check tag status")
	}
	if status != nil && status.TranDate != "" {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Tag already issued on %s, Trn No: %s", status.TranDate, status.TranNo))
	}

	// Reject triples already loaded in this operator's pending set.
	key := entity.LineItem{ItemID: itemID, TagNo: tagNo, EmpID: empID}.Key()
	if s.pending.HasKey(operator.UserID, key) {
		return nil, apperror.NewConflictError("This Tag is already loaded in the Sales Grid")
	}

	rows, err := s.client.EstimationRows(ctx, itemID, tagNo)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to fetch estimation rows")
	}
	if len(rows) == 0 {
		return nil, apperror.NewNotFoundError("Estimation data")
	}

	added := make([]entity.LineItem, 0, len(rows))
	for _, r := range rows {
		added = append(added, entity.LineItem{
			ItemID:      itemID,
			TagNo:       tagNo,
			EmpID:       empID,
			Pcs:         r.Pcs.Float(),
			GrsWt:       r.GrsWt.Float(),
			NetWt:       r.NetWt.Float(),
			PureWt:      r.PureWt.Float(),
			Rate:        r.Rate.Float(),
			Wastage:     r.Wastage.Float(),
			MC:          r.MC.Float(),
			StoneAmount: r.StoneAmount.Float(),
			MiscAmount:  r.MiscAmount.Float(),
			GSTPer:      r.GSTPer.Float(),
			MetalID:     r.MetalID.Float(),
			CatCode:     r.CatCode.Float(),
		})
	}
	s.pending.Append(operator.UserID, added)

	items := s.pending.Items(operator.UserID)
	return &EntryResult{
		Added:  added,
		Items:  items,
		Totals: pricing.Sum(items),
	}, nil
}

// PendingResult is the current pending set with totals.
type PendingResult struct {
	Items  []entity.LineItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// Pending returns the operator's pending set with running totals.
func (s *EntryService) Pending(operator entity.Operator) *PendingResult {
	items := s.pending.Items(operator.UserID)
	return &PendingResult{Items: items, Totals: pricing.Sum(items)}
}

// RemoveEntry drops every pending line item loaded under the given
// item/tag/employee triple.
func (s *EntryService) RemoveEntry(ctx context.Context, operator entity.Operator, input EntryInput) (*PendingResult, error) {
	itemID, err := strconv.Atoi(strings.TrimSpace(input.ItemID))
	if err != nil {
		return nil, apperror.NewValidationError("Item ID must be a number", nil)
	}
	key := entity.LineItem{ItemID: itemID, TagNo: strings.TrimSpace(input.TagNo), EmpID: strings.TrimSpace(input.EmpID)}.Key()
	if s.pending.RemoveKey(operator.UserID, key) == 0 {
		return nil, apperror.NewNotFoundError("Pending entry")
	}
	return s.Pending(operator), nil
}

// ClearPending empties the operator's pending set.
func (s *EntryService) ClearPending(operator entity.Operator) {
	s.pending.Clear(operator.UserID)
}

// ListItemIDs fetches the stock catalogue and returns the distinct
// item IDs in ascending order, for entry suggestions.
func (s *EntryService) ListItemIDs(ctx context.Context) ([]int, error) {
	rows, err := s.client.ListItems(ctx)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load item IDs")
	}

	seen := make(map[int]struct{}, len(rows))
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ItemID]; ok {
			continue
		}
		seen[r.ItemID] = struct{}{}
		ids = append(ids, r.ItemID)
	}
	sort.Ints(ids)
	return ids, nil
}

// ScanField identifies which entry field a barcode was scanned into.
type ScanField string

const (
	ScanFieldItemID ScanField = "item_id"
	ScanFieldTagNo  ScanField = "tag_no"
)

// ScanResult says which fields a scan filled and where input focus
// should move next.
type ScanResult struct {
	ItemID    string `json:"item_id,omitempty"`
	TagNo     string `json:"tag_no,omitempty"`
	NextFocus string `json:"next_focus"`
}

// ResolveScan interprets a barcode payload. A combined code of the
// form "22-165" fills both item and tag and moves focus to the
// employee field; otherwise the payload fills the scanned field and
// focus advances one field.
func (s *EntryService) ResolveScan(field ScanField, data string) (*ScanResult, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, apperror.NewValidationError("Empty scan payload", nil)
	}

	if idx := strings.Index(data, "-"); idx >= 0 {
		return &ScanResult{
			ItemID:    data[:idx],
			TagNo:     data[idx+1:],
			NextFocus: "emp_id",
		}, nil
	}

	switch field {
	case ScanFieldItemID:
		return &ScanResult{ItemID: data, NextFocus: "tag_no"}, nil
	case ScanFieldTagNo:
		return &ScanResult{TagNo: data, NextFocus: "emp_id"}, nil
	default:
		return nil, apperror.NewValidationError("Unknown scan field", nil)
	}
}
