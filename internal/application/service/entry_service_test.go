package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/internal/domain/erp"
	"github.com/jewelsoft/estima-api/pkg/apperror"
)

func testOperator() entity.Operator {
	return entity.Operator{UserID: uuid.New(), Username: "counter1", CounterID: 7}
}

func twoRowFake() *fakeERP {
	return &fakeERP{
		estimationRows: func(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error) {
			return []erp.EstimationRow{
				{Pcs: 1, GrsWt: 8.5, NetWt: 8.0, Rate: 6200, Wastage: 0.5, GSTPer: 3},
				{Pcs: 0, StoneAmount: 1500, GSTPer: 3},
			}, nil
		},
	}
}

func TestSubmitEntryAppendsStampedRows(t *testing.T) {
	svc := NewEntryService(twoRowFake(), NewPendingStore())
	op := testOperator()

	res, err := svc.SubmitEntry(context.Background(), op, EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	require.NoError(t, err)
	require.Len(t, res.Added, 2)

	for _, li := range res.Added {
		assert.Equal(t, 22, li.ItemID)
		assert.Equal(t, "165", li.TagNo)
		assert.Equal(t, "9", li.EmpID)
	}
	assert.Len(t, res.Items, 2)
	assert.Greater(t, res.Totals.Grand, res.Totals.Gross)
}

func TestSubmitEntryValidatesInput(t *testing.T) {
	svc := NewEntryService(twoRowFake(), NewPendingStore())
	op := testOperator()

	tests := []struct {
		name  string
		input EntryInput
	}{
		{"missing item", EntryInput{TagNo: "165", EmpID: "9"}},
		{"missing tag", EntryInput{ItemID: "22", EmpID: "9"}},
		{"missing emp", EntryInput{ItemID: "22", TagNo: "165"}},
		{"blank fields", EntryInput{ItemID: "  ", TagNo: "165", EmpID: "9"}},
		{"non-numeric item", EntryInput{ItemID: "abc", TagNo: "165", EmpID: "9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitEntry(context.Background(), op, tt.input)
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestSubmitEntryRejectsIssuedTag(t *testing.T) {
	fake := twoRowFake()
	fake.tagIssueStatus = func(ctx context.Context, itemID int, tagNo string) (*erp.TagStatus, error) {
		return &erp.TagStatus{TranDate: "2026-08-01", TranNo: "998"}, nil
	}
	svc := NewEntryService(fake, NewPendingStore())

	_, err := svc.SubmitEntry(context.Background(), testOperator(), EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "998")
}

func TestSubmitEntryUnknownTagIsNotIssued(t *testing.T) {
	// A 404 from the status check surfaces as nil status: the tag has
	// simply never been issued and entry proceeds.
	fake := twoRowFake()
	fake.tagIssueStatus = func(ctx context.Context, itemID int, tagNo string) (*erp.TagStatus, error) {
		return nil, nil
	}
	svc := NewEntryService(fake, NewPendingStore())

	_, err := svc.SubmitEntry(context.Background(), testOperator(), EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	assert.NoError(t, err)
}

func TestSubmitEntryRejectsDuplicateTriple(t *testing.T) {
	svc := NewEntryService(twoRowFake(), NewPendingStore())
	op := testOperator()
	in := EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"}

	_, err := svc.SubmitEntry(context.Background(), op, in)
	require.NoError(t, err)

	_, err = svc.SubmitEntry(context.Background(), op, in)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)

	// Same tag under a different employee is a distinct triple.
	in.EmpID = "10"
	_, err = svc.SubmitEntry(context.Background(), op, in)
	assert.NoError(t, err)
}

func TestSubmitEntryNoRows(t *testing.T) {
	fake := &fakeERP{
		estimationRows: func(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error) {
			return []erp.EstimationRow{}, nil
		},
	}
	svc := NewEntryService(fake, NewPendingStore())

	_, err := svc.SubmitEntry(context.Background(), testOperator(), EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestSubmitEntryUpstreamFailure(t *testing.T) {
	fake := &fakeERP{
		estimationRows: func(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error) {
			return nil, errFakeDown
		},
	}
	svc := NewEntryService(fake, NewPendingStore())

	_, err := svc.SubmitEntry(context.Background(), testOperator(), EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)
}

func TestRemoveEntry(t *testing.T) {
	svc := NewEntryService(twoRowFake(), NewPendingStore())
	op := testOperator()
	in := EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"}

	_, err := svc.SubmitEntry(context.Background(), op, in)
	require.NoError(t, err)

	res, err := svc.RemoveEntry(context.Background(), op, in)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = svc.RemoveEntry(context.Background(), op, in)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestListItemIDsDedupesAndSorts(t *testing.T) {
	fake := &fakeERP{
		listItems: func(ctx context.Context) ([]erp.ItemRow, error) {
			return []erp.ItemRow{{ItemID: 30}, {ItemID: 22}, {ItemID: 30}, {ItemID: 5}}, nil
		},
	}
	svc := NewEntryService(fake, NewPendingStore())

	ids, err := svc.ListItemIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{5, 22, 30}, ids)
}

func TestResolveScan(t *testing.T) {
	svc := NewEntryService(&fakeERP{}, NewPendingStore())

	tests := []struct {
		name      string
		field     ScanField
		data      string
		wantItem  string
		wantTag   string
		wantFocus string
		wantErr   bool
	}{
		{"combined code", ScanFieldItemID, "22-165", "22", "165", "emp_id", false},
		{"combined code from tag field", ScanFieldTagNo, "22-165", "22", "165", "emp_id", false},
		{"item only", ScanFieldItemID, "22", "22", "", "tag_no", false},
		{"tag only", ScanFieldTagNo, "165", "", "165", "emp_id", false},
		{"empty payload", ScanFieldItemID, "  ", "", "", "", true},
		{"unknown field", ScanField("emp"), "22", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ResolveScan(tt.field, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantItem, res.ItemID)
			assert.Equal(t, tt.wantTag, res.TagNo)
			assert.Equal(t, tt.wantFocus, res.NextFocus)
		})
	}
}

func TestPendingIsolatedPerOperator(t *testing.T) {
	svc := NewEntryService(twoRowFake(), NewPendingStore())
	op1, op2 := testOperator(), testOperator()

	_, err := svc.SubmitEntry(context.Background(), op1, EntryInput{ItemID: "22", TagNo: "165", EmpID: "9"})
	require.NoError(t, err)

	assert.Len(t, svc.Pending(op1).Items, 2)
	assert.Empty(t, svc.Pending(op2).Items)
}
