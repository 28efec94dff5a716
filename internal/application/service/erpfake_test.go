package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/jewelsoft/estima-api/internal/domain/erp"
)

// fakeERP is a scriptable erp.Client. Unset hooks return zero values,
// so each test only wires the endpoints it exercises.
type fakeERP struct {
	todayRate      func(ctx context.Context) (*erp.TodayRate, error)
	listItems      func(ctx context.Context) ([]erp.ItemRow, error)
	tagIssueStatus func(ctx context.Context, itemID int, tagNo string) (*erp.TagStatus, error)
	estimationRows func(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error)
	nextTranNo     func(ctx context.Context) (string, error)
	estBatchNo     func(ctx context.Context, costID, billDate, companyID string, isEstimate bool) (string, error)
	stoneInputs    func(ctx context.Context, itemID int, tagNo string) ([]erp.StoneInput, error)
	stoneCatCode   func(ctx context.Context, itemID int, stnItemID string) (string, error)
	tagMeta        func(ctx context.Context, tagNo string) (*erp.TagMeta, error)
	tranDate       func(ctx context.Context, itemID int, tagNo string) (string, error)
	postIssueBatch func(ctx context.Context, records []erp.IssueRecord) ([]erp.IssueAck, error)
	nextStoneSno   func(ctx context.Context, costID, companyID string) (string, error)
	postStoneBatch func(ctx context.Context, records []erp.StoneRecord) error
	nextTaxSno     func(ctx context.Context, costID, companyID string) (string, error)
	taxDetails     func(ctx context.Context, itemID int) ([]erp.TaxDetail, error)
	postTaxEntry   func(ctx context.Context, record erp.TaxRecord) error
	advanceTranNo  func(ctx context.Context) error
	ipAddress      func(ctx context.Context) (string, error)
	tranDetails    func(ctx context.Context, tranNo string) (*erp.TranDetails, error)
	postPrintMeta  func(ctx context.Context, meta erp.PrintMeta) error
	printedRows    func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error)
	offer          func(ctx context.Context, tagNo string) (*erp.Offer, error)
}

var errFakeDown = errors.New("backend unavailable")

func (f *fakeERP) TodayRate(ctx context.Context) (*erp.TodayRate, error) {
	if f.todayRate != nil {
		return f.todayRate(ctx)
	}
	gold, silver := erp.Number(10000), erp.Number(120)
	return &erp.TodayRate{GoldRate: &gold, SilverRate: &silver}, nil
}

func (f *fakeERP) ListItems(ctx context.Context) ([]erp.ItemRow, error) {
	if f.listItems != nil {
		return f.listItems(ctx)
	}
	return nil, nil
}

func (f *fakeERP) TagIssueStatus(ctx context.Context, itemID int, tagNo string) (*erp.TagStatus, error) {
	if f.tagIssueStatus != nil {
		return f.tagIssueStatus(ctx, itemID, tagNo)
	}
	return nil, nil
}

func (f *fakeERP) EstimationRows(ctx context.Context, itemID int, tagNo string) ([]erp.EstimationRow, error) {
	if f.estimationRows != nil {
		return f.estimationRows(ctx, itemID, tagNo)
	}
	return nil, nil
}

func (f *fakeERP) NextTranNo(ctx context.Context) (string, error) {
	if f.nextTranNo != nil {
		return f.nextTranNo(ctx)
	}
	return "1042", nil
}

func (f *fakeERP) EstBatchNo(ctx context.Context, costID, billDate, companyID string, isEstimate bool) (string, error) {
	if f.estBatchNo != nil {
		return f.estBatchNo(ctx, costID, billDate, companyID, isEstimate)
	}
	return "B77", nil
}

func (f *fakeERP) StoneInputs(ctx context.Context, itemID int, tagNo string) ([]erp.StoneInput, error) {
	if f.stoneInputs != nil {
		return f.stoneInputs(ctx, itemID, tagNo)
	}
	return nil, nil
}

func (f *fakeERP) StoneCatCode(ctx context.Context, itemID int, stnItemID string) (string, error) {
	if f.stoneCatCode != nil {
		return f.stoneCatCode(ctx, itemID, stnItemID)
	}
	return "", nil
}

func (f *fakeERP) TagMeta(ctx context.Context, tagNo string) (*erp.TagMeta, error) {
	if f.tagMeta != nil {
		return f.tagMeta(ctx, tagNo)
	}
	return &erp.TagMeta{}, nil
}

func (f *fakeERP) TranDate(ctx context.Context, itemID int, tagNo string) (string, error) {
	if f.tranDate != nil {
		return f.tranDate(ctx, itemID, tagNo)
	}
	return "", nil
}

func (f *fakeERP) PostIssueBatch(ctx context.Context, records []erp.IssueRecord) ([]erp.IssueAck, error) {
	if f.postIssueBatch != nil {
		return f.postIssueBatch(ctx, records)
	}
	acks := make([]erp.IssueAck, 0, len(records))
	seen := map[string]bool{}
	for i, r := range records {
		if seen[r.TagNo] {
			continue
		}
		seen[r.TagNo] = true
		acks = append(acks, erp.IssueAck{TagNoUpper: r.TagNo, SnoUpper: strconv.Itoa(100 + i)})
	}
	return acks, nil
}

func (f *fakeERP) NextStoneSno(ctx context.Context, costID, companyID string) (string, error) {
	if f.nextStoneSno != nil {
		return f.nextStoneSno(ctx, costID, companyID)
	}
	return "S1", nil
}

func (f *fakeERP) PostStoneBatch(ctx context.Context, records []erp.StoneRecord) error {
	if f.postStoneBatch != nil {
		return f.postStoneBatch(ctx, records)
	}
	return nil
}

func (f *fakeERP) NextTaxSno(ctx context.Context, costID, companyID string) (string, error) {
	if f.nextTaxSno != nil {
		return f.nextTaxSno(ctx, costID, companyID)
	}
	return "T1", nil
}

func (f *fakeERP) TaxDetails(ctx context.Context, itemID int) ([]erp.TaxDetail, error) {
	if f.taxDetails != nil {
		return f.taxDetails(ctx, itemID)
	}
	return nil, nil
}

func (f *fakeERP) PostTaxEntry(ctx context.Context, record erp.TaxRecord) error {
	if f.postTaxEntry != nil {
		return f.postTaxEntry(ctx, record)
	}
	return nil
}

func (f *fakeERP) AdvanceTranNo(ctx context.Context) error {
	if f.advanceTranNo != nil {
		return f.advanceTranNo(ctx)
	}
	return nil
}

func (f *fakeERP) IPAddress(ctx context.Context) (string, error) {
	if f.ipAddress != nil {
		return f.ipAddress(ctx)
	}
	return "10.0.0.5", nil
}

func (f *fakeERP) TranDetails(ctx context.Context, tranNo string) (*erp.TranDetails, error) {
	if f.tranDetails != nil {
		return f.tranDetails(ctx, tranNo)
	}
	return &erp.TranDetails{EstBatchNo: "B77", BillType: "EST"}, nil
}

func (f *fakeERP) PostPrintMeta(ctx context.Context, meta erp.PrintMeta) error {
	if f.postPrintMeta != nil {
		return f.postPrintMeta(ctx, meta)
	}
	return nil
}

func (f *fakeERP) PrintedRows(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
	if f.printedRows != nil {
		return f.printedRows(ctx, estBatchNo)
	}
	return nil, nil
}

func (f *fakeERP) Offer(ctx context.Context, tagNo string) (*erp.Offer, error) {
	if f.offer != nil {
		return f.offer(ctx, tagNo)
	}
	return &erp.Offer{}, nil
}
