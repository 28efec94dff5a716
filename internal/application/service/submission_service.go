package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/internal/domain/erp"
	"github.com/jewelsoft/estima-api/internal/domain/pricing"
	"github.com/jewelsoft/estima-api/internal/domain/repository"
	"github.com/jewelsoft/estima-api/pkg/apperror"
	"github.com/jewelsoft/estima-api/pkg/pagination"
)

const (
	tranTypeSale    = "SA"
	printInstrument = "X"

	sqlDateTime = "2006-01-02 15:04:05"
	sqlDate     = "2006-01-02"
)

// Submission step names used in warnings.
const (
	StepStoneSno   = "stone_sno"
	StepStonePost  = "stone_post"
	StepTaxSno     = "tax_sno"
	StepTaxPost    = "tax_post"
	StepAdvanceTrn = "advance_tranno"
)

// Warning records a degraded (non-fatal) step of a submission. The
// transaction itself went through; the named step did not.
type Warning struct {
	Step    string `json:"step"`
	TagNo   string `json:"tag_no,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.TagNo != "" {
		return fmt.Sprintf("%s (tag %s): %s", w.Step, w.TagNo, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Step, w.Message)
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	TranNo     string         `json:"tranno"`
	EstBatchNo string         `json:"est_batch_no"`
	Status     string         `json:"status"`
	Totals     pricing.Totals `json:"totals"`
	Warnings   []Warning      `json:"warnings,omitempty"`
}

// SubmissionService pushes a pending set through the multi-step
// backend workflow: transaction number, batch number, item issue,
// stone lines, GST entries, counter advance, and print registration.
// Steps after the item issue are degradable: their failures are
// collected as warnings instead of aborting the submission.
type SubmissionService struct {
	client         erp.Client
	pending        *PendingStore
	estimationRepo repository.EstimationRepository

	costID       string
	companyID    string
	taxCompanyID string

	now func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	client erp.Client,
	pending *PendingStore,
	estimationRepo repository.EstimationRepository,
	costID, companyID, taxCompanyID string,
) *SubmissionService {
	return &SubmissionService{
		client:         client,
		pending:        pending,
		estimationRepo: estimationRepo,
		costID:         costID,
		companyID:      companyID,
		taxCompanyID:   taxCompanyID,
		now:            time.Now,
	}
}

// enrichedItem is one pending line item plus everything fetched for it
// during enrichment.
type enrichedItem struct {
	line   entity.LineItem
	record erp.IssueRecord
	stones []erp.StoneInput
}

// Submit runs the full workflow for the operator's pending set. On a
// fatal failure the pending set is left untouched so the operator can
// retry; on success it is cleared and the transaction number recorded.
func (s *SubmissionService) Submit(ctx context.Context, operator entity.Operator) (*SubmitResult, error) {
	items := s.pending.Items(operator.UserID)
	if len(items) == 0 {
		return nil, apperror.ErrNoPendingEntries
	}

	tranNo, err := s.client.NextTranNo(ctx)
	if err != nil || tranNo == "" {
		return nil, apperror.NewUpstreamError("Failed to get transaction number")
	}

	batchNo, err := s.client.EstBatchNo(ctx, s.costID, s.now().Format(sqlDate), s.companyID, true)
	if err != nil || batchNo == "" {
		return nil, apperror.NewUpstreamError("Could not retrieve estimation batch number")
	}

	enriched := s.enrich(ctx, operator, items, tranNo, batchNo)

	records := make([]erp.IssueRecord, len(enriched))
	for i, e := range enriched {
		records[i] = e.record
	}

	acks, err := s.client.PostIssueBatch(ctx, records)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to post estimation items")
	}
	if len(acks) == 0 {
		return nil, apperror.NewUpstreamError("Estimation post returned no acknowledgements")
	}

	snoByTag := make(map[string]string, len(acks))
	ackOrder := make([]string, 0, len(acks))
	for _, ack := range acks {
		tag := ack.Tag()
		if tag == "" {
			continue
		}
		if _, ok := snoByTag[tag]; !ok {
			ackOrder = append(ackOrder, tag)
		}
		snoByTag[tag] = ack.Sno()
	}

	var warnings []Warning
	warnings = append(warnings, s.postStones(ctx, enriched, snoByTag, tranNo, batchNo)...)
	warnings = append(warnings, s.postTaxes(ctx, enriched, snoByTag, ackOrder, tranNo, batchNo)...)

	if err := s.client.AdvanceTranNo(ctx); err != nil {
		warnings = append(warnings, Warning{Step: StepAdvanceTrn, Message: "transaction counter update failed"})
	}

	// Final fetches run concurrently; any failure here is fatal and
	// leaves the pending set intact.
	var (
		ipAddress string
		details   *erp.TranDetails
		rate      *erp.TodayRate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ipAddress, err = s.client.IPAddress(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.client.TranDetails(gctx, tranNo)
		return err
	})
	g.Go(func() error {
		var err error
		rate, err = s.client.TodayRate(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.NewUpstreamError("Failed to fetch print details")
	}

	billDate := s.now().Format(sqlDateTime)
	billType := ""
	finalBatchNo := ""
	if details != nil {
		if t, err := time.Parse(time.RFC3339, details.BillDate); err == nil {
			billDate = t.Format(sqlDateTime)
		} else if t, err := time.Parse(sqlDateTime, details.BillDate); err == nil {
			billDate = t.Format(sqlDateTime)
		}
		billType = details.BillType
		finalBatchNo = details.EstBatchNo
	}

	meta := erp.PrintMeta{
		BRefNo:     tranNo,
		BillDate:   billDate,
		BillType:   billType,
		Instrument: printInstrument,

		SysIPAddress: ipAddress,
		EstBatchNo:   finalBatchNo,
	}
	if rate != nil {
		if rate.GoldRate != nil {
			meta.GoldRate = rate.GoldRate.Float()
		}
		if rate.SilverRate != nil {
			meta.SilverRate = rate.SilverRate.Float()
		}
	}
	if err := s.client.PostPrintMeta(ctx, meta); err != nil {
		return nil, apperror.NewUpstreamError("Failed to register estimation print")
	}

	totals := pricing.Sum(items)
	status := entity.EstimationStatusSubmitted
	if len(warnings) > 0 {
		status = entity.EstimationStatusPartial
	}

	s.recordHistory(ctx, operator, tranNo, finalBatchNo, len(items), totals, status, warnings)
	s.pending.Clear(operator.UserID)

	return &SubmitResult{
		TranNo:     tranNo,
		EstBatchNo: finalBatchNo,
		Status:     status,
		Totals:     totals,
		Warnings:   warnings,
	}, nil
}

// enrich fetches stone rows, tag metadata, and the issuance date for
// every pending line item and assembles its issue record. Fan-out is
// bounded; enrichment fetches are best-effort and default when they
// fail.
func (s *SubmissionService) enrich(ctx context.Context, operator entity.Operator, items []entity.LineItem, tranNo, batchNo string) []enrichedItem {
	enriched := make([]enrichedItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, li := range items {
		g.Go(func() error {
			stones, err := s.client.StoneInputs(gctx, li.ItemID, li.TagNo)
			if err != nil {
				log.Printf("submission: stone inputs fetch failed for tag %s: %v", li.TagNo, err)
				stones = nil
			}
			for j := range stones {
				if stones[j].StnItemID == 0 {
					continue
				}
				stnID := strconv.FormatFloat(stones[j].StnItemID.Float(), 'f', -1, 64)
				cat, err := s.client.StoneCatCode(gctx, li.ItemID, stnID)
				if err != nil {
					log.Printf("submission: stone catcode fetch failed for tag %s: %v", li.TagNo, err)
					continue
				}
				stones[j].CatCode = cat
			}

			meta, err := s.client.TagMeta(gctx, li.TagNo)
			if err != nil {
				log.Printf("submission: tag metadata fetch failed for tag %s: %v", li.TagNo, err)
				meta = nil
			}

			tranDate := s.now()
			if raw, err := s.client.TranDate(gctx, li.ItemID, li.TagNo); err == nil && raw != "" {
				if t, perr := parseBackendDate(raw); perr == nil {
					tranDate = t
				}
			} else if err != nil {
				log.Printf("submission: trandate fetch failed for tag %s: %v", li.TagNo, err)
			}

			enriched[i] = enrichedItem{
				line:   li,
				record: s.buildIssueRecord(operator, li, meta, tranNo, batchNo, tranDate),
				stones: stones,
			}
			return nil
		})
	}
	_ = g.Wait()

	return enriched
}

// buildIssueRecord assembles the fixed-schema transaction-item record.
// Fields the backend may not know stay nil and are omitted from the
// wire payload.
func (s *SubmissionService) buildIssueRecord(operator entity.Operator, li entity.LineItem, meta *erp.TagMeta, tranNo, batchNo string, tranDate time.Time) erp.IssueRecord {
	midnight := func(t time.Time) string {
		return t.Format(sqlDate) + " 00:00:00"
	}
	empID, _ := strconv.Atoi(li.EmpID)

	rec := erp.IssueRecord{
		TranNo:     tranNo,
		TranDate:   midnight(tranDate),
		TranType:   tranTypeSale,
		Pcs:        li.Pcs,
		GrsWt:      li.GrsWt,
		NetWt:      li.NetWt,
		PureWt:     li.PureWt,
		TagNo:      li.TagNo,
		ItemID:     li.ItemID,
		Wastage:    li.Wastage,
		MCGrm:      li.MC,
		Amount:     pricing.Round2(pricing.GrossAmount(li)),
		Rate:       li.Rate,
		BoardRate:  li.Rate,
		CostID:     "",
		CompanyID:  s.companyID,
		EmpID:      empID,
		StnAmt:     li.StoneAmount,
		MiscAmt:    li.MiscAmount,
		TagGrsWt:   li.GrsWt,
		TagNetWt:   li.NetWt,
		CatCode:    li.CatCode,
		Alloy:      "0.000",
		UserID:     float64(operator.CounterID),
		Updated:    midnight(s.now()),
		Discount:   "0.00",
		ProType:    "0",
		MetalID:    formatMetalID(li.MetalID),
		Tax:        pricing.Round2(pricing.GSTAmount(li)),
		SC:         "0.00",
		AdSC:       "0.00",
		MarginID:   "0",
		EstBatchNo: batchNo,
		DueDate:    midnight(s.now()),
		Touch:      "0.00",
	}

	// PUREWT falls back to net weight when the backend gave none.
	if rec.PureWt == 0 {
		rec.PureWt = li.NetWt
	}

	if meta != nil {
		rec.WastPer = meta.WastPer
		rec.MChrge = meta.MCharge
		if meta.MCGram != nil && rec.MCGrm == 0 {
			rec.MCGrm = meta.MCGram.Float()
		}
		if meta.CompanyID != "" {
			rec.CompanyID = meta.CompanyID
		}
		rec.LessWt = meta.LessWt
		rec.SubItemID = meta.SubItemID
		rec.SaleMode = meta.SaleMode
		rec.GrsNet = meta.GrsNet
		rec.TagDesigner = meta.DesignerID
		rec.ItemTypeID = meta.ItemTypeID
		rec.ItemCtrID = meta.ItemCtrID
		rec.Purity = meta.Purity
		rec.TagsValue = meta.SalValue
	}

	return rec
}

// postStones posts stone lines for every enriched item that has them.
// A sequence-number failure skips the item; a batch-post failure
// degrades the whole stone step. Neither aborts the submission.
func (s *SubmissionService) postStones(ctx context.Context, enriched []enrichedItem, snoByTag map[string]string, tranNo, batchNo string) []Warning {
	var warnings []Warning
	var batch []erp.StoneRecord

	for _, e := range enriched {
		if len(e.stones) == 0 {
			continue
		}

		companyID := e.record.CompanyID
		if companyID == "" {
			companyID = s.companyID
		}
		sno, err := s.client.NextStoneSno(ctx, "", companyID)
		if err != nil {
			warnings = append(warnings, Warning{
				Step:    StepStoneSno,
				TagNo:   e.line.TagNo,
				Message: "failed to generate stone sequence number",
			})
			continue
		}

		issSno := snoByTag[e.line.TagNo]
		for _, stone := range e.stones {
			batch = append(batch, erp.StoneRecord{
				Sno:          sno,
				IssSno:       issSno,
				TranNo:       tranNo,
				TranDate:     e.record.TranDate,
				TranType:     tranTypeSale,
				StnPcs:       stone.StnPcs.Float(),
				StnWt:        stone.StnWt.Float(),
				StnRate:      stone.StnRate.Float(),
				StnAmt:       stone.StnAmt.Float(),
				StnItemID:    stone.StnItemID.Float(),
				StnSubItemID: stone.StnSubItemID.Float(),
				CalcMode:     stone.CalcMode,
				StoneUnit:    stone.StoneUnit,
				CostID:       stone.CostID,
				CompanyID:    stone.CompanyID,
				CatCode:      stone.CatCode,
				TagSno:       stone.TagSno,
				EstBatchNo:   batchNo,
			})
		}
	}

	if len(batch) > 0 {
		if err := s.client.PostStoneBatch(ctx, batch); err != nil {
			warnings = append(warnings, Warning{
				Step:    StepStonePost,
				Message: "stone line post failed",
			})
		}
	}
	return warnings
}

// postTaxes writes the SGST/CGST pair for every acknowledged tag with
// a positive amount. One tag failing degrades only that tag.
func (s *SubmissionService) postTaxes(ctx context.Context, enriched []enrichedItem, snoByTag map[string]string, ackOrder []string, tranNo, batchNo string) []Warning {
	// Last record per tag wins, matching the item-issue payload order.
	recordByTag := make(map[string]erp.IssueRecord, len(enriched))
	for _, e := range enriched {
		recordByTag[strings.TrimSpace(e.record.TagNo)] = e.record
	}

	tranNoInt, _ := strconv.Atoi(tranNo)

	var warnings []Warning
	for _, tag := range ackOrder {
		rec, ok := recordByTag[tag]
		if !ok {
			log.Printf("submission: no issue record matches acknowledged tag %s", tag)
			continue
		}
		if rec.Amount <= 0 {
			continue
		}

		taxSno, err := s.client.NextTaxSno(ctx, "", s.taxCompanyID)
		if err != nil {
			warnings = append(warnings, Warning{
				Step:    StepTaxSno,
				TagNo:   tag,
				Message: "failed to generate tax sequence number",
			})
			continue
		}

		// Tax configuration is advisory; the split stays fixed even
		// when the lookup fails.
		if _, err := s.client.TaxDetails(ctx, rec.ItemID); err != nil {
			log.Printf("submission: tax details fetch failed for item %d: %v", rec.ItemID, err)
		}

		base := erp.TaxRecord{
			Sno:       taxSno,
			IssSno:    snoByTag[tag],
			TranNo:    tranNoInt,
			TranDate:  rec.TranDate,
			TranType:  tranTypeSale,
			BatchNo:   batchNo,
			Amount:    pricing.Round2(rec.Amount),
			CostID:    rec.CostID,
			CompanyID: rec.CompanyID,
		}

		entries := []erp.TaxRecord{base, base}
		entries[0].TaxID = "SG"
		entries[0].TaxPer = pricing.GSTSplitPer
		entries[0].TaxAmount = pricing.TaxSplit(base.Amount, pricing.GSTSplitPer)
		entries[0].TSno = 1
		entries[1].TaxID = "CG"
		entries[1].TaxPer = pricing.GSTSplitPer
		entries[1].TaxAmount = pricing.TaxSplit(base.Amount, pricing.GSTSplitPer)
		entries[1].TSno = 2

		for _, entry := range entries {
			if err := s.client.PostTaxEntry(ctx, entry); err != nil {
				warnings = append(warnings, Warning{
					Step:    StepTaxPost,
					TagNo:   tag,
					Message: fmt.Sprintf("tax insert failed (%s)", entry.TaxID),
				})
				break
			}
		}
	}
	return warnings
}

// History lists the operator's recorded estimations, newest first.
func (s *SubmissionService) History(ctx context.Context, operator entity.Operator, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Estimation], error) {
	if s.estimationRepo == nil {
		return pagination.NewPaginatedResult([]entity.Estimation{}, pagination.NewPagination(params.Page, params.PerPage, 0)), nil
	}

	items, total, err := s.estimationRepo.ListByUser(ctx, operator.UserID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(items, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *SubmissionService) recordHistory(ctx context.Context, operator entity.Operator, tranNo, batchNo string, itemCount int, totals pricing.Totals, status string, warnings []Warning) {
	if s.estimationRepo == nil {
		return
	}

	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.String())
	}

	est := &entity.Estimation{
		TranNo:      tranNo,
		EstBatchNo:  batchNo,
		UserID:      operator.UserID,
		Username:    operator.Username,
		ItemCount:   itemCount,
		GrossAmount: pricing.Round2(totals.Gross),
		GSTAmount:   pricing.Round2(totals.GST),
		GrandTotal:  pricing.Round2(totals.Grand),
		Status:      status,
		Warnings:    strings.Join(lines, "\n"),
	}
	if err := s.estimationRepo.Create(ctx, est); err != nil {
		log.Printf("submission: failed to record estimation history: %v", err)
	}
}

// parseBackendDate accepts the date shapes the backend emits.
func parseBackendDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, sqlDateTime, sqlDate} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func formatMetalID(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
