package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/internal/domain/erp"
	"github.com/jewelsoft/estima-api/internal/domain/repository"
	"github.com/jewelsoft/estima-api/pkg/apperror"
	"github.com/jewelsoft/estima-api/pkg/printer"
)

// ReceiptService composes and prints estimation slips from the rows
// the backend recorded for a submitted batch.
type ReceiptService struct {
	client         erp.Client
	printer        printer.Printer
	estimationRepo repository.EstimationRepository
	defaultCompany string
	paperWidth     int

	now func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	client erp.Client,
	p printer.Printer,
	estimationRepo repository.EstimationRepository,
	defaultCompany string,
	paperWidth int,
) *ReceiptService {
	return &ReceiptService{
		client:         client,
		printer:        p,
		estimationRepo: estimationRepo,
		defaultCompany: defaultCompany,
		paperWidth:     paperWidth,
		now:            time.Now,
	}
}

// ComposeSlip fetches the printed rows for a batch and builds the slip
// model: rows merged per item/tag, taxes aggregated, offer and board
// rates applied best-effort.
func (s *ReceiptService) ComposeSlip(ctx context.Context, operator entity.Operator, estBatchNo string) (*entity.Slip, error) {
	if strings.TrimSpace(estBatchNo) == "" {
		return nil, apperror.NewBadRequestError("No estimation number found for printing")
	}

	rows, err := s.client.PrintedRows(ctx, estBatchNo)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to fetch estimation rows for printing")
	}
	if len(rows) == 0 {
		return nil, apperror.NewNotFoundError("Estimation print data")
	}

	merged := mergePrintedRows(rows)
	sample := merged[0]

	// Offer lookup is best-effort; absence means no discount line.
	offer := erp.Offer{}
	if o, err := s.client.Offer(ctx, sample.TagNo); err == nil && o != nil {
		offer = *o
	} else if err != nil {
		log.Printf("receipt: offer fetch failed for tag %s: %v", sample.TagNo, err)
	}

	// Board rates fall back to the values stamped on the posted rows.
	goldRate := sample.GoldRate.Float()
	silverRate := sample.SilverRate.Float()
	if rate, err := s.client.TodayRate(ctx); err == nil {
		if rate.GoldRate != nil {
			goldRate = rate.GoldRate.Float()
		}
		if rate.SilverRate != nil {
			silverRate = rate.SilverRate.Float()
		}
	} else {
		log.Printf("receipt: board rate fetch failed, using posted rates: %v", err)
	}

	slip := &entity.Slip{
		TranNo:     sample.TranNo,
		CompanyID:  orDefault(sample.CompanyID, s.defaultCompany),
		Date:       formatSlipDate(sample.TranDate),
		Time:       s.now().Format("03:04:05 PM"),
		GoldRate:   goldRate,
		SilverRate: silverRate,
		Username:   operator.Username,
	}

	stonesByRow := make([][]erp.StoneInput, len(merged))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, row := range merged {
		g.Go(func() error {
			stones, err := s.client.StoneInputs(gctx, row.ItemID, row.TagNo)
			if err != nil {
				log.Printf("receipt: stone fetch failed for tag %s: %v", row.TagNo, err)
				stones = nil
			}
			stonesByRow[i] = stones
			return nil
		})
	}
	g.Wait()

	for idx, row := range merged {
		item := entity.SlipItem{
			Seq:         idx + 1,
			ItemID:      row.ItemID,
			TagNo:       row.TagNo,
			ItemName:    strings.ToUpper(row.ItemName),
			SubItemName: strings.ToUpper(row.SubItemName),
			Pcs:         row.Pcs.Float(),
			GrsWt:       row.GrsWt.Float(),
			NetWt:       row.NetWt.Float(),
			WastPer:     row.WastPer.Float(),
			Amount:      row.Amount.Float(),
			MCAmount:    row.MCGrm.Float(),
		}

		for _, stone := range stonesByRow[idx] {
			item.Stones = append(item.Stones, entity.SlipStone{
				Weight: stone.StnWt.Float(),
				Unit:   stone.StoneUnit,
				Amount: stone.StnAmt.Float(),
			})
		}

		slip.Items = append(slip.Items, item)
		slip.TotalPcs += item.Pcs
		slip.TotalGrsWt += item.GrsWt
		slip.BaseAmount += item.Amount

		for _, tax := range row.Taxes {
			switch strings.ToUpper(tax.TaxID) {
			case "CG":
				slip.CGST += tax.TaxAmount.Float()
			case "SG":
				slip.SGST += tax.TaxAmount.Float()
			}
		}
	}

	slip.GrandTotal = slip.BaseAmount + slip.CGST + slip.SGST

	slip.OfferWeight = offer.NetWt.Float()
	slip.OfferBoardRate = offer.BoardRate.Float()
	slip.OfferDiscount = slip.OfferWeight * slip.OfferBoardRate

	return slip, nil
}

// PrintSlip composes the slip for a batch and sends it to the printer.
func (s *ReceiptService) PrintSlip(ctx context.Context, operator entity.Operator, estBatchNo string) (*entity.Slip, error) {
	slip, err := s.ComposeSlip(ctx, operator, estBatchNo)
	if err != nil {
		return nil, err
	}

	data := FormatSlip(slip, s.paperWidth)
	if err := s.printer.Print(data); err != nil {
		log.Printf("receipt: printer error (batch %s): %v", estBatchNo, err)
		return slip, apperror.NewPrintError("Failed to print estimation slip")
	}

	s.markPrinted(ctx, estBatchNo)
	return slip, nil
}

func (s *ReceiptService) markPrinted(ctx context.Context, estBatchNo string) {
	if s.estimationRepo == nil {
		return
	}
	est, err := s.estimationRepo.GetByBatchNo(ctx, estBatchNo)
	if err != nil || est == nil {
		return
	}
	now := s.now()
	est.PrintedAt = &now
	if err := s.estimationRepo.Update(ctx, est); err != nil {
		log.Printf("receipt: failed to record print time: %v", err)
	}
}

// mergePrintedRows folds rows sharing an item/tag pair into one,
// summing quantities and amounts and aggregating taxes by tax ID.
// First-seen order is preserved.
func mergePrintedRows(rows []erp.PrintedRow) []erp.PrintedRow {
	index := make(map[string]int)
	var merged []erp.PrintedRow

	for _, row := range rows {
		key := fmt.Sprintf("%d-%s", row.ItemID, row.TagNo)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			copied := row
			copied.Taxes = append([]erp.PrintedTax(nil), row.Taxes...)
			merged = append(merged, copied)
			continue
		}

		merged[i].Pcs += row.Pcs
		merged[i].NetWt += row.NetWt
		merged[i].GrsWt += row.GrsWt
		merged[i].Amount += row.Amount

	taxes:
		for _, tax := range row.Taxes {
			for j := range merged[i].Taxes {
				if merged[i].Taxes[j].TaxID == tax.TaxID {
					merged[i].Taxes[j].TaxAmount += tax.TaxAmount
					continue taxes
				}
			}
			merged[i].Taxes = append(merged[i].Taxes, tax)
		}
	}
	return merged
}

// FormatSlip renders a slip as ESC/POS bytes for thermal printing.
func FormatSlip(slip *entity.Slip, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Text("NAME   : ____________________").
		Text("MOBILE : ____________________").
		Separator('-')

	doc.SetBold(true).
		KeyValue("ESTIMATION SLIP", fmt.Sprintf("Est.No %s-%s", slip.TranNo, slip.CompanyID)).
		SetBold(false).
		KeyValue("Date : "+slip.Date, fmt.Sprintf("Gold %.0f/Gm", slip.GoldRate)).
		KeyValue("Time : "+slip.Time, fmt.Sprintf("Silver %.2f/Gm", slip.SilverRate)).
		Separator('-')

	doc.SetBold(true).
		Cols4("Description", "Weight", "V.A", "Amount").
		SetBold(false).
		Separator('-')

	for _, item := range slip.Items {
		doc.SetBold(true).
			TextF("%d %s (%.0f Pcs) [%d-%s]", item.Seq, item.ItemName, item.Pcs, item.ItemID, item.TagNo).
			SetBold(false)

		va := ""
		if item.WastPer > 0 {
			va = fmt.Sprintf("%.1f", item.WastPer)
		}
		doc.Cols4("Rate", fmt.Sprintf("%.3f", item.GrsWt), va, fmt.Sprintf("%.0f", item.Amount))

		if item.GrsWt != item.NetWt {
			doc.TextF("Netwt: %.3f", item.NetWt)
		}

		for _, stone := range item.Stones {
			doc.Cols4("STUDDED", fmt.Sprintf("%.3f%s", stone.Weight, stone.Unit), "", fmt.Sprintf("%.0f", stone.Amount))
		}

		if item.MCAmount > 0 {
			doc.Cols4("MC:", "", "", fmt.Sprintf("%.0f", item.MCAmount))
		}

		if item.SubItemName != "" {
			for range item.Stones {
				doc.Text(item.SubItemName)
			}
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		Cols4(fmt.Sprintf("Tot.Pcs : %.0f", slip.TotalPcs),
			fmt.Sprintf("%.3f", slip.TotalGrsWt), "", fmt.Sprintf("%.0f", slip.BaseAmount)).
		SetBold(false)

	if slip.OfferDiscount > 0 {
		doc.KeyValue(fmt.Sprintf("Offer (%.3f * %g)", slip.OfferWeight, slip.OfferBoardRate),
			fmt.Sprintf("%.1f", slip.OfferDiscount))
	}

	doc.KeyValue("CGST (1.5%)", fmt.Sprintf("%.0f", slip.CGST)).
		KeyValue("SGST (1.5%)", fmt.Sprintf("%.0f", slip.SGST)).
		Separator('-')

	doc.SetBold(true).
		KeyValue("Sales  TOTAL :", fmt.Sprintf("%.0f", slip.GrandTotal)).
		SetBold(false).
		Separator('-')

	doc.KeyValue(fmt.Sprintf("[%s]", slip.Username), "Est.No : "+slip.TranNo)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func formatSlipDate(raw string) string {
	if raw == "" {
		return ""
	}
	if t, err := parseBackendDate(raw); err == nil {
		return t.Format("02/01/2006")
	}
	return raw
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
