package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jewelsoft/estima-api/internal/domain/erp"
	"github.com/jewelsoft/estima-api/pkg/apperror"
	"github.com/jewelsoft/estima-api/pkg/printer"
)

func printedRow(itemID int, tagNo string, pcs, netWt, amount float64) erp.PrintedRow {
	return erp.PrintedRow{
		ItemID:   itemID,
		TagNo:    tagNo,
		ItemName: "Gold Chain",
		Pcs:      erp.Number(pcs),
		GrsWt:    erp.Number(netWt + 0.5),
		NetWt:    erp.Number(netWt),
		Amount:   erp.Number(amount),
		TranNo:   "1042",
		TranDate: "2026-08-30 00:00:00",
		Taxes: []erp.PrintedTax{
			{TaxID: "sg", TaxAmount: erp.Number(amount * 0.015)},
			{TaxID: "CG", TaxAmount: erp.Number(amount * 0.015)},
		},
	}
}

func newReceiptHarness(fake *fakeERP, p printer.Printer) *ReceiptService {
	svc := NewReceiptService(fake, p, nil, "BMG", 32)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestComposeSlipBlankBatch(t *testing.T) {
	svc := newReceiptHarness(&fakeERP{}, printer.NewNullPrinter())

	_, err := svc.ComposeSlip(context.Background(), testOperator(), "  ")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestComposeSlipNoRows(t *testing.T) {
	svc := newReceiptHarness(&fakeERP{}, printer.NewNullPrinter())

	_, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestComposeSlipUpstreamFailure(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return nil, errFakeDown
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	_, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)
}

func TestComposeSlipMergesRowsAndTaxes(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{
				printedRow(22, "165", 1, 8.0, 52700),
				printedRow(22, "165", 1, 2.0, 13000),
				printedRow(30, "9", 1, 4.0, 26000),
			}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)

	// Rows sharing an item/tag collapse into one line.
	require.Len(t, slip.Items, 2)
	first := slip.Items[0]
	assert.Equal(t, 22, first.ItemID)
	assert.Equal(t, "165", first.TagNo)
	assert.Equal(t, 2.0, first.Pcs)
	assert.InDelta(t, 10.0, first.NetWt, 0.001)
	assert.InDelta(t, 65700, first.Amount, 0.001)
	assert.Equal(t, "GOLD CHAIN", first.ItemName)

	assert.Equal(t, 30, slip.Items[1].ItemID)

	// Tax IDs match case-insensitively and aggregate across all rows.
	wantGST := (52700 + 13000 + 26000) * 0.015
	assert.InDelta(t, wantGST, slip.SGST, 0.001)
	assert.InDelta(t, wantGST, slip.CGST, 0.001)

	assert.InDelta(t, 3.0, slip.TotalPcs, 0.001)
	assert.InDelta(t, 91700, slip.BaseAmount, 0.001)
	assert.InDelta(t, 91700+2*wantGST, slip.GrandTotal, 0.001)

	assert.Equal(t, "1042", slip.TranNo)
	assert.Equal(t, "BMG", slip.CompanyID)
	assert.Equal(t, "30/08/2026", slip.Date)
	assert.Equal(t, "02:30:00 PM", slip.Time)
	assert.Equal(t, "counter1", slip.Username)
}

func TestComposeSlipRateFallback(t *testing.T) {
	row := printedRow(22, "165", 1, 8.0, 52700)
	row.GoldRate = 9500
	row.SilverRate = 115
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{row}, nil
		},
		todayRate: func(ctx context.Context) (*erp.TodayRate, error) {
			return nil, errFakeDown
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	assert.Equal(t, 9500.0, slip.GoldRate)
	assert.Equal(t, 115.0, slip.SilverRate)
}

func TestComposeSlipLiveRatesPreferred(t *testing.T) {
	row := printedRow(22, "165", 1, 8.0, 52700)
	row.GoldRate = 9500
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{row}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, slip.GoldRate)
	assert.Equal(t, 120.0, slip.SilverRate)
}

func TestComposeSlipOfferDiscount(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{printedRow(22, "165", 1, 8.0, 52700)}, nil
		},
		offer: func(ctx context.Context, tagNo string) (*erp.Offer, error) {
			return &erp.Offer{NetWt: 8, BoardRate: 50}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	assert.InDelta(t, 400, slip.OfferDiscount, 0.001)
}

func TestComposeSlipOfferFailureIsBestEffort(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{printedRow(22, "165", 1, 8.0, 52700)}, nil
		},
		offer: func(ctx context.Context, tagNo string) (*erp.Offer, error) {
			return nil, errFakeDown
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	assert.Zero(t, slip.OfferDiscount)
}

func TestComposeSlipStones(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{printedRow(22, "165", 1, 8.0, 52700)}, nil
		},
		stoneInputs: func(ctx context.Context, itemID int, tagNo string) ([]erp.StoneInput, error) {
			return []erp.StoneInput{{StnWt: 0.25, StoneUnit: "Ct", StnAmt: 1500}}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	require.Len(t, slip.Items[0].Stones, 1)
	assert.Equal(t, 0.25, slip.Items[0].Stones[0].Weight)
	assert.Equal(t, "Ct", slip.Items[0].Stones[0].Unit)
	assert.Equal(t, 1500.0, slip.Items[0].Stones[0].Amount)
}

func TestComposeSlipStoneFetchFanOut(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{
				printedRow(22, "165", 1, 8.0, 52700),
				printedRow(30, "201", 1, 4.0, 26000),
			}, nil
		},
		stoneInputs: func(ctx context.Context, itemID int, tagNo string) ([]erp.StoneInput, error) {
			if tagNo == "165" {
				return nil, errFakeDown
			}
			return []erp.StoneInput{{StnWt: 0.5, StoneUnit: "Ct", StnAmt: 2000}}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	require.Len(t, slip.Items, 2)

	// One tag's stone lookup failing degrades that item only; the
	// fetched stones land on the item they belong to.
	assert.Empty(t, slip.Items[0].Stones)
	require.Len(t, slip.Items[1].Stones, 1)
	assert.Equal(t, 0.5, slip.Items[1].Stones[0].Weight)
}

func TestPrintSlipSendsEscPos(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{printedRow(22, "165", 1, 8.0, 52700)}, nil
		},
	}
	capture := printer.NewCapturePrinter()
	svc := newReceiptHarness(fake, capture)

	slip, err := svc.PrintSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)
	require.NotNil(t, slip)

	job := capture.LastJob()
	require.NotEmpty(t, job)
	text := string(job)
	assert.Contains(t, text, "ESTIMATION SLIP")
	assert.Contains(t, text, "Est.No 1042-BMG")
	assert.Contains(t, text, "GOLD CHAIN")
	assert.Contains(t, text, "[counter1]")
}

func TestPrintSlipPrinterFailure(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			return []erp.PrintedRow{printedRow(22, "165", 1, 8.0, 52700)}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())
	svc.printer = failingPrinter{}

	slip, err := svc.PrintSlip(context.Background(), testOperator(), "B77")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 503, appErr.Code)
	// The composed slip is still returned for on-screen fallback.
	assert.NotNil(t, slip)
}

type failingPrinter struct{}

func (failingPrinter) Print(data []byte) error { return errFakeDown }
func (failingPrinter) Close() error            { return nil }
func (failingPrinter) IsConnected() bool       { return false }

func TestFormatSlipLayout(t *testing.T) {
	fake := &fakeERP{
		printedRows: func(ctx context.Context, estBatchNo string) ([]erp.PrintedRow, error) {
			row := printedRow(22, "165", 1, 8.0, 52700)
			row.WastPer = 12.5
			row.MCGrm = 250
			return []erp.PrintedRow{row}, nil
		},
	}
	svc := newReceiptHarness(fake, printer.NewNullPrinter())

	slip, err := svc.ComposeSlip(context.Background(), testOperator(), "B77")
	require.NoError(t, err)

	text := string(FormatSlip(slip, 32))
	assert.Contains(t, text, "NAME   : ")
	assert.Contains(t, text, "MOBILE : ")
	assert.Contains(t, text, "Date : 30/08/2026")
	assert.Contains(t, text, "Gold 10000/Gm")
	assert.Contains(t, text, "Silver 120.00/Gm")
	assert.Contains(t, text, "Description")
	assert.Contains(t, text, "12.5")
	assert.Contains(t, text, "Netwt: 8.000")
	assert.Contains(t, text, "MC:")
	assert.Contains(t, text, "Tot.Pcs : 1")
	assert.Contains(t, text, "CGST (1.5%)")
	assert.Contains(t, text, "SGST (1.5%)")
	assert.Contains(t, text, "Sales  TOTAL :")
}
