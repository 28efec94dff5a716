package service

import (
	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/pkg/apperror"
	"github.com/jewelsoft/estima-api/pkg/printer"
)

// PrinterService reports printer status and runs test prints.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	paperWidth  int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, paperWidth int) *PrinterService {
	return &PrinterService{printer: p, printerType: printerType, paperWidth: paperWidth}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample slip to the printer. The composed slip is
// returned so the handler can surface it as JSON when no hardware is
// attached.
func (s *PrinterService) TestPrint() (*entity.Slip, error) {
	slip := &entity.Slip{
		TranNo:     "TEST-001",
		CompanyID:  "TEST",
		Date:       "01/01/2026",
		Time:       "10:00:00 AM",
		GoldRate:   10000,
		SilverRate: 120.50,
		Items: []entity.SlipItem{
			{Seq: 1, ItemID: 22, TagNo: "165", ItemName: "TEST RING", Pcs: 1, GrsWt: 8.5, NetWt: 8.0, Amount: 52700},
		},
		TotalPcs:   1,
		TotalGrsWt: 8.5,
		BaseAmount: 52700,
		CGST:       790.5,
		SGST:       790.5,
		GrandTotal: 54281,
		Username:   "system",
	}

	data := FormatSlip(slip, s.paperWidth)
	if err := s.printer.Print(data); err != nil {
		return slip, apperror.NewPrintError("Test print failed")
	}
	return slip, nil
}
