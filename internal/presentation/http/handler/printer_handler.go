package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/application/service"
	"github.com/jewelsoft/estima-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer status and test-print HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus reports printer configuration and connectivity
// @Summary Printer status
// @Description Get the configured printer type and connection state
// @Tags printer
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a sample slip to the printer
// @Summary Test print
// @Description Print a sample estimation slip
// @Tags printer
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /printer/test [post]
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	slip, err := h.printerService.TestPrint()
	if err != nil {
		if slip != nil {
			response.ErrorWithData(c, err, slip)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Test slip printed", slip)
}
