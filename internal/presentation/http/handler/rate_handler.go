package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/application/service"
	"github.com/jewelsoft/estima-api/internal/presentation/http/dto/response"
)

// RateHandler serves the current board rates.
type RateHandler struct {
	rateService *service.RateService
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// GetRates returns the latest rate snapshot
// @Summary Board rates
// @Description Get the latest gold and silver board rates
// @Tags rates
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /rates [get]
func (h *RateHandler) GetRates(c *gin.Context) {
	response.OK(c, "Rates retrieved", h.rateService.Snapshot())
}

// RefreshRates forces a rate fetch outside the poll cadence
// @Summary Refresh rates
// @Description Fetch the board rates immediately
// @Tags rates
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /rates/refresh [post]
func (h *RateHandler) RefreshRates(c *gin.Context) {
	response.OK(c, "Rates refreshed", h.rateService.Refresh(c.Request.Context()))
}
