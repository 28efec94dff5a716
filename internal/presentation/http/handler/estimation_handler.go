package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/application/service"
	"github.com/jewelsoft/estima-api/internal/presentation/http/dto/response"
	"github.com/jewelsoft/estima-api/pkg/pagination"
)

// EstimationHandler handles estimation submission and slip HTTP requests
type EstimationHandler struct {
	submissionService *service.SubmissionService
	receiptService    *service.ReceiptService
}

// NewEstimationHandler creates a new estimation handler
func NewEstimationHandler(submissionService *service.SubmissionService, receiptService *service.ReceiptService) *EstimationHandler {
	return &EstimationHandler{
		submissionService: submissionService,
		receiptService:    receiptService,
	}
}

// Submit pushes the operator's pending grid through the backend workflow
// @Summary Submit estimation
// @Description Issue the pending entries as a backend estimation transaction
// @Tags estimations
// @Security BearerAuth
// @Success 201 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /estimations [post]
func (h *EstimationHandler) Submit(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), operator)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Estimation submitted", result)
}

// List returns the operator's estimation history
// @Summary Estimation history
// @Description List the operator's submitted estimations, newest first
// @Tags estimations
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /estimations [get]
func (h *EstimationHandler) List(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	result, err := h.submissionService.History(c.Request.Context(), operator, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Estimations retrieved", result)
}

// GetSlip composes the slip for a batch without printing it
// @Summary Slip preview
// @Description Compose the estimation slip for a submitted batch
// @Tags estimations
// @Security BearerAuth
// @Param batch_no path string true "Estimation batch number"
// @Success 200 {object} response.APIResponse
// @Router /estimations/{batch_no}/slip [get]
func (h *EstimationHandler) GetSlip(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	slip, err := h.receiptService.ComposeSlip(c.Request.Context(), operator, c.Param("batch_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Slip composed", slip)
}

// Print composes the slip for a batch and sends it to the printer
// @Summary Print slip
// @Description Print the estimation slip for a submitted batch
// @Tags estimations
// @Security BearerAuth
// @Param batch_no path string true "Estimation batch number"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /estimations/{batch_no}/print [post]
func (h *EstimationHandler) Print(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	slip, err := h.receiptService.PrintSlip(c.Request.Context(), operator, c.Param("batch_no"))
	if err != nil {
		// When only the printer failed the composed slip still goes
		// back so the client can render it on screen.
		if slip != nil {
			response.ErrorWithData(c, err, slip)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Slip printed", slip)
}
