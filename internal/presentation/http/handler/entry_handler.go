package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/application/service"
	"github.com/jewelsoft/estima-api/internal/presentation/http/dto/request"
	"github.com/jewelsoft/estima-api/internal/presentation/http/dto/response"
)

// EntryHandler handles sales-grid entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Create validates a triple and loads its rows into the grid
// @Summary Add entry
// @Description Validate an item/tag/employee triple and load its priced rows
// @Tags entries
// @Security BearerAuth
// @Param request body request.EntryRequest true "Entry triple"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.entryService.SubmitEntry(c.Request.Context(), operator, service.EntryInput{
		ItemID: req.ItemID,
		TagNo:  req.TagNo,
		EmpID:  req.EmpID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Entry added", result)
}

// List returns the operator's pending grid with totals
// @Summary Pending entries
// @Description Get the pending sales grid and running totals
// @Tags entries
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.OK(c, "Pending entries retrieved", h.entryService.Pending(operator))
}

// Remove drops the rows loaded under a triple
// @Summary Remove entry
// @Description Remove the grid rows loaded under an item/tag/employee triple
// @Tags entries
// @Security BearerAuth
// @Param request body request.RemoveEntryRequest true "Entry triple"
// @Success 200 {object} response.APIResponse
// @Router /entries/remove [post]
func (h *EntryHandler) Remove(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.RemoveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.entryService.RemoveEntry(c.Request.Context(), operator, service.EntryInput{
		ItemID: req.ItemID,
		TagNo:  req.TagNo,
		EmpID:  req.EmpID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entry removed", result)
}

// Clear empties the operator's pending grid
// @Summary Clear entries
// @Description Remove every pending entry
// @Tags entries
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /entries [delete]
func (h *EntryHandler) Clear(c *gin.Context) {
	operator, ok := GetOperator(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	h.entryService.ClearPending(operator)
	response.OK(c, "Entries cleared", h.entryService.Pending(operator))
}

// ListItems returns the distinct stock item IDs for entry suggestions
// @Summary Item IDs
// @Description List distinct stock item IDs
// @Tags entries
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *EntryHandler) ListItems(c *gin.Context) {
	ids, err := h.entryService.ListItemIDs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item IDs retrieved", gin.H{"item_ids": ids})
}

// Scan interprets a barcode payload
// @Summary Resolve scan
// @Description Interpret a barcode payload and say which fields it fills
// @Tags entries
// @Security BearerAuth
// @Param request body request.ScanRequest true "Scan payload"
// @Success 200 {object} response.APIResponse
// @Router /scan [post]
func (h *EntryHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.entryService.ResolveScan(service.ScanField(req.Field), req.Data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scan resolved", result)
}
