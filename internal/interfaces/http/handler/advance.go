package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/tenancy"
)

// AdvanceHandler handles advance prepayment endpoints
type AdvanceHandler struct {
	BaseHandler
	advanceService *tenancy.AdvanceService
}

// NewAdvanceHandler creates a new AdvanceHandler
func NewAdvanceHandler(advanceService *tenancy.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{
		advanceService: advanceService,
	}
}

// Create records an advance prepayment for a business
func (h *AdvanceHandler) Create(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tenancy.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.advanceService.CreateAdvance(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single advance
func (h *AdvanceHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advance ID")
		return
	}

	resp, err := h.advanceService.GetAdvance(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns advances with filtering and pagination
func (h *AdvanceHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter tenancy.AdvanceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.advanceService.ListAdvances(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Settle marks an advance as consumed by a generated bill
func (h *AdvanceHandler) Settle(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advance ID")
		return
	}

	resp, err := h.advanceService.SettleAdvance(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel voids an active advance
func (h *AdvanceHandler) Cancel(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid advance ID")
		return
	}

	var req tenancy.CancelAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.advanceService.CancelAdvance(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
