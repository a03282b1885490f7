package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/billing"
)

// InstalmentHandler handles maintenance instalment plan endpoints
type InstalmentHandler struct {
	BaseHandler
	instalmentService *billing.InstalmentService
}

// NewInstalmentHandler creates a new InstalmentHandler
func NewInstalmentHandler(instalmentService *billing.InstalmentService) *InstalmentHandler {
	return &InstalmentHandler{
		instalmentService: instalmentService,
	}
}

// CreatePlan splits a maintenance bill into instalments
func (h *InstalmentHandler) CreatePlan(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	billID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.CreateInstalmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.instalmentService.CreatePlan(c.Request.Context(), plazaID, billID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListForBill returns a bill's instalment plan
func (h *InstalmentHandler) ListForBill(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	billID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	resp, err := h.instalmentService.ListForBill(c.Request.Context(), plazaID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Pay settles a pending instalment
func (h *InstalmentHandler) Pay(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid instalment ID")
		return
	}

	resp, err := h.instalmentService.PayInstalment(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel voids an unpaid instalment
func (h *InstalmentHandler) Cancel(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid instalment ID")
		return
	}

	var req billing.CancelInstalmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.instalmentService.CancelInstalment(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
