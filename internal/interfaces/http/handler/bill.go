package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/application/billing"
)

// BillHandler handles bill endpoints
type BillHandler struct {
	BaseHandler
	billService       *billing.BillService
	generationService *billing.GenerationService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *billing.BillService, generationService *billing.GenerationService) *BillHandler {
	return &BillHandler{
		billService:       billService,
		generationService: generationService,
	}
}

// Create issues a bill manually for any category
func (h *BillHandler) Create(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billing.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.billService.CreateBill(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single bill
func (h *BillHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	resp, err := h.billService.GetBill(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns bills with filtering and pagination. BUSINESS users are
// always restricted to their own bills regardless of the filter.
func (h *BillHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billing.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if businessID, err := getBusinessID(c); err == nil && businessID != uuid.Nil {
		filter.BusinessID = &businessID
	}

	result, err := h.billService.ListBills(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetSummary returns aggregate billing figures for the plaza
func (h *BillHandler) GetSummary(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.billService.GetSummary(c.Request.Context(), plazaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Waveoff writes off the outstanding balance of a bill
func (h *BillHandler) Waveoff(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.WaveoffBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billService.WaveoffBill(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel voids a bill that has received no payments
func (h *BillHandler) Cancel(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.CancelBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.billService.CancelBill(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GenerateRent runs the monthly rent bill generation for the plaza
func (h *BillHandler) GenerateRent(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.generationService.GenerateRentBills(c.Request.Context(), plazaID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SweepOverdue marks past-due pending bills as overdue
func (h *BillHandler) SweepOverdue(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.billService.SweepOverdue(c.Request.Context(), plazaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
