package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/application/payments"
)

// PendingPaymentHandler handles the payment claim approval workflow
type PendingPaymentHandler struct {
	BaseHandler
	pendingService *payments.PendingPaymentService
}

// NewPendingPaymentHandler creates a new PendingPaymentHandler
func NewPendingPaymentHandler(pendingService *payments.PendingPaymentService) *PendingPaymentHandler {
	return &PendingPaymentHandler{
		pendingService: pendingService,
	}
}

// Submit records a payment claim from the authenticated business
func (h *PendingPaymentHandler) Submit(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	businessID, err := getBusinessID(c)
	if err != nil || businessID == uuid.Nil {
		h.Forbidden(c, "Only business accounts can submit payment claims")
		return
	}

	var req payments.SubmitPendingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.pendingService.Submit(c.Request.Context(), plazaID, businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single payment claim
func (h *PendingPaymentHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid claim ID")
		return
	}

	resp, err := h.pendingService.GetPendingPayment(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns payment claims with filtering and pagination. BUSINESS users
// see only their own claims.
func (h *PendingPaymentHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter payments.PendingPaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if businessID, err := getBusinessID(c); err == nil && businessID != uuid.Nil {
		filter.BusinessID = &businessID
	}

	result, err := h.pendingService.ListPendingPayments(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Approve converts a pending claim into a confirmed payment
func (h *PendingPaymentHandler) Approve(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid claim ID")
		return
	}
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.pendingService.Approve(c.Request.Context(), plazaID, id, reviewerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject declines a pending claim with a reason
func (h *PendingPaymentHandler) Reject(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid claim ID")
		return
	}
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req payments.RejectPendingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.pendingService.Reject(c.Request.Context(), plazaID, id, reviewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
