package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/application/tenancy"
)

// BusinessHandler handles business onboarding and lifecycle endpoints
type BusinessHandler struct {
	BaseHandler
	businessService *tenancy.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService *tenancy.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
	}
}

// SetRentManagementRequest toggles automatic rent billing for a business
type SetRentManagementRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Create registers a new business in the plaza
func (h *BusinessHandler) Create(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tenancy.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.businessService.CreateBusiness(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single business
func (h *BusinessHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	resp, err := h.businessService.GetBusiness(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns businesses with filtering and pagination
func (h *BusinessHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter tenancy.BusinessListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.businessService.ListBusinesses(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update modifies business contact and billing details
func (h *BusinessHandler) Update(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req tenancy.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.businessService.UpdateBusiness(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetRentManagement enables or disables automatic rent billing
func (h *BusinessHandler) SetRentManagement(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req SetRentManagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.businessService.SetRentManagement(c.Request.Context(), plazaID, id, *req.Enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate reactivates a deactivated business
func (h *BusinessHandler) Activate(c *gin.Context) {
	h.transition(c, h.businessService.ActivateBusiness)
}

// Deactivate suspends a business without ending its lease
func (h *BusinessHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.businessService.DeactivateBusiness)
}

// Terminate ends the lease permanently
func (h *BusinessHandler) Terminate(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req tenancy.TerminateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.businessService.TerminateBusiness(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *BusinessHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, plazaID, id uuid.UUID) (*tenancy.BusinessResponse, error),
) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	resp, err := apply(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
