package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plazafl/backend/internal/application/payroll"
)

// StaffHandler handles plaza staff roster endpoints
type StaffHandler struct {
	BaseHandler
	staffService *payroll.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *payroll.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

// Create adds a staff member to the plaza payroll
func (h *StaffHandler) Create(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req payroll.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.staffService.CreateStaff(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single staff member
func (h *StaffHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	resp, err := h.staffService.GetStaff(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns staff with filtering and pagination
func (h *StaffHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter payroll.StaffListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.staffService.ListStaff(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update modifies staff details
func (h *StaffHandler) Update(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	var req payroll.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.staffService.UpdateStaff(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate returns a staff member to the active payroll
func (h *StaffHandler) Activate(c *gin.Context) {
	h.transition(c, h.staffService.ActivateStaff)
}

// Deactivate suspends a staff member from the payroll
func (h *StaffHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.staffService.DeactivateStaff)
}

// MarkLeft ends employment for a staff member
func (h *StaffHandler) MarkLeft(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	var req payroll.MarkStaffLeftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.staffService.MarkStaffLeft(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *StaffHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, plazaID, id uuid.UUID) (*payroll.StaffResponse, error),
) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	resp, err := apply(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
