package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/payroll"
)

// SalaryHandler handles salary record endpoints
type SalaryHandler struct {
	BaseHandler
	salaryService *payroll.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(salaryService *payroll.SalaryService) *SalaryHandler {
	return &SalaryHandler{
		salaryService: salaryService,
	}
}

// Generate creates salary records for all active staff for a period
func (h *SalaryHandler) Generate(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req payroll.GenerateSalariesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.salaryService.GenerateSalaries(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a single salary record
func (h *SalaryHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salary record ID")
		return
	}

	resp, err := h.salaryService.GetSalary(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns salary records with filtering and pagination
func (h *SalaryHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter payroll.SalaryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.salaryService.ListSalaries(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Adjust updates bonus or deduction on an unpaid salary record
func (h *SalaryHandler) Adjust(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salary record ID")
		return
	}

	var req payroll.AdjustSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.salaryService.AdjustSalary(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Pay marks a salary record as paid
func (h *SalaryHandler) Pay(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid salary record ID")
		return
	}
	paidBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.salaryService.PaySalary(c.Request.Context(), plazaID, id, paidBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
