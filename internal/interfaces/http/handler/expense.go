package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/finance"
)

// ExpenseHandler handles plaza expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *finance.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *finance.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create records a plaza expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenseService.CreateExpense(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	resp, err := h.expenseService.GetExpense(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns expenses with filtering and pagination
func (h *ExpenseHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter finance.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update revises a recorded expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req finance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.expenseService.UpdateExpense(c.Request.Context(), plazaID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an expense record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), plazaID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MonthlyTotal returns the expense total for a month, defaulting to the
// current month
func (h *ExpenseHandler) MonthlyTotal(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if m := c.Query("month"); m != "" {
		month, err = strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			h.BadRequest(c, "Invalid month")
			return
		}
	}
	if y := c.Query("year"); y != "" {
		year, err = strconv.Atoi(y)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
	}

	total, err := h.expenseService.GetMonthlyExpenseTotal(c.Request.Context(), plazaID, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"month": month, "year": year, "total": total})
}
