package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/billing"
)

// MeterReadingHandler handles utility meter reading endpoints
type MeterReadingHandler struct {
	BaseHandler
	readingService *billing.MeterReadingService
}

// NewMeterReadingHandler creates a new MeterReadingHandler
func NewMeterReadingHandler(readingService *billing.MeterReadingService) *MeterReadingHandler {
	return &MeterReadingHandler{
		readingService: readingService,
	}
}

// Record records a new meter reading
func (h *MeterReadingHandler) Record(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billing.RecordMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	resp, err := h.readingService.RecordReading(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single meter reading
func (h *MeterReadingHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	resp, err := h.readingService.GetReading(c.Request.Context(), plazaID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns meter readings with filtering and pagination
func (h *MeterReadingHandler) List(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter billing.MeterReadingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.readingService.ListReadings(c.Request.Context(), plazaID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// CreateBill issues a utility bill covering one unbilled reading
func (h *MeterReadingHandler) CreateBill(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	readingID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid reading ID")
		return
	}

	var req billing.CreateUtilityBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.readingService.CreateUtilityBill(c.Request.Context(), plazaID, readingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
