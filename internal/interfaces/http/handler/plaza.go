package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/tenancy"
)

// PlazaHandler handles plaza registration and lookup endpoints
type PlazaHandler struct {
	BaseHandler
	plazaService *tenancy.PlazaService
}

// NewPlazaHandler creates a new PlazaHandler
func NewPlazaHandler(plazaService *tenancy.PlazaService) *PlazaHandler {
	return &PlazaHandler{
		plazaService: plazaService,
	}
}

// Create registers a new plaza
func (h *PlazaHandler) Create(c *gin.Context) {
	var req tenancy.CreatePlazaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.plazaService.CreatePlaza(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns the authenticated user's plaza
func (h *PlazaHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.plazaService.GetPlaza(c.Request.Context(), plazaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all registered plazas
func (h *PlazaHandler) List(c *gin.Context) {
	resp, err := h.plazaService.ListPlazas(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
