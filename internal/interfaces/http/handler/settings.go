package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plazafl/backend/internal/application/billing"
)

// SettingsHandler handles plaza billing settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *billing.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *billing.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get returns the plaza's billing settings, creating defaults on first access
func (h *SettingsHandler) Get(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.GetSettings(c.Request.Context(), plazaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces the plaza's billing settings
func (h *SettingsHandler) Update(c *gin.Context) {
	plazaID, err := getPlazaID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billing.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.settingsService.UpdateSettings(c.Request.Context(), plazaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
