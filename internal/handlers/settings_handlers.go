package handlers

import (
	"errors"
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes per-tenant settings and the company profile.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new instance of SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /api/v1/settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		utils.LogError(err, "settings listing failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"settings": settings,
	})
}

// UpdateCompanyName handles PUT /api/v1/settings/company-name.
func (h *SettingsHandler) UpdateCompanyName(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req services.UpdateCompanyNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "Company name is required")
		return
	}

	if err := h.settingsService.UpdateCompanyName(userID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondFailure(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondFailure(c, http.StatusNotFound, "User not found")
		default:
			utils.LogError(err, "company name update failed")
			utils.RespondFailure(c, http.StatusInternalServerError, "Failed to update company name")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Company name updated successfully",
	})
}
