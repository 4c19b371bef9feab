package handlers

import (
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HistoryHandler exposes the audit log.
type HistoryHandler struct {
	historyService services.HistoryService
}

// NewHistoryHandler creates a new instance of HistoryHandler.
func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory handles GET /api/v1/history.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := h.historyService.GetHistory(userID)
	if err != nil {
		utils.LogError(err, "history listing failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": entries,
	})
}
