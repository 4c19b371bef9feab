package handlers

import (
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the sales report PDF.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new instance of ReportHandler.
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesReport handles GET /api/v1/reports/sales.
func (h *ReportHandler) SalesReport(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	data, filename, err := h.reportService.BuildSalesReport(userID)
	if err != nil {
		utils.LogError(err, "sales report failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to generate sales report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
