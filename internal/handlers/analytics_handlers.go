package handlers

import (
	"net/http"

	"invdash_backend/internal/middleware"
	"invdash_backend/internal/services"
	"invdash_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the dashboard, chart and forecast endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsHandler creates a new instance of AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard handles GET /api/v1/dashboard.
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	summary, err := h.analyticsService.GetDashboard(userID)
	if err != nil {
		utils.LogError(err, "dashboard assembly failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"inventory_count":   summary.InventoryCount,
		"categories_count":  summary.CategoriesCount,
		"orders_count":      summary.OrdersCount,
		"stock_value":       summary.StockValue,
		"total_sales":       summary.TotalSales,
		"low_stock_products": summary.LowStockProducts,
		"recent_orders":     summary.RecentOrders,
		"recent_activities": summary.RecentActivities,
		"company_name":      summary.CompanyName,
	})
}

// GetCategoryData handles GET /api/v1/analytics/categories.
func (h *AnalyticsHandler) GetCategoryData(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	series, err := h.analyticsService.GetCategoryData(userID)
	if err != nil {
		utils.LogError(err, "category chart failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load category data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"labels":        series.Labels,
		"price_data":    series.PriceData,
		"quantity_data": series.QuantityData,
	})
}

// GetInventoryData handles GET /api/v1/analytics/inventory.
func (h *AnalyticsHandler) GetInventoryData(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	categorySeries, itemSeries, err := h.analyticsService.GetInventoryData(userID)
	if err != nil {
		utils.LogError(err, "inventory chart failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load inventory data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": categorySeries,
		"items":    itemSeries,
	})
}

// GetSalesData handles GET /api/v1/analytics/sales.
func (h *AnalyticsHandler) GetSalesData(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	charts, err := h.analyticsService.GetSalesData(userID)
	if err != nil {
		utils.LogError(err, "sales chart failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load sales data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": charts.Products,
		"today":    charts.Today,
	})
}

// GetForecast handles GET /api/v1/analytics/forecast.
func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	series, err := h.analyticsService.GetForecast(userID)
	if err != nil {
		utils.LogError(err, "forecast failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load forecast")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  series.Labels,
		"data":    series.Data,
	})
}

// GetOverview handles GET /api/v1/analytics.
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.RespondFailure(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	overview, err := h.analyticsService.GetOverview(userID)
	if err != nil {
		utils.LogError(err, "analytics overview failed")
		utils.RespondFailure(c, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"monthly_sales":   overview.MonthlySales,
		"top_products":    overview.TopProducts,
		"category_values": overview.CategoryValues,
		"inventory":       overview.Inventory,
		"currency":        overview.Currency,
	})
}
