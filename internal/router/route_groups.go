package router

import (
	"invdash_backend/internal/handlers"
	"invdash_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
	}
}

// SetupInventoryRoutes sets up the inventory routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := authenticatedGroup.Group("/inventory")
	{
		inventoryRoutes.GET("", inventoryHandler.GetInventory)
		inventoryRoutes.POST("", inventoryHandler.AddItem)
		inventoryRoutes.GET("/available", inventoryHandler.GetAvailableItems)
		inventoryRoutes.GET("/:id", inventoryHandler.GetItem)
		inventoryRoutes.PUT("/:id", inventoryHandler.EditItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
	}
}

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(authenticatedGroup *gin.RouterGroup, categoryHandler *handlers.CategoryHandler) {
	categoryRoutes := authenticatedGroup.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetCategories)
		categoryRoutes.POST("", categoryHandler.AddCategory)
	}
}

// SetupAnalyticsRoutes sets up the dashboard, analytics and forecast routes.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	authenticatedGroup.GET("/dashboard", analyticsHandler.GetDashboard)

	analyticsRoutes := authenticatedGroup.Group("/analytics")
	{
		analyticsRoutes.GET("", analyticsHandler.GetOverview)
		analyticsRoutes.GET("/categories", analyticsHandler.GetCategoryData)
		analyticsRoutes.GET("/inventory", analyticsHandler.GetInventoryData)
		analyticsRoutes.GET("/sales", analyticsHandler.GetSalesData)
		analyticsRoutes.GET("/forecast", analyticsHandler.GetForecast)
	}
}

// SetupHistoryRoutes sets up the audit log routes.
func SetupHistoryRoutes(authenticatedGroup *gin.RouterGroup, historyHandler *handlers.HistoryHandler) {
	authenticatedGroup.GET("/history", historyHandler.GetHistory)
}

// SetupSettingsRoutes sets up the settings routes.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	settingsRoutes := authenticatedGroup.Group("/settings")
	{
		settingsRoutes.GET("", settingsHandler.GetSettings)
		settingsRoutes.PUT("/company-name", settingsHandler.UpdateCompanyName)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	authenticatedGroup.GET("/reports/sales", reportHandler.SalesReport)
}

// SetupStreamRoutes sets up the server-sent events route.
func SetupStreamRoutes(authenticatedGroup *gin.RouterGroup, streamHandler *handlers.StreamHandler) {
	authenticatedGroup.GET("/stream", streamHandler.Stream)
}
