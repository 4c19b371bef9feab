package router

import (
	"database/sql"

	"invdash_backend/internal/handlers"
	"invdash_backend/internal/middleware"
	"invdash_backend/internal/repositories"
	"invdash_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// Initialize Services
	authService := services.NewAuthService(userRepo, settingRepo, db)
	categoryService := services.NewCategoryService(categoryRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, categoryRepo, historyRepo, settingRepo, db)
	orderService := services.NewOrderService(orderRepo, inventoryRepo, settingRepo, db)
	analyticsService := services.NewAnalyticsService(analyticsRepo, inventoryRepo, orderRepo, historyRepo, userRepo, settingRepo)
	historyService := services.NewHistoryService(historyRepo)
	settingsService := services.NewSettingsService(settingRepo, userRepo, historyRepo, db)
	reportService := services.NewReportService(analyticsRepo, orderRepo, userRepo, settingRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)
	streamHandler := handlers.NewStreamHandler()

	apiGroup := engine.Group("/api/v1")

	SetupAuthRoutes(apiGroup, authHandler)

	authenticatedGroup := apiGroup.Group("")
	authenticatedGroup.Use(middleware.AuthMiddleware())
	{
		SetupOrderRoutes(authenticatedGroup, orderHandler)
		SetupInventoryRoutes(authenticatedGroup, inventoryHandler)
		SetupCategoryRoutes(authenticatedGroup, categoryHandler)
		SetupAnalyticsRoutes(authenticatedGroup, analyticsHandler)
		SetupHistoryRoutes(authenticatedGroup, historyHandler)
		SetupSettingsRoutes(authenticatedGroup, settingsHandler)
		SetupReportRoutes(authenticatedGroup, reportHandler)
		SetupStreamRoutes(authenticatedGroup, streamHandler)
	}
}
