package router

import (
	"database/sql"
	"strconv"

	"restaurant_ops_backend/internal/handlers"
	"restaurant_ops_backend/internal/middleware"
	"restaurant_ops_backend/internal/repositories"
	"restaurant_ops_backend/internal/services"
	"restaurant_ops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all
// API routes on the engine.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	locationRepo := repositories.NewLocationRepository(db)

	taxRate, err := strconv.ParseFloat(utils.Getenv("TAX_RATE", "0.08"), 64)
	if err != nil || taxRate < 0 {
		taxRate = 0.08
	}

	// Services
	authService := services.NewAuthService(authRepo)
	orderService := services.NewOrderService(orderRepo, menuRepo, inventoryRepo, db, taxRate)
	menuService := services.NewMenuService(menuRepo)
	staffService := services.NewStaffService(staffRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, db)
	taskService := services.NewTaskService(taskRepo)
	locationService := services.NewLocationService(locationRepo)
	analyticsService := services.NewAnalyticsService(orderRepo, staffRepo, menuRepo, inventoryRepo, taskRepo, locationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	menuHandler := handlers.NewMenuHandler(menuService)
	staffHandler := handlers.NewStaffHandler(staffService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	taskHandler := handlers.NewTaskHandler(taskService)
	locationHandler := handlers.NewLocationHandler(locationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/auth/me", authHandler.Me)

		SetupOrderRoutes(authenticated, orderHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupShiftRoutes(authenticated, staffHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupTaskRoutes(authenticated, taskHandler)
		SetupLocationRoutes(authenticated, locationHandler)
		SetupAnalyticsRoutes(authenticated, analyticsHandler)
	}
}

// SetupPublicAuthRoutes registers the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.Refresh)
}
