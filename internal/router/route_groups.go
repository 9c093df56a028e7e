package router

import (
	"restaurant_ops_backend/internal/handlers"
	"restaurant_ops_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	orderRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager", "staff"))
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	}
}

// SetupMenuRoutes sets up the menu item and recipe routes.
func SetupMenuRoutes(authenticatedGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuWriteRoutes := authenticatedGroup.Group("/menu-items")
	menuWriteRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager"))
	{
		menuWriteRoutes.POST("", menuHandler.CreateMenuItem)
		menuWriteRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		menuWriteRoutes.POST("/:id/recipe", menuHandler.AddRecipeLine)
	}

	menuReadRoutes := authenticatedGroup.Group("/menu-items")
	menuReadRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager", "staff"))
	{
		menuReadRoutes.GET("", menuHandler.GetMenuItems)
		menuReadRoutes.GET("/:id", menuHandler.GetMenuItemByID)
		menuReadRoutes.GET("/:id/recipe", menuHandler.GetRecipe)
	}
}

// SetupStaffRoutes sets up the staff routes. Hiring is manager territory.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffWriteRoutes := authenticatedGroup.Group("/staff")
	staffWriteRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager"))
	{
		staffWriteRoutes.POST("", staffHandler.CreateStaffMember)
	}

	authenticatedGroup.GET("/staff", middleware.RoleAuthMiddleware("admin", "manager", "staff"), staffHandler.GetStaffMembers)
	authenticatedGroup.GET("/staff/:id", middleware.RoleAuthMiddleware("admin", "manager", "staff"), staffHandler.GetStaffMemberByID)
}

// SetupShiftRoutes sets up the shift scheduling and clock punch routes.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	shiftRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager", "staff"))
	{
		shiftRoutes.POST("", staffHandler.CreateShift)
		shiftRoutes.GET("", staffHandler.GetShifts)
		shiftRoutes.POST("/:id/clock-in", staffHandler.ClockIn)
		shiftRoutes.POST("/:id/clock-out", staffHandler.ClockOut)
		shiftRoutes.POST("/:id/finalize", middleware.RoleAuthMiddleware("admin", "manager"), staffHandler.FinalizeShift)
	}
}

// SetupInventoryRoutes sets up the ingredient and stock movement routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	ingredientRoutes := authenticatedGroup.Group("/ingredients")
	ingredientRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager"))
	{
		ingredientRoutes.POST("", inventoryHandler.CreateIngredient)
	}
	authenticatedGroup.GET("/ingredients", middleware.RoleAuthMiddleware("admin", "manager", "staff"), inventoryHandler.GetIngredients)

	movementRoutes := authenticatedGroup.Group("/stock-movements")
	movementRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager", "staff"))
	{
		movementRoutes.POST("", inventoryHandler.RecordMovement)
		movementRoutes.GET("", inventoryHandler.GetMovements)
	}
}

// SetupTaskRoutes sets up the operational task routes.
func SetupTaskRoutes(authenticatedGroup *gin.RouterGroup, taskHandler *handlers.TaskHandler) {
	taskRoutes := authenticatedGroup.Group("/tasks")
	taskRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager", "staff"))
	{
		taskRoutes.POST("", taskHandler.CreateTask)
		taskRoutes.GET("", taskHandler.GetTasks)
		taskRoutes.GET("/:id", taskHandler.GetTaskByID)
		taskRoutes.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
	}
}

// SetupLocationRoutes sets up the location routes.
func SetupLocationRoutes(authenticatedGroup *gin.RouterGroup, locationHandler *handlers.LocationHandler) {
	locationWriteRoutes := authenticatedGroup.Group("/locations")
	locationWriteRoutes.Use(middleware.RoleAuthMiddleware("admin"))
	{
		locationWriteRoutes.POST("", locationHandler.CreateLocation)
	}

	authenticatedGroup.GET("/locations", middleware.RoleAuthMiddleware("admin", "manager", "staff"), locationHandler.GetLocations)
	authenticatedGroup.GET("/locations/:code", middleware.RoleAuthMiddleware("admin", "manager", "staff"), locationHandler.GetLocationByCode)
}

// SetupAnalyticsRoutes sets up the aggregated reporting routes.
func SetupAnalyticsRoutes(authenticatedGroup *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler) {
	analyticsRoutes := authenticatedGroup.Group("/analytics")
	analyticsRoutes.Use(middleware.RoleAuthMiddleware("admin", "manager"))
	{
		analyticsRoutes.GET("/dashboard", analyticsHandler.GetDashboard)
		analyticsRoutes.GET("/sales", analyticsHandler.GetSales)
		analyticsRoutes.GET("/growth", analyticsHandler.GetGrowth)
		analyticsRoutes.GET("/top-items", analyticsHandler.GetTopItems)
		analyticsRoutes.GET("/top-staff", analyticsHandler.GetTopStaff)
		analyticsRoutes.GET("/labor", analyticsHandler.GetLabor)
		analyticsRoutes.GET("/wastage", analyticsHandler.GetWastage)
		analyticsRoutes.GET("/locations", analyticsHandler.GetLocations)
		analyticsRoutes.GET("/tasks", analyticsHandler.GetTasks)
		analyticsRoutes.GET("/trend", analyticsHandler.GetTrend)
	}
}
