package models

// Performance tier constants, assigned to location rollups from
// thresholded revenue.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// SalesMetrics summarizes a scoped set of orders.
type SalesMetrics struct {
	TotalSales        float64 `json:"total_sales"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	GrossProfit       float64 `json:"gross_profit"`
	ProfitMargin      float64 `json:"profit_margin"` // percentage of total sales
}

// GrowthMetrics holds signed percentage deltas between a current period
// and a prior period of equal length. PeriodLabel is display metadata,
// e.g. "vs last 7 days".
type GrowthMetrics struct {
	SalesGrowth float64 `json:"sales_growth"`
	OrderGrowth float64 `json:"order_growth"`
	AOVGrowth   float64 `json:"aov_growth"`
	PeriodLabel string  `json:"period_label"`
}

// MenuItemPerformance is one row of a menu item ranking.
type MenuItemPerformance struct {
	MenuItemID   int64   `json:"menu_item_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	QuantitySold int     `json:"quantity_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
	Rank         int     `json:"rank"`
}

// StaffPerformance is one row of a staff ranking.
type StaffPerformance struct {
	StaffID      int64   `json:"staff_id"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	HoursWorked  float64 `json:"hours_worked"`
	SalesHandled float64 `json:"sales_handled"`
	OrdersTaken  int     `json:"orders_taken"`
	Rank         int     `json:"rank"`
}

// LocationPerformance is a per-location rollup with an assigned
// performance tier.
type LocationPerformance struct {
	LocationID        int64   `json:"location_id"`
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	TotalSales        float64 `json:"total_sales"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
	GrossProfit       float64 `json:"gross_profit"`
	Tier              string  `json:"tier"`
	Rank              int     `json:"rank"`
}

// LaborMetrics summarizes labor spend for a scope.
type LaborMetrics struct {
	TotalLaborCost      float64 `json:"total_labor_cost"`
	TotalRegularHours   float64 `json:"total_regular_hours"`
	TotalOvertimeHours  float64 `json:"total_overtime_hours"`
	TotalTips           float64 `json:"total_tips"`
	LaborCostPercentage float64 `json:"labor_cost_percentage"` // of revenue
	AverageHourlyRate   float64 `json:"average_hourly_rate"`   // implied by weighted hours
}

// WastageReport compares expected ingredient usage (from recipes times
// sold quantities) with actual usage (summed "out" movements).
type WastageReport struct {
	IngredientID         int64    `json:"ingredient_id"`
	IngredientName       string   `json:"ingredient_name"`
	Unit                 string   `json:"unit"`
	ExpectedUsage        float64  `json:"expected_usage"`
	ActualUsage          float64  `json:"actual_usage"`
	Variance             float64  `json:"variance"` // positive = consumed more than expected
	VariancePercentage   float64  `json:"variance_percentage"`
	EstimatedWastageCost float64  `json:"estimated_wastage_cost"` // never negative
	PrimaryReasons       []string `json:"primary_reasons"`
}

// TaskMetrics summarizes task throughput for a scope.
type TaskMetrics struct {
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	OverdueTasks         int     `json:"overdue_tasks"`
	CompletionRate       float64 `json:"completion_rate"` // percentage
	AverageQualityScore  float64 `json:"average_quality_score"`
	AvgDurationVariance  float64 `json:"avg_duration_variance_minutes"` // actual minus estimated
}

// SalesTrendPoint is one day on the sales trend chart.
type SalesTrendPoint struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	TotalSales        float64 `json:"total_sales"`
	OrderCount        int     `json:"order_count"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DashboardSummary holds the headline numbers for the dashboard.
type DashboardSummary struct {
	TotalSalesToday     float64 `json:"total_sales_today"`
	TotalSalesThisWeek  float64 `json:"total_sales_this_week"`
	TotalSalesThisMonth float64 `json:"total_sales_this_month"`
	PendingOrdersCount  int     `json:"pending_orders_count"`
	OpenTasksCount      int     `json:"open_tasks_count"`
	LowStockItemsCount  int     `json:"low_stock_items_count"`
}
