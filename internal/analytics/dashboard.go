package analytics

import (
	"time"

	"restaurant_ops_backend/internal/models"
)

// DashboardInput carries the collections the dashboard summary is
// computed from. Everything is supplied by the caller; the engine
// derives today/week/month windows from the explicit asOf.
type DashboardInput struct {
	Orders      []models.Order
	Tasks       []models.Task
	Ingredients []models.Ingredient
	Locations   []models.Location
}

// DashboardSummary computes the headline dashboard numbers for a
// location scope as of the given instant.
func DashboardSummary(in DashboardInput, locationID string, asOf time.Time) models.DashboardSummary {
	idx := NewLocationIndex(in.Locations)

	today, _, _ := PeriodBounds(PeriodToday, asOf)
	week, _, _ := PeriodBounds(PeriodWeek, asOf)
	month, _, _ := PeriodBounds(PeriodMonth, asOf)
	today.LocationID, week.LocationID, month.LocationID = locationID, locationID, locationID

	completed := make([]models.Order, 0, len(in.Orders))
	for _, o := range in.Orders {
		if o.Status == models.OrderStatusCompleted {
			completed = append(completed, o)
		}
	}

	var summary models.DashboardSummary
	summary.TotalSalesToday = CalculateSalesMetrics(FilterOrders(completed, today, idx)).TotalSales
	summary.TotalSalesThisWeek = CalculateSalesMetrics(FilterOrders(completed, week, idx)).TotalSales
	summary.TotalSalesThisMonth = CalculateSalesMetrics(FilterOrders(completed, month, idx)).TotalSales

	locScope := AllTime(locationID)
	for _, o := range FilterOrders(in.Orders, locScope, idx) {
		if o.Status == models.OrderStatusPending || o.Status == models.OrderStatusPreparing {
			summary.PendingOrdersCount++
		}
	}
	for _, t := range in.Tasks {
		if !locScope.matchesLocation(idx[t.LocationID]) {
			continue
		}
		if t.Status == models.TaskStatusPending || t.Status == models.TaskStatusInProgress || t.Status == models.TaskStatusOverdue {
			summary.OpenTasksCount++
		}
	}
	for _, ing := range in.Ingredients {
		if !locScope.matchesLocation(idx[ing.LocationID]) {
			continue
		}
		if ing.ReorderLevel > 0 && ing.CurrentStock <= ing.ReorderLevel {
			summary.LowStockItemsCount++
		}
	}
	return summary
}
