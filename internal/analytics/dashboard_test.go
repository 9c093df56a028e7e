package analytics

import (
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func TestDashboardSummary(t *testing.T) {
	// Wednesday noon.
	asOf := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	locations := []models.Location{{ID: 1, Code: "downtown"}, {ID: 2, Code: "airport"}}

	in := DashboardInput{
		Locations: locations,
		Orders: []models.Order{
			orderWithTotal(100, asOf.Add(-2*time.Hour), 1),               // today
			orderWithTotal(50, asOf.AddDate(0, 0, -1), 1),                // this week, not today
			orderWithTotal(25, asOf.AddDate(0, 0, -9), 1),                // this month, not this week
			orderWithTotal(999, asOf.AddDate(0, -2, 0), 1),               // out of every window
			{LocationID: 2, TotalAmount: 70, CreatedAt: asOf.Add(-time.Hour), Status: models.OrderStatusPending},
		},
		Tasks: []models.Task{
			{LocationID: 1, Status: models.TaskStatusPending, DueAt: asOf},
			{LocationID: 1, Status: models.TaskStatusCompleted, DueAt: asOf},
			{LocationID: 2, Status: models.TaskStatusInProgress, DueAt: asOf},
		},
		Ingredients: []models.Ingredient{
			{LocationID: 1, CurrentStock: 2, ReorderLevel: 5},
			{LocationID: 1, CurrentStock: 50, ReorderLevel: 5},
		},
	}

	s := DashboardSummary(in, "downtown", asOf)
	if s.TotalSalesToday != 100 {
		t.Errorf("expected today sales 100, got %v", s.TotalSalesToday)
	}
	if s.TotalSalesThisWeek != 150 {
		t.Errorf("expected week sales 150, got %v", s.TotalSalesThisWeek)
	}
	if s.TotalSalesThisMonth != 175 {
		t.Errorf("expected month sales 175, got %v", s.TotalSalesThisMonth)
	}
	if s.OpenTasksCount != 1 {
		t.Errorf("expected 1 open downtown task, got %d", s.OpenTasksCount)
	}
	if s.LowStockItemsCount != 1 {
		t.Errorf("expected 1 low stock item, got %d", s.LowStockItemsCount)
	}

	all := DashboardSummary(in, models.LocationAll, asOf)
	if all.PendingOrdersCount != 1 {
		t.Errorf("expected 1 pending order across locations, got %d", all.PendingOrdersCount)
	}
	if all.OpenTasksCount != 2 {
		t.Errorf("expected 2 open tasks across locations, got %d", all.OpenTasksCount)
	}

	// Same input, same asOf: identical output.
	if again := DashboardSummary(in, models.LocationAll, asOf); again != all {
		t.Error("summary must be deterministic for a fixed asOf")
	}
}
