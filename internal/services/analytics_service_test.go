package services

import (
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

type fakeOrderRepo struct {
	repositories.OrderRepository
	orders []models.Order
}

func (f *fakeOrderRepo) byStatus(filters models.OrderFilters) []models.Order {
	out := []models.Order{}
	for _, o := range f.orders {
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (f *fakeOrderRepo) GetOrdersWithItems(filters models.OrderFilters) ([]models.Order, error) {
	return f.byStatus(filters), nil
}

func (f *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	out := f.byStatus(filters)
	return out, len(out), nil
}

type fakeLocationRepo struct {
	repositories.LocationRepository
	locations []models.Location
}

func (f *fakeLocationRepo) GetLocations(onlyActive bool) ([]models.Location, error) {
	return f.locations, nil
}

type fakeTaskRepo struct {
	repositories.TaskRepository
	tasks []models.Task
}

func (f *fakeTaskRepo) GetTasks(filters models.TaskFilters) ([]models.Task, error) {
	return f.tasks, nil
}

type fakeInventoryRepo struct {
	repositories.InventoryRepository
	ingredients []models.Ingredient
	moves       []models.StockMovement
}

func (f *fakeInventoryRepo) GetIngredients(locationID *int64) ([]models.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakeInventoryRepo) GetMovements(filters models.MovementFilters) ([]models.StockMovement, error) {
	return f.moves, nil
}

type fakeAnalyticsStaffRepo struct {
	repositories.StaffRepository
	logs  []models.TimeLog
	costs []models.LaborCost
}

func (f *fakeAnalyticsStaffRepo) GetTimeLogs(locationID *int64, startDate, endDate *string) ([]models.TimeLog, error) {
	return f.logs, nil
}

func (f *fakeAnalyticsStaffRepo) GetLaborCosts(locationID *int64, startDate, endDate *string) ([]models.LaborCost, error) {
	return f.costs, nil
}

func TestGetDashboardCountsAllOpenOrders(t *testing.T) {
	asOf := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	orderRepo := &fakeOrderRepo{orders: []models.Order{
		{ID: 1, LocationID: 1, Status: models.OrderStatusCompleted, TotalAmount: 100, CreatedAt: asOf.Add(-2 * time.Hour)},
		{ID: 2, LocationID: 1, Status: models.OrderStatusPending, TotalAmount: 40, CreatedAt: asOf.Add(-1 * time.Hour)},
		{ID: 3, LocationID: 1, Status: models.OrderStatusPreparing, TotalAmount: 55, CreatedAt: asOf.Add(-30 * time.Minute)},
	}}
	svc := NewAnalyticsService(
		orderRepo,
		&fakeAnalyticsStaffRepo{},
		nil,
		&fakeInventoryRepo{},
		&fakeTaskRepo{},
		&fakeLocationRepo{locations: []models.Location{{ID: 1, Code: "downtown", IsActive: true}}},
	)

	summary, err := svc.GetDashboard("all", asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.PendingOrdersCount != 2 {
		t.Errorf("expected 2 open orders (pending + preparing), got %d", summary.PendingOrdersCount)
	}
	// Open orders never count as sales.
	if summary.TotalSalesToday != 100 {
		t.Errorf("expected sales today 100, got %v", summary.TotalSalesToday)
	}
}

func TestGetLaborMetricsTrimsToWindow(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	staffRepo := &fakeAnalyticsStaffRepo{
		logs: []models.TimeLog{
			{ID: 1, LocationID: 1, ClockIn: start.Add(9 * time.Hour), RegularHours: 8},
			{ID: 2, LocationID: 1, ClockIn: end.Add(9 * time.Hour), RegularHours: 6},
		},
		costs: []models.LaborCost{
			{ID: 1, LocationID: 1, WorkDate: "2025-03-10", TotalCompensation: 160},
			{ID: 2, LocationID: 1, WorkDate: "2025-03-11", TotalCompensation: 120},
		},
	}
	svc := NewAnalyticsService(
		&fakeOrderRepo{},
		staffRepo,
		nil,
		&fakeInventoryRepo{},
		&fakeTaskRepo{},
		&fakeLocationRepo{locations: []models.Location{{ID: 1, Code: "downtown", IsActive: true}}},
	)

	metrics, err := svc.GetLaborMetrics("all", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.TotalRegularHours != 8 {
		t.Errorf("expected 8 regular hours inside the window, got %v", metrics.TotalRegularHours)
	}
	if metrics.TotalLaborCost != 160 {
		t.Errorf("expected labor cost 160 inside the window, got %v", metrics.TotalLaborCost)
	}
}
