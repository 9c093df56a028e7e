package analytics

import (
	"math"
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func orderWithTotal(total float64, created time.Time, locationID int64) models.Order {
	return models.Order{
		LocationID:  locationID,
		Channel:     models.ChannelDineIn,
		Status:      models.OrderStatusCompleted,
		Subtotal:    total,
		TotalAmount: total,
		CreatedAt:   created,
	}
}

func TestCalculateSalesMetrics(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderWithTotal(10.00, now, 1),
		orderWithTotal(20.00, now, 1),
		orderWithTotal(30.00, now, 1),
	}

	m := CalculateSalesMetrics(orders)
	if m.TotalSales != 60.00 {
		t.Errorf("expected total sales 60.00, got %v", m.TotalSales)
	}
	if m.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %v", m.TotalOrders)
	}
	if m.AverageOrderValue != 20.00 {
		t.Errorf("expected AOV 20.00, got %v", m.AverageOrderValue)
	}
	// AOV * order count must recover total sales.
	if diff := math.Abs(m.AverageOrderValue*float64(m.TotalOrders) - m.TotalSales); diff > 1e-9 {
		t.Errorf("AOV*orders differs from total sales by %v", diff)
	}
}

func TestCalculateSalesMetricsEmpty(t *testing.T) {
	m := CalculateSalesMetrics(nil)
	if m.TotalSales != 0 || m.TotalOrders != 0 {
		t.Errorf("expected zero aggregate, got %+v", m)
	}
	if m.AverageOrderValue != 0 {
		t.Errorf("expected AOV 0 for empty input, got %v", m.AverageOrderValue)
	}
	if m.ProfitMargin != 0 {
		t.Errorf("expected profit margin 0 for empty input, got %v", m.ProfitMargin)
	}
	if math.IsNaN(m.AverageOrderValue) || math.IsInf(m.AverageOrderValue, 0) {
		t.Error("AOV must never be NaN or Inf")
	}
}

func TestProfitModel(t *testing.T) {
	fixedProfit := models.MenuItem{ID: 2, Name: "Service Fee", ProfitPerUnit: 3.00}
	order := models.Order{
		TotalAmount: 50.00,
		OrderItems: []models.OrderItem{
			// Cost tracked: margin from unit cost wins even though the
			// menu item also carries a fixed profit figure.
			{MenuItemID: 1, Quantity: 2, UnitPrice: 10.00, UnitCost: 4.00,
				Subtotal: 20.00, MenuItem: &models.MenuItem{ID: 1, ProfitPerUnit: 99.0}},
			// No tracked cost: fixed profit-per-unit fallback.
			{MenuItemID: 2, Quantity: 3, UnitPrice: 10.00, Subtotal: 30.00, MenuItem: &fixedProfit},
		},
	}

	m := CalculateSalesMetrics([]models.Order{order})
	wantProfit := (10.00-4.00)*2 + 3.00*3
	if math.Abs(m.GrossProfit-wantProfit) > 1e-9 {
		t.Errorf("expected gross profit %v, got %v", wantProfit, m.GrossProfit)
	}
	wantMargin := wantProfit / 50.00 * 100
	if math.Abs(m.ProfitMargin-wantMargin) > 1e-9 {
		t.Errorf("expected margin %v, got %v", wantMargin, m.ProfitMargin)
	}
}

func TestFilterOrdersScope(t *testing.T) {
	locations := []models.Location{
		{ID: 1, Code: "downtown"},
		{ID: 2, Code: "airport"},
	}
	idx := NewLocationIndex(locations)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderWithTotal(10, day.Add(2*time.Hour), 1),
		orderWithTotal(20, day.Add(3*time.Hour), 2),
		orderWithTotal(30, day.AddDate(0, 0, -2), 1),
	}

	scoped := FilterOrders(orders, Scope{LocationID: "downtown", Start: day, End: day.AddDate(0, 0, 1)}, idx)
	if len(scoped) != 1 || scoped[0].TotalAmount != 10 {
		t.Fatalf("expected only the in-window downtown order, got %+v", scoped)
	}

	all := FilterOrders(orders, Scope{LocationID: models.LocationAll, Start: day, End: day.AddDate(0, 0, 1)}, idx)
	if len(all) != 2 {
		t.Errorf("expected 2 orders under the all-locations sentinel, got %d", len(all))
	}

	empty := FilterOrders(nil, AllTime(models.LocationAll), idx)
	if empty == nil {
		t.Error("filter must return an empty slice, not nil")
	}
}

func TestSalesTrendFillsGaps(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	scope := Scope{Start: start, End: start.AddDate(0, 0, 3)}
	orders := []models.Order{
		orderWithTotal(40, start.Add(10*time.Hour), 1),
		orderWithTotal(20, start.Add(12*time.Hour), 1),
		// Nothing on day two.
		orderWithTotal(15, start.AddDate(0, 0, 2).Add(9*time.Hour), 1),
	}

	points := SalesTrend(orders, scope)
	if len(points) != 3 {
		t.Fatalf("expected 3 daily points, got %d", len(points))
	}
	if points[0].TotalSales != 60 || points[0].OrderCount != 2 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1].TotalSales != 0 || points[1].OrderCount != 0 || points[1].AverageOrderValue != 0 {
		t.Errorf("gap day must be zero-valued, got %+v", points[1])
	}
	if points[2].Date != "2025-03-12" {
		t.Errorf("unexpected last point date: %s", points[2].Date)
	}
}

func TestSalesByChannel(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{Channel: models.ChannelDineIn, TotalAmount: 30, CreatedAt: now},
		{Channel: models.ChannelDelivery, TotalAmount: 25, CreatedAt: now},
		{Channel: models.ChannelDineIn, TotalAmount: 10, CreatedAt: now},
	}

	byChannel := SalesByChannel(orders)
	if got := byChannel[models.ChannelDineIn]; got.TotalSales != 40 || got.TotalOrders != 2 {
		t.Errorf("unexpected dine-in rollup: %+v", got)
	}
	if got := byChannel[models.ChannelDelivery]; got.TotalSales != 25 || got.TotalOrders != 1 {
		t.Errorf("unexpected delivery rollup: %+v", got)
	}
	if _, ok := byChannel[models.ChannelCatering]; ok {
		t.Error("channels with no orders must not appear")
	}
}
