package analytics

import (
	"reflect"
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func menuOrder(lines ...models.OrderItem) models.Order {
	var total float64
	for _, l := range lines {
		total += l.Subtotal
	}
	return models.Order{TotalAmount: total, OrderItems: lines}
}

func line(itemID int64, name string, qty int, price, cost float64) models.OrderItem {
	return models.OrderItem{
		MenuItemID: itemID,
		Quantity:   qty,
		UnitPrice:  price,
		UnitCost:   cost,
		Subtotal:   price * float64(qty),
		MenuItem:   &models.MenuItem{ID: itemID, Name: name},
	}
}

func TestTopMenuItemsByRevenue(t *testing.T) {
	orders := []models.Order{
		menuOrder(line(1, "Burger", 3, 12, 4)),  // revenue 36, profit 24
		menuOrder(line(2, "Pasta", 2, 15, 5)),   // revenue 30, profit 20
		menuOrder(line(3, "Salad", 5, 9, 2)),    // revenue 45, profit 35
		menuOrder(line(1, "Burger", 1, 12, 4)),  // burger now revenue 48, profit 32
	}

	ranked := TopMenuItems(orders, RankByRevenue, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(ranked))
	}
	if ranked[0].Name != "Burger" || ranked[0].Rank != 1 {
		t.Errorf("expected Burger at rank 1, got %+v", ranked[0])
	}
	if ranked[1].Name != "Salad" || ranked[1].Rank != 2 {
		t.Errorf("expected Salad at rank 2, got %+v", ranked[1])
	}
	if ranked[0].QuantitySold != 4 || ranked[0].TotalRevenue != 48 {
		t.Errorf("unexpected Burger aggregate: %+v", ranked[0])
	}
}

func TestTopMenuItemsModeSwitchReRanks(t *testing.T) {
	// Revenue and profit orderings disagree: item 1 sells for more but
	// item 2 margins better.
	orders := []models.Order{
		menuOrder(line(1, "Steak", 2, 30, 25)), // revenue 60, profit 10
		menuOrder(line(2, "Soup", 5, 10, 1)),   // revenue 50, profit 45
	}

	byRevenue := TopMenuItems(orders, RankByRevenue, 0)
	byProfit := TopMenuItems(orders, RankByProfit, 0)

	if byRevenue[0].Name != "Steak" {
		t.Errorf("revenue mode: expected Steak first, got %s", byRevenue[0].Name)
	}
	if byProfit[0].Name != "Soup" {
		t.Errorf("profit mode: expected Soup first, got %s", byProfit[0].Name)
	}
	for i, r := range byProfit {
		if r.Rank != i+1 {
			t.Errorf("rank must be reassigned 1..N, got %d at position %d", r.Rank, i)
		}
	}
}

func TestRankingStable(t *testing.T) {
	// Two items tied on revenue keep first-seen input order, and
	// re-running yields the identical result.
	orders := []models.Order{
		menuOrder(line(7, "Tea", 2, 5, 1)),
		menuOrder(line(8, "Coffee", 2, 5, 2)),
		menuOrder(line(9, "Juice", 1, 4, 1)),
	}

	first := TopMenuItems(orders, RankByRevenue, 0)
	if first[0].Name != "Tea" || first[1].Name != "Coffee" {
		t.Errorf("tie must preserve input order, got %s then %s", first[0].Name, first[1].Name)
	}
	for i := 0; i < 5; i++ {
		again := TopMenuItems(orders, RankByRevenue, 0)
		if !reflect.DeepEqual(first, again) {
			t.Fatal("ranking must be deterministic across runs")
		}
	}
}

func TestTopStaff(t *testing.T) {
	staff := []models.StaffMember{
		{ID: 1, FullName: "Aidos", Role: models.RoleServer},
		{ID: 2, FullName: "Bella", Role: models.RoleCook},
		{ID: 3, FullName: "Chris", Role: models.RoleServer},
	}
	logs := []models.TimeLog{
		{StaffID: 1, RegularHours: 8, OvertimeHours: 2},
		{StaffID: 2, RegularHours: 8, OvertimeHours: 0},
		{StaffID: 1, RegularHours: 6},
		{StaffID: 3, RegularHours: 8, OvertimeHours: 1},
	}
	staffID := int64(1)
	orders := []models.Order{
		{StaffID: &staffID, TotalAmount: 120, CreatedAt: time.Now()},
	}

	ranked := TopStaff(staff, logs, orders, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ranked))
	}
	if ranked[0].FullName != "Aidos" || ranked[0].HoursWorked != 16 {
		t.Errorf("expected Aidos on top with 16h, got %+v", ranked[0])
	}
	if ranked[0].SalesHandled != 120 || ranked[0].OrdersTaken != 1 {
		t.Errorf("expected order attribution on Aidos, got %+v", ranked[0])
	}
	if ranked[1].FullName != "Chris" || ranked[1].Rank != 2 {
		t.Errorf("expected Chris at rank 2, got %+v", ranked[1])
	}
}

func TestLocationRollupTiers(t *testing.T) {
	locations := []models.Location{
		{ID: 1, Code: "downtown", Name: "Downtown"},
		{ID: 2, Code: "airport", Name: "Airport"},
		{ID: 3, Code: "harbor", Name: "Harbor"},
	}
	orders := []models.Order{
		{LocationID: 1, TotalAmount: 60000},
		{LocationID: 2, TotalAmount: 12000},
	}

	rollup := LocationRollup(orders, locations)
	if len(rollup) != 3 {
		t.Fatalf("every location must appear, got %d", len(rollup))
	}
	if rollup[0].Code != "downtown" || rollup[0].Tier != models.TierPlatinum || rollup[0].Rank != 1 {
		t.Errorf("unexpected top location: %+v", rollup[0])
	}
	if rollup[1].Code != "airport" || rollup[1].Tier != models.TierSilver {
		t.Errorf("unexpected second location: %+v", rollup[1])
	}
	if rollup[2].TotalSales != 0 || rollup[2].Tier != models.TierBronze {
		t.Errorf("orderless location must be zero-valued bronze, got %+v", rollup[2])
	}
}
