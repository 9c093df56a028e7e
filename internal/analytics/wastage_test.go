package analytics

import (
	"math"
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func wastageFixture() ([]models.Order, []models.RecipeLine, []models.Ingredient) {
	orders := []models.Order{
		menuOrder(line(1, "Burger", 10, 12, 4)), // 10 burgers sold
	}
	recipes := []models.RecipeLine{
		{MenuItemID: 1, IngredientID: 100, Quantity: 0.2}, // 0.2kg beef per burger
		{MenuItemID: 1, IngredientID: 101, Quantity: 1},   // 1 bun per burger
	}
	ingredients := []models.Ingredient{
		{ID: 100, Name: "Beef", Unit: "kg", UnitCost: 9.00},
		{ID: 101, Name: "Bun", Unit: "pcs", UnitCost: 0.50},
	}
	return orders, recipes, ingredients
}

func TestWastageVariance(t *testing.T) {
	orders, recipes, ingredients := wastageFixture()
	moved := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	moves := []models.StockMovement{
		{IngredientID: 100, Direction: models.MovementOut, Quantity: 2.0, Reason: models.ReasonSale, MovedAt: moved},
		{IngredientID: 100, Direction: models.MovementOut, Quantity: 0.5, Reason: models.ReasonSpoilage, MovedAt: moved},
		{IngredientID: 100, Direction: models.MovementIn, Quantity: 5.0, Reason: models.ReasonDelivery, MovedAt: moved},
		{IngredientID: 101, Direction: models.MovementOut, Quantity: 9, Reason: models.ReasonSale, MovedAt: moved},
	}

	reports := WastageReports(orders, recipes, moves, ingredients)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	beef := reports[0]
	if beef.ExpectedUsage != 2.0 || beef.ActualUsage != 2.5 {
		t.Fatalf("unexpected beef usage: %+v", beef)
	}
	if math.Abs(beef.Variance-0.5) > 1e-9 {
		t.Errorf("expected beef variance 0.5, got %v", beef.Variance)
	}
	if math.Abs(beef.VariancePercentage-25) > 1e-9 {
		t.Errorf("expected 25%% variance, got %v", beef.VariancePercentage)
	}
	if math.Abs(beef.EstimatedWastageCost-4.5) > 1e-9 {
		t.Errorf("expected wastage cost 0.5*9.00, got %v", beef.EstimatedWastageCost)
	}
	// Both out-movement reasons appear; the inbound delivery does not.
	if len(beef.PrimaryReasons) != 2 {
		t.Errorf("expected 2 distinct reasons, got %v", beef.PrimaryReasons)
	}

	// Buns under-consumed: negative variance, cost clamped at 0.
	bun := reports[1]
	if bun.Variance >= 0 {
		t.Fatalf("expected negative bun variance, got %v", bun.Variance)
	}
	if bun.EstimatedWastageCost != 0 {
		t.Errorf("negative variance must cost 0, got %v", bun.EstimatedWastageCost)
	}
}

func TestWastageZeroExpected(t *testing.T) {
	// Movements for an ingredient no sold recipe references: variance
	// percentage is defined as 0, not Inf.
	ingredients := []models.Ingredient{{ID: 200, Name: "Lemons", Unit: "kg", UnitCost: 3}}
	moves := []models.StockMovement{
		{IngredientID: 200, Direction: models.MovementOut, Quantity: 1.5, Reason: models.ReasonOverPrep},
	}

	reports := WastageReports(nil, nil, moves, ingredients)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.VariancePercentage != 0 {
		t.Errorf("expected 0%% on zero expected usage, got %v", r.VariancePercentage)
	}
	if math.IsNaN(r.VariancePercentage) || math.IsInf(r.VariancePercentage, 0) {
		t.Error("variance percentage must never be NaN or Inf")
	}
	if r.EstimatedWastageCost != 4.5 {
		t.Errorf("expected cost 1.5*3, got %v", r.EstimatedWastageCost)
	}
}

func TestWastageCostNeverNegative(t *testing.T) {
	orders, recipes, ingredients := wastageFixture()
	// Actual far under expected for every ingredient.
	moves := []models.StockMovement{
		{IngredientID: 100, Direction: models.MovementOut, Quantity: 0.1, Reason: models.ReasonSale},
	}
	for _, r := range WastageReports(orders, recipes, moves, ingredients) {
		if r.EstimatedWastageCost < 0 {
			t.Errorf("wastage cost for %s is negative: %v", r.IngredientName, r.EstimatedWastageCost)
		}
	}
}

func TestCalculateTaskMetrics(t *testing.T) {
	score8, score6 := 8, 6
	actual45, actual70 := 45, 70
	tasks := []models.Task{
		{Status: models.TaskStatusCompleted, EstimatedMinutes: 30, ActualMinutes: &actual45, QualityScore: &score8},
		{Status: models.TaskStatusCompleted, EstimatedMinutes: 60, ActualMinutes: &actual70, QualityScore: &score6},
		{Status: models.TaskStatusOverdue, EstimatedMinutes: 20},
		{Status: models.TaskStatusPending, EstimatedMinutes: 15},
	}

	m := CalculateTaskMetrics(tasks)
	if m.TotalTasks != 4 || m.CompletedTasks != 2 || m.OverdueTasks != 1 {
		t.Errorf("unexpected counts: %+v", m)
	}
	if m.CompletionRate != 50 {
		t.Errorf("expected 50%% completion, got %v", m.CompletionRate)
	}
	if m.AverageQualityScore != 7 {
		t.Errorf("expected average score 7 over scored tasks, got %v", m.AverageQualityScore)
	}
	// (15 + 10) / 2
	if m.AvgDurationVariance != 12.5 {
		t.Errorf("expected duration variance 12.5, got %v", m.AvgDurationVariance)
	}
}

func TestCalculateTaskMetricsEmpty(t *testing.T) {
	m := CalculateTaskMetrics(nil)
	if m.CompletionRate != 0 || m.AverageQualityScore != 0 || m.AvgDurationVariance != 0 {
		t.Errorf("expected zero-valued metrics, got %+v", m)
	}
}
