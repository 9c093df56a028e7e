package analytics

import (
	"math"
	"testing"
	"time"

	"restaurant_ops_backend/internal/models"
)

func TestCalculateGrowth(t *testing.T) {
	current := models.SalesMetrics{TotalSales: 1200, TotalOrders: 60, AverageOrderValue: 20}
	prior := models.SalesMetrics{TotalSales: 1000, TotalOrders: 50, AverageOrderValue: 20}

	g := CalculateGrowth(current, prior, "vs last 7 days")
	if math.Abs(g.SalesGrowth-20) > 1e-9 {
		t.Errorf("expected sales growth 20%%, got %v", g.SalesGrowth)
	}
	if math.Abs(g.OrderGrowth-20) > 1e-9 {
		t.Errorf("expected order growth 20%%, got %v", g.OrderGrowth)
	}
	if g.AOVGrowth != 0 {
		t.Errorf("expected flat AOV growth, got %v", g.AOVGrowth)
	}
	if g.PeriodLabel != "vs last 7 days" {
		t.Errorf("expected label to pass through, got %q", g.PeriodLabel)
	}
}

func TestGrowthZeroDenominator(t *testing.T) {
	// Prior period had no sales at all: every delta is defined as 0,
	// never Inf or NaN.
	current := models.SalesMetrics{TotalSales: 500, TotalOrders: 25, AverageOrderValue: 20}
	g := CalculateGrowth(current, models.SalesMetrics{}, "vs yesterday")

	for name, v := range map[string]float64{
		"sales": g.SalesGrowth,
		"order": g.OrderGrowth,
		"aov":   g.AOVGrowth,
	} {
		if v != 0 {
			t.Errorf("%s growth: expected exactly 0 on zero prior, got %v", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s growth must never be NaN or Inf", name)
		}
	}
}

func TestGrowthNegative(t *testing.T) {
	current := models.SalesMetrics{TotalSales: 750}
	prior := models.SalesMetrics{TotalSales: 1000}
	g := CalculateGrowth(current, prior, "")
	if math.Abs(g.SalesGrowth-(-25)) > 1e-9 {
		t.Errorf("expected -25%% sales growth, got %v", g.SalesGrowth)
	}
}

func TestPeriodBounds(t *testing.T) {
	// Wednesday, 2025-03-12 15:04 UTC.
	asOf := time.Date(2025, 3, 12, 15, 4, 0, 0, time.UTC)

	cur, prior, label := PeriodBounds(PeriodToday, asOf)
	if !cur.Start.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected today start: %v", cur.Start)
	}
	if !prior.End.Equal(cur.Start) {
		t.Error("prior window must end where the current one starts")
	}
	if label != "vs yesterday" {
		t.Errorf("unexpected label: %q", label)
	}

	cur, prior, _ = PeriodBounds(PeriodWeek, asOf)
	if cur.Start.Weekday() != time.Monday {
		t.Errorf("week must start on Monday, got %v", cur.Start.Weekday())
	}
	if got := cur.End.Sub(cur.Start); got != prior.End.Sub(prior.Start) {
		t.Errorf("current and prior week windows differ in length: %v", got)
	}

	cur, prior, _ = PeriodBounds(PeriodMonth, asOf)
	if cur.Start.Day() != 1 || prior.Start.Day() != 1 {
		t.Error("month windows must start on the 1st")
	}
	if !prior.End.Equal(cur.Start) {
		t.Error("prior month must abut the current month")
	}
}

func TestPeriodBoundsSundayWeek(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	asOf := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
	cur, _, _ := PeriodBounds(PeriodWeek, asOf)
	if !cur.Start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected week start for Sunday asOf: %v", cur.Start)
	}
}

func TestLastNDaysBounds(t *testing.T) {
	asOf := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	cur, prior, label := LastNDaysBounds(7, asOf)
	if !cur.End.Equal(asOf) {
		t.Errorf("current window must end at asOf, got %v", cur.End)
	}
	if !cur.Start.Equal(asOf.AddDate(0, 0, -7)) || !prior.Start.Equal(asOf.AddDate(0, 0, -14)) {
		t.Errorf("unexpected windows: cur=%+v prior=%+v", cur, prior)
	}
	if label != "vs last 7 days" {
		t.Errorf("unexpected label: %q", label)
	}

	// Determinism: same asOf, same windows.
	cur2, prior2, _ := LastNDaysBounds(7, asOf)
	if cur2 != cur || prior2 != prior {
		t.Error("bounds must be a pure function of asOf")
	}
}
