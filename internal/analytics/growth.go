package analytics

import (
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
)

// Reporting period names accepted by PeriodBounds.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// PeriodBounds derives the current and prior scope windows for a named
// period from an explicit asOf timestamp. The prior window always has
// the same length as the current one and ends where the current one
// starts, so growth comparisons are like-for-like.
func PeriodBounds(period string, asOf time.Time) (current, prior Scope, label string) {
	startOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	switch period {
	case PeriodWeek:
		// Monday-based week.
		offset := int(startOfDay.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		start := startOfDay.AddDate(0, 0, -offset)
		current = Scope{Start: start, End: start.AddDate(0, 0, 7)}
		prior = Scope{Start: start.AddDate(0, 0, -7), End: start}
		label = "vs last 7 days"
	case PeriodMonth:
		start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
		end := start.AddDate(0, 1, 0)
		current = Scope{Start: start, End: end}
		prior = Scope{Start: start.AddDate(0, -1, 0), End: start}
		label = "vs last month"
	default: // PeriodToday
		current = Scope{Start: startOfDay, End: startOfDay.AddDate(0, 0, 1)}
		prior = Scope{Start: startOfDay.AddDate(0, 0, -1), End: startOfDay}
		label = "vs yesterday"
	}
	return current, prior, label
}

// LastNDaysBounds derives a rolling current window of n days ending at
// asOf, with the immediately preceding n days as the prior window.
func LastNDaysBounds(n int, asOf time.Time) (current, prior Scope, label string) {
	if n <= 0 {
		n = 7
	}
	start := asOf.AddDate(0, 0, -n)
	current = Scope{Start: start, End: asOf}
	prior = Scope{Start: start.AddDate(0, 0, -n), End: start}
	label = fmt.Sprintf("vs last %d days", n)
	return current, prior, label
}

// CalculateGrowth compares the current period's sales metrics with the
// prior period's. Every delta is defined as exactly 0 when the prior
// value is 0 -- never NaN, never Inf.
func CalculateGrowth(current, prior models.SalesMetrics, label string) models.GrowthMetrics {
	return models.GrowthMetrics{
		SalesGrowth: percentChange(current.TotalSales, prior.TotalSales),
		OrderGrowth: percentChange(float64(current.TotalOrders), float64(prior.TotalOrders)),
		AOVGrowth:   percentChange(current.AverageOrderValue, prior.AverageOrderValue),
		PeriodLabel: label,
	}
}
