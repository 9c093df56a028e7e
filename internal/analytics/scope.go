// Package analytics implements the metrics aggregation engine: pure,
// deterministic functions that turn raw order/shift/stock/task
// collections into the summary records the dashboard displays. No
// function here reads a clock, touches storage, or keeps state; any
// "now" is passed in by the caller as an explicit asOf timestamp.
package analytics

import (
	"time"

	"restaurant_ops_backend/internal/models"
)

// Scope is the (location, date-range) filter applied to a raw
// collection before aggregation. LocationID equal to models.LocationAll
// (or empty) disables the location predicate. Start is inclusive, End
// exclusive.
type Scope struct {
	LocationID string
	Start      time.Time
	End        time.Time
}

// AllTime returns a scope covering every record of a location.
func AllTime(locationID string) Scope {
	return Scope{LocationID: locationID}
}

func (s Scope) matchesLocation(code string) bool {
	return s.LocationID == "" || s.LocationID == models.LocationAll || s.LocationID == code
}

func (s Scope) matchesTime(t time.Time) bool {
	if !s.Start.IsZero() && t.Before(s.Start) {
		return false
	}
	if !s.End.IsZero() && !t.Before(s.End) {
		return false
	}
	return true
}

// locationCode resolves an order/record location id to its scope code
// via the supplied index. A missing entry never matches a concrete
// location filter.
type LocationIndex map[int64]string

// NewLocationIndex builds an id -> code index for scope filtering.
func NewLocationIndex(locations []models.Location) LocationIndex {
	idx := make(LocationIndex, len(locations))
	for _, loc := range locations {
		idx[loc.ID] = loc.Code
	}
	return idx
}

// FilterOrders returns the orders inside the scope, preserving input
// order. The result is never nil.
func FilterOrders(orders []models.Order, scope Scope, idx LocationIndex) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !scope.matchesTime(o.CreatedAt) {
			continue
		}
		if !scope.matchesLocation(idx[o.LocationID]) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterTimeLogs returns the time logs inside the scope.
func FilterTimeLogs(logs []models.TimeLog, scope Scope, idx LocationIndex) []models.TimeLog {
	out := make([]models.TimeLog, 0, len(logs))
	for _, tl := range logs {
		if !scope.matchesTime(tl.ClockIn) {
			continue
		}
		if !scope.matchesLocation(idx[tl.LocationID]) {
			continue
		}
		out = append(out, tl)
	}
	return out
}

// FilterLaborCosts returns the labor cost records inside the scope.
// WorkDate is compared on day boundaries.
func FilterLaborCosts(costs []models.LaborCost, scope Scope, idx LocationIndex) []models.LaborCost {
	out := make([]models.LaborCost, 0, len(costs))
	for _, lc := range costs {
		day, err := time.Parse("2006-01-02", lc.WorkDate)
		if err != nil {
			continue
		}
		if !scope.matchesTime(day) {
			continue
		}
		if !scope.matchesLocation(idx[lc.LocationID]) {
			continue
		}
		out = append(out, lc)
	}
	return out
}

// FilterMovements returns the stock movements inside the scope.
func FilterMovements(moves []models.StockMovement, scope Scope, idx LocationIndex) []models.StockMovement {
	out := make([]models.StockMovement, 0, len(moves))
	for _, m := range moves {
		if !scope.matchesTime(m.MovedAt) {
			continue
		}
		if !scope.matchesLocation(idx[m.LocationID]) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterTasks returns the tasks inside the scope, matched on due date.
func FilterTasks(tasks []models.Task, scope Scope, idx LocationIndex) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !scope.matchesTime(t.DueAt) {
			continue
		}
		if !scope.matchesLocation(idx[t.LocationID]) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// safeDiv returns num/den, or 0 when den is 0. Every ratio in the
// engine goes through this (or percentChange) so no NaN or Inf can
// escape into responses.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// percentChange returns the signed percentage delta from prior to
// current, defined as exactly 0 when prior is 0.
func percentChange(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (current - prior) / prior * 100
}
