package analytics

import (
	"restaurant_ops_backend/internal/models"
)

// itemProfit computes the profit contributed by one order line. When a
// positive unit cost was captured at sale time the margin is computed
// from it; otherwise the menu item's fixed profit-per-unit stands in.
// One rule, applied everywhere profit is derived.
func itemProfit(item models.OrderItem) float64 {
	if item.UnitCost > 0 {
		return (item.UnitPrice - item.UnitCost) * float64(item.Quantity)
	}
	if item.MenuItem != nil {
		return item.MenuItem.ProfitPerUnit * float64(item.Quantity)
	}
	return 0
}

// CalculateSalesMetrics reduces an already-scoped order set to its
// headline numbers. Empty input yields the zero-valued aggregate.
func CalculateSalesMetrics(orders []models.Order) models.SalesMetrics {
	var m models.SalesMetrics
	for _, o := range orders {
		m.TotalSales += o.TotalAmount
		m.TotalOrders++
		for _, item := range o.OrderItems {
			m.GrossProfit += itemProfit(item)
		}
	}
	m.AverageOrderValue = safeDiv(m.TotalSales, float64(m.TotalOrders))
	m.ProfitMargin = safeDiv(m.GrossProfit, m.TotalSales) * 100
	return m
}

// SalesByChannel rolls orders up per channel, keyed by the channel
// constant.
func SalesByChannel(orders []models.Order) map[string]models.SalesMetrics {
	byChannel := make(map[string][]models.Order)
	for _, o := range orders {
		byChannel[o.Channel] = append(byChannel[o.Channel], o)
	}
	out := make(map[string]models.SalesMetrics, len(byChannel))
	for channel, group := range byChannel {
		out[channel] = CalculateSalesMetrics(group)
	}
	return out
}

// SalesTrend buckets a scoped order set into per-day points between
// start (inclusive) and end (exclusive). Days without orders still
// appear, zero-valued, so the chart has no gaps.
func SalesTrend(orders []models.Order, scope Scope) []models.SalesTrendPoint {
	if scope.Start.IsZero() || scope.End.IsZero() || !scope.Start.Before(scope.End) {
		return []models.SalesTrendPoint{}
	}
	const layout = "2006-01-02"
	sums := make(map[string]*models.SalesTrendPoint)
	for _, o := range orders {
		key := o.CreatedAt.Format(layout)
		p, ok := sums[key]
		if !ok {
			p = &models.SalesTrendPoint{Date: key}
			sums[key] = p
		}
		p.TotalSales += o.TotalAmount
		p.OrderCount++
	}

	points := []models.SalesTrendPoint{}
	for day := scope.Start; day.Before(scope.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(layout)
		point := models.SalesTrendPoint{Date: key}
		if p, ok := sums[key]; ok {
			point = *p
		}
		point.AverageOrderValue = safeDiv(point.TotalSales, float64(point.OrderCount))
		points = append(points, point)
	}
	return points
}
