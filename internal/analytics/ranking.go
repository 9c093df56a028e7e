package analytics

import (
	"sort"

	"restaurant_ops_backend/internal/models"
)

// RankMode selects the sort key for menu item rankings.
type RankMode string

const (
	RankByRevenue RankMode = "revenue"
	RankByProfit  RankMode = "profit"
)

// Location performance tier thresholds, applied to total revenue for
// the scoped window.
const (
	tierPlatinumSales = 50000.0
	tierGoldSales     = 25000.0
	tierSilverSales   = 10000.0
)

// TopMenuItems aggregates sold quantities per menu item across the
// scoped orders and returns the top limit items ordered by the chosen
// mode. The sort is stable: items tied on the key keep first-seen
// order, and ranks are reassigned 1..N on every call. limit <= 0 means
// no truncation.
func TopMenuItems(orders []models.Order, mode RankMode, limit int) []models.MenuItemPerformance {
	byItem := make(map[int64]*models.MenuItemPerformance)
	seen := []int64{}
	for _, o := range orders {
		for _, item := range o.OrderItems {
			perf, ok := byItem[item.MenuItemID]
			if !ok {
				perf = &models.MenuItemPerformance{MenuItemID: item.MenuItemID}
				if item.MenuItem != nil {
					perf.Name = item.MenuItem.Name
					perf.Category = item.MenuItem.Category
				}
				byItem[item.MenuItemID] = perf
				seen = append(seen, item.MenuItemID)
			}
			perf.QuantitySold += item.Quantity
			perf.TotalRevenue += item.Subtotal
			perf.TotalProfit += itemProfit(item)
		}
	}

	ranked := make([]models.MenuItemPerformance, 0, len(seen))
	for _, id := range seen {
		ranked = append(ranked, *byItem[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if mode == RankByProfit {
			return ranked[i].TotalProfit > ranked[j].TotalProfit
		}
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	return rankMenuItems(ranked, limit)
}

func rankMenuItems(ranked []models.MenuItemPerformance, limit int) []models.MenuItemPerformance {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopStaff ranks staff by hours worked (from time logs), attaching
// sales handled and order counts from the scoped orders. The stable
// descending sort and 1-based re-ranking follow the same rules as menu
// item rankings.
func TopStaff(staff []models.StaffMember, logs []models.TimeLog, orders []models.Order, limit int) []models.StaffPerformance {
	byStaff := make(map[int64]*models.StaffPerformance, len(staff))
	ranked := make([]models.StaffPerformance, 0, len(staff))
	for _, s := range staff {
		byStaff[s.ID] = &models.StaffPerformance{
			StaffID:  s.ID,
			FullName: s.FullName,
			Role:     s.Role,
		}
	}
	for _, tl := range logs {
		if perf, ok := byStaff[tl.StaffID]; ok {
			perf.HoursWorked += tl.RegularHours + tl.OvertimeHours
		}
	}
	for _, o := range orders {
		if o.StaffID == nil {
			continue
		}
		if perf, ok := byStaff[*o.StaffID]; ok {
			perf.SalesHandled += o.TotalAmount
			perf.OrdersTaken++
		}
	}
	for _, s := range staff {
		ranked = append(ranked, *byStaff[s.ID])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].HoursWorked > ranked[j].HoursWorked
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// LocationRollup groups orders per location, computes each location's
// sales metrics, assigns a performance tier from revenue thresholds and
// ranks locations by revenue.
func LocationRollup(orders []models.Order, locations []models.Location) []models.LocationPerformance {
	byLocation := make(map[int64][]models.Order)
	for _, o := range orders {
		byLocation[o.LocationID] = append(byLocation[o.LocationID], o)
	}

	ranked := make([]models.LocationPerformance, 0, len(locations))
	for _, loc := range locations {
		m := CalculateSalesMetrics(byLocation[loc.ID])
		ranked = append(ranked, models.LocationPerformance{
			LocationID:        loc.ID,
			Code:              loc.Code,
			Name:              loc.Name,
			TotalSales:        m.TotalSales,
			TotalOrders:       m.TotalOrders,
			AverageOrderValue: m.AverageOrderValue,
			GrossProfit:       m.GrossProfit,
			Tier:              tierFor(m.TotalSales),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSales > ranked[j].TotalSales
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func tierFor(totalSales float64) string {
	switch {
	case totalSales >= tierPlatinumSales:
		return models.TierPlatinum
	case totalSales >= tierGoldSales:
		return models.TierGold
	case totalSales >= tierSilverSales:
		return models.TierSilver
	}
	return models.TierBronze
}
