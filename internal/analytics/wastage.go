package analytics

import (
	"restaurant_ops_backend/internal/models"
)

// ExpectedUsage derives per-ingredient expected consumption from the
// recipe lines implied by sold quantities in the scoped orders.
func ExpectedUsage(orders []models.Order, recipes []models.RecipeLine) map[int64]float64 {
	perItem := make(map[int64][]models.RecipeLine)
	for _, r := range recipes {
		perItem[r.MenuItemID] = append(perItem[r.MenuItemID], r)
	}

	expected := make(map[int64]float64)
	for _, o := range orders {
		for _, item := range o.OrderItems {
			for _, r := range perItem[item.MenuItemID] {
				expected[r.IngredientID] += r.Quantity * float64(item.Quantity)
			}
		}
	}
	return expected
}

// WastageReports compares expected against actual usage for every
// ingredient that shows up in either collection. Actual usage is the
// sum of "out" movement quantities; the distinct reason codes on those
// movements become PrimaryReasons (several causes may co-occur).
// Estimated wastage cost is variance times unit cost, clamped to 0 for
// non-positive variance: under-consumption is never reported as a
// negative cost.
func WastageReports(orders []models.Order, recipes []models.RecipeLine, moves []models.StockMovement, ingredients []models.Ingredient) []models.WastageReport {
	expected := ExpectedUsage(orders, recipes)

	actual := make(map[int64]float64)
	reasons := make(map[int64][]string)
	reasonSeen := make(map[int64]map[string]bool)
	for _, m := range moves {
		if m.Direction != models.MovementOut {
			continue
		}
		actual[m.IngredientID] += m.Quantity
		if reasonSeen[m.IngredientID] == nil {
			reasonSeen[m.IngredientID] = make(map[string]bool)
		}
		if !reasonSeen[m.IngredientID][m.Reason] {
			reasonSeen[m.IngredientID][m.Reason] = true
			reasons[m.IngredientID] = append(reasons[m.IngredientID], m.Reason)
		}
	}

	reports := []models.WastageReport{}
	for _, ing := range ingredients {
		exp, expOK := expected[ing.ID]
		act, actOK := actual[ing.ID]
		if !expOK && !actOK {
			continue
		}
		variance := act - exp
		report := models.WastageReport{
			IngredientID:       ing.ID,
			IngredientName:     ing.Name,
			Unit:               ing.Unit,
			ExpectedUsage:      exp,
			ActualUsage:        act,
			Variance:           variance,
			VariancePercentage: safeDiv(variance, exp) * 100,
			PrimaryReasons:     reasons[ing.ID],
		}
		if report.PrimaryReasons == nil {
			report.PrimaryReasons = []string{}
		}
		if variance > 0 {
			report.EstimatedWastageCost = variance * ing.UnitCost
		}
		reports = append(reports, report)
	}
	return reports
}
