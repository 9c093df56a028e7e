package models

import "time"

// MenuItem represents a sellable item on the menu.
// UnitCost is the tracked cost of goods for one unit; ProfitPerUnit is a
// fixed fallback used for items whose cost is not separately tracked
// (e.g. service charges). When UnitCost is positive it wins.
type MenuItem struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	Category      string    `json:"category" db:"category" binding:"required"`
	BasePrice     float64   `json:"base_price" db:"base_price" binding:"required,gt=0"`
	UnitCost      float64   `json:"unit_cost" db:"unit_cost"`
	ProfitPerUnit float64   `json:"profit_per_unit" db:"profit_per_unit"`
	IsAvailable   bool      `json:"is_available" db:"is_available"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// RecipeLine maps one menu item to the quantity of an ingredient one
// sold unit consumes. Expected ingredient usage for a period is the sum
// of recipe quantity times sold quantity.
type RecipeLine struct {
	ID           int64   `json:"id" db:"id"`
	MenuItemID   int64   `json:"menu_item_id" db:"menu_item_id" binding:"required"`
	IngredientID int64   `json:"ingredient_id" db:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" db:"quantity" binding:"required,gt=0"`
}
