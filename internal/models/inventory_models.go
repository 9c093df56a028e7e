package models

import "time"

// Stock movement direction constants.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// Stock change reason constants.
const (
	ReasonSale             = "sale"
	ReasonSpoilage         = "spoilage"
	ReasonOverPrep         = "over_prep"
	ReasonDelivery         = "delivery"
	ReasonManualAdjustment = "manual_adjustment"
	ReasonTransfer         = "transfer"
	ReasonWaste            = "waste"
)

// Ingredient represents a tracked raw ingredient at a location.
type Ingredient struct {
	ID           int64     `json:"id" db:"id"`
	LocationID   int64     `json:"location_id" db:"location_id" binding:"required"`
	Name         string    `json:"name" db:"name" binding:"required"`
	Unit         string    `json:"unit" db:"unit" binding:"required"` // kg, l, pcs, ...
	UnitCost     float64   `json:"unit_cost" db:"unit_cost" binding:"required,gt=0"`
	CurrentStock float64   `json:"current_stock" db:"current_stock"`
	ReorderLevel float64   `json:"reorder_level" db:"reorder_level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// StockMovement records a single change in ingredient stock, with a
// before/after snapshot taken at write time.
type StockMovement struct {
	ID           int64       `json:"id" db:"id"`
	IngredientID int64       `json:"ingredient_id" db:"ingredient_id" binding:"required"`
	LocationID   int64       `json:"location_id" db:"location_id" binding:"required"`
	StaffID      *int64      `json:"staff_id,omitempty" db:"staff_id"`
	Direction    string      `json:"direction" db:"direction" binding:"required"`
	Quantity     float64     `json:"quantity" db:"quantity" binding:"required,gt=0"`
	Reason       string      `json:"reason" db:"reason" binding:"required"`
	StockBefore  float64     `json:"stock_before" db:"stock_before"`
	StockAfter   float64     `json:"stock_after" db:"stock_after"`
	MovedAt      time.Time   `json:"moved_at" db:"moved_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}

// MovementFilters defines the available filters for querying stock movements.
type MovementFilters struct {
	IngredientID *int64  `form:"ingredient_id"`
	LocationID   *int64  `form:"location_id"`
	Direction    *string `form:"direction"`
	Reason       *string `form:"reason"`
	StartDate    *string `form:"start_date"`
	EndDate      *string `form:"end_date"`
}
