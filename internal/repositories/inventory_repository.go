package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_ops_backend/internal/models"
)

// InventoryRepository defines the interface for ingredient and stock
// movement database operations.
type InventoryRepository interface {
	CreateIngredient(ing *models.Ingredient) (int64, error)
	GetIngredients(locationID *int64) ([]models.Ingredient, error)
	GetIngredientByID(executor SQLExecutor, ingredientID int64) (*models.Ingredient, error)
	AdjustStock(executor SQLExecutor, ingredientID int64, delta float64) (float64, error)
	CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(filters models.MovementFilters) ([]models.StockMovement, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateIngredient(ing *models.Ingredient) (int64, error) {
	query := `INSERT INTO ingredients
	          (location_id, name, unit, unit_cost, current_stock, reorder_level, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		ing.LocationID, ing.Name, ing.Unit, ing.UnitCost, ing.CurrentStock, ing.ReorderLevel, time.Now(),
	).Scan(&ing.ID, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating ingredient: %v", ErrDatabaseError, err)
	}
	return ing.ID, nil
}

func (r *inventoryRepository) GetIngredients(locationID *int64) ([]models.Ingredient, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, location_id, name, unit, unit_cost, current_stock,
	    reorder_level, created_at, updated_at
	  FROM ingredients`)
	var args []interface{}
	if locationID != nil {
		queryBuilder.WriteString(" WHERE location_id = $1")
		args = append(args, *locationID)
	}
	queryBuilder.WriteString(" ORDER BY name")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting ingredients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.LocationID, &ing.Name, &ing.Unit, &ing.UnitCost,
			&ing.CurrentStock, &ing.ReorderLevel, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning ingredient: %v", ErrDatabaseError, err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *inventoryRepository) GetIngredientByID(executor SQLExecutor, ingredientID int64) (*models.Ingredient, error) {
	row := executor.QueryRow(`SELECT id, location_id, name, unit, unit_cost, current_stock,
	    reorder_level, created_at, updated_at
	  FROM ingredients WHERE id = $1`, ingredientID)

	var ing models.Ingredient
	err := row.Scan(&ing.ID, &ing.LocationID, &ing.Name, &ing.Unit, &ing.UnitCost,
		&ing.CurrentStock, &ing.ReorderLevel, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting ingredient %d: %v", ErrDatabaseError, ingredientID, err)
	}
	return &ing, nil
}

// AdjustStock applies a signed delta to an ingredient's stock level and
// returns the new level. Callers record the matching movement in the
// same transaction.
func (r *inventoryRepository) AdjustStock(executor SQLExecutor, ingredientID int64, delta float64) (float64, error) {
	var newStock float64
	err := executor.QueryRow(`UPDATE ingredients
	    SET current_stock = current_stock + $1, updated_at = $2
	    WHERE id = $3
	    RETURNING current_stock`, delta, time.Now(), ingredientID).Scan(&newStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: adjusting stock for ingredient %d: %v", ErrDatabaseError, ingredientID, err)
	}
	return newStock, nil
}

func (r *inventoryRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movements
	          (ingredient_id, location_id, staff_id, direction, quantity, reason,
	           stock_before, stock_after, moved_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	currentTime := time.Now()
	if movement.MovedAt.IsZero() {
		movement.MovedAt = currentTime
	}
	var staffID sql.NullInt64
	if movement.StaffID != nil {
		staffID = sql.NullInt64{Int64: *movement.StaffID, Valid: true}
	}

	err := executor.QueryRow(query,
		movement.IngredientID, movement.LocationID, staffID, movement.Direction,
		movement.Quantity, movement.Reason, movement.StockBefore, movement.StockAfter,
		movement.MovedAt, currentTime,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *inventoryRepository) GetMovements(filters models.MovementFilters) ([]models.StockMovement, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    sm.id, sm.ingredient_id, sm.location_id, sm.staff_id, sm.direction, sm.quantity,
	    sm.reason, sm.stock_before, sm.stock_after, sm.moved_at, sm.created_at,
	    i.name, i.unit, i.unit_cost
	  FROM stock_movements sm
	  JOIN ingredients i ON sm.ingredient_id = i.id`)

	var conditions []string
	var args []interface{}
	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, len(args)+1))
		args = append(args, value)
	}
	if filters.IngredientID != nil {
		add("sm.ingredient_id = $%d", *filters.IngredientID)
	}
	if filters.LocationID != nil {
		add("sm.location_id = $%d", *filters.LocationID)
	}
	if filters.Direction != nil && *filters.Direction != "" {
		add("sm.direction = $%d", *filters.Direction)
	}
	if filters.Reason != nil && *filters.Reason != "" {
		add("sm.reason = $%d", *filters.Reason)
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		add("sm.moved_at >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		if end, err := time.Parse("2006-01-02", *filters.EndDate); err == nil {
			add("sm.moved_at < $%d", end.AddDate(0, 0, 1).Format("2006-01-02"))
		} else {
			add("sm.moved_at <= $%d", *filters.EndDate)
		}
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY sm.moved_at DESC, sm.id DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var movement models.StockMovement
		var ingredient models.Ingredient
		var staffID sql.NullInt64
		if err := rows.Scan(
			&movement.ID, &movement.IngredientID, &movement.LocationID, &staffID,
			&movement.Direction, &movement.Quantity, &movement.Reason,
			&movement.StockBefore, &movement.StockAfter, &movement.MovedAt, &movement.CreatedAt,
			&ingredient.Name, &ingredient.Unit, &ingredient.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		if staffID.Valid {
			movement.StaffID = &staffID.Int64
		}
		ingredient.ID = movement.IngredientID
		ingredient.LocationID = movement.LocationID
		movement.Ingredient = &ingredient
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
