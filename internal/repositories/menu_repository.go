package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
)

// MenuRepository defines the interface for menu item and recipe database operations.
type MenuRepository interface {
	CreateMenuItem(item *models.MenuItem) (int64, error)
	GetMenuItems(onlyAvailable bool) ([]models.MenuItem, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	UpdateMenuItem(item *models.MenuItem) error
	CreateRecipeLine(line *models.RecipeLine) (int64, error)
	GetRecipeLines() ([]models.RecipeLine, error)
	GetRecipeLinesByMenuItem(menuItemID int64) ([]models.RecipeLine, error)
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateMenuItem(item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items (name, category, base_price, unit_cost, profit_per_unit, is_available, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		item.Name, item.Category, item.BasePrice, item.UnitCost, item.ProfitPerUnit,
		item.IsAvailable, time.Now(),
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetMenuItems(onlyAvailable bool) ([]models.MenuItem, error) {
	query := `SELECT id, name, category, base_price, unit_cost, profit_per_unit, is_available, created_at, updated_at
	          FROM menu_items`
	if onlyAvailable {
		query += ` WHERE is_available = TRUE`
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.BasePrice,
			&item.UnitCost, &item.ProfitPerUnit, &item.IsAvailable,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuRepository) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	query := `SELECT id, name, category, base_price, unit_cost, profit_per_unit, is_available, created_at, updated_at
	          FROM menu_items WHERE id = $1`
	var item models.MenuItem
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.Name, &item.Category, &item.BasePrice, &item.UnitCost,
		&item.ProfitPerUnit, &item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item %d: %v", ErrDatabaseError, itemID, err)
	}
	return &item, nil
}

func (r *menuRepository) UpdateMenuItem(item *models.MenuItem) error {
	query := `UPDATE menu_items
	          SET name = $1, category = $2, base_price = $3, unit_cost = $4,
	              profit_per_unit = $5, is_available = $6, updated_at = $7
	          WHERE id = $8`
	result, err := r.db.Exec(query, item.Name, item.Category, item.BasePrice,
		item.UnitCost, item.ProfitPerUnit, item.IsAvailable, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking menu item update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *menuRepository) CreateRecipeLine(recipe *models.RecipeLine) (int64, error) {
	query := `INSERT INTO recipe_lines (menu_item_id, ingredient_id, quantity)
	          VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(query, recipe.MenuItemID, recipe.IngredientID, recipe.Quantity).Scan(&recipe.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating recipe line: %v", ErrDatabaseError, err)
	}
	return recipe.ID, nil
}

func (r *menuRepository) GetRecipeLines() ([]models.RecipeLine, error) {
	return r.queryRecipeLines(`SELECT id, menu_item_id, ingredient_id, quantity FROM recipe_lines ORDER BY id`)
}

func (r *menuRepository) GetRecipeLinesByMenuItem(menuItemID int64) ([]models.RecipeLine, error) {
	return r.queryRecipeLines(
		`SELECT id, menu_item_id, ingredient_id, quantity FROM recipe_lines WHERE menu_item_id = $1 ORDER BY id`,
		menuItemID)
}

func (r *menuRepository) queryRecipeLines(query string, args ...interface{}) ([]models.RecipeLine, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting recipe lines: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	lines := []models.RecipeLine{}
	for rows.Next() {
		var line models.RecipeLine
		if err := rows.Scan(&line.ID, &line.MenuItemID, &line.IngredientID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe line: %v", ErrDatabaseError, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
