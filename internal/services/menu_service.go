package services

import (
	"errors"
	"fmt"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var ErrMenuItemExists = errors.New("menu item with this name already exists")

type MenuService interface {
	CreateMenuItem(item *models.MenuItem) (*models.MenuItem, error)
	GetMenuItems(onlyAvailable bool) ([]models.MenuItem, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	UpdateMenuItem(item *models.MenuItem) (*models.MenuItem, error)
	AddRecipeLine(line *models.RecipeLine) (*models.RecipeLine, error)
	GetRecipe(menuItemID int64) ([]models.RecipeLine, error)
}

type menuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository) MenuService {
	return &menuService{menuRepo: mr}
}

func (s *menuService) CreateMenuItem(item *models.MenuItem) (*models.MenuItem, error) {
	if item.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	if item.UnitCost < 0 || item.ProfitPerUnit < 0 {
		return nil, fmt.Errorf("%w: cost fields must not be negative", ErrValidation)
	}
	item.IsAvailable = true
	id, err := s.menuRepo.CreateMenuItem(item)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMenuItemExists
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return s.menuRepo.GetMenuItemByID(id)
}

func (s *menuService) GetMenuItems(onlyAvailable bool) ([]models.MenuItem, error) {
	return s.menuRepo.GetMenuItems(onlyAvailable)
}

func (s *menuService) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(item *models.MenuItem) (*models.MenuItem, error) {
	if item.BasePrice <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	if err := s.menuRepo.UpdateMenuItem(item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, item.ID)
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return s.menuRepo.GetMenuItemByID(item.ID)
}

func (s *menuService) AddRecipeLine(line *models.RecipeLine) (*models.RecipeLine, error) {
	if line.Quantity <= 0 {
		return nil, fmt.Errorf("%w: recipe quantity must be positive", ErrValidation)
	}
	if _, err := s.GetMenuItemByID(line.MenuItemID); err != nil {
		return nil, err
	}
	id, err := s.menuRepo.CreateRecipeLine(line)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe line: %w", err)
	}
	line.ID = id
	return line, nil
}

func (s *menuService) GetRecipe(menuItemID int64) ([]models.RecipeLine, error) {
	return s.menuRepo.GetRecipeLinesByMenuItem(menuItemID)
}
