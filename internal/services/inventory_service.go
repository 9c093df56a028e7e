package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/repositories"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidMovement    = errors.New("invalid stock movement")
)

// RecordMovementRequest is a manual stock adjustment: a delivery, a
// spoilage write-off, a transfer between locations.
type RecordMovementRequest struct {
	IngredientID int64   `json:"ingredient_id" binding:"required"`
	StaffID      *int64  `json:"staff_id"`
	Direction    string  `json:"direction" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Reason       string  `json:"reason" binding:"required"`
}

type InventoryService interface {
	CreateIngredient(ing *models.Ingredient) (*models.Ingredient, error)
	GetIngredients(locationID *int64) ([]models.Ingredient, error)
	RecordMovement(req RecordMovementRequest) (*models.StockMovement, error)
	GetMovements(filters models.MovementFilters) ([]models.StockMovement, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	db            *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(ir repositories.InventoryRepository, db *sql.DB) InventoryService {
	return &inventoryService{inventoryRepo: ir, db: db}
}

func (s *inventoryService) CreateIngredient(ing *models.Ingredient) (*models.Ingredient, error) {
	if ing.UnitCost <= 0 {
		return nil, fmt.Errorf("%w: unit cost must be positive", ErrValidation)
	}
	if ing.CurrentStock < 0 || ing.ReorderLevel < 0 {
		return nil, fmt.Errorf("%w: stock levels must not be negative", ErrValidation)
	}
	id, err := s.inventoryRepo.CreateIngredient(ing)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	created, err := s.inventoryRepo.GetIngredientByID(s.db, id)
	if err != nil {
		return nil, fmt.Errorf("ingredient created but failed to retrieve: %w", err)
	}
	return created, nil
}

func (s *inventoryService) GetIngredients(locationID *int64) ([]models.Ingredient, error) {
	return s.inventoryRepo.GetIngredients(locationID)
}

func (s *inventoryService) RecordMovement(req RecordMovementRequest) (*models.StockMovement, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidMovement)
	}
	if req.Direction != models.MovementIn && req.Direction != models.MovementOut {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidMovement, req.Direction)
	}
	if !isValidMovementReason(req.Reason) {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrInvalidMovement, req.Reason)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	ing, err := s.inventoryRepo.GetIngredientByID(tx, req.IngredientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to fetch ingredient: %w", err)
	}

	delta := req.Quantity
	if req.Direction == models.MovementOut {
		delta = -req.Quantity
		if ing.CurrentStock < req.Quantity {
			return nil, fmt.Errorf("%w: %s (requested %.2f, available %.2f)",
				ErrInsufficientStock, ing.Name, req.Quantity, ing.CurrentStock)
		}
	}
	after, err := s.inventoryRepo.AdjustStock(tx, req.IngredientID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	movement := models.StockMovement{
		IngredientID: req.IngredientID,
		LocationID:   ing.LocationID,
		StaffID:      req.StaffID,
		Direction:    req.Direction,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		StockBefore:  ing.CurrentStock,
		StockAfter:   after,
		MovedAt:      time.Now(),
	}
	id, err := s.inventoryRepo.CreateMovement(tx, &movement)
	if err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}
	movement.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}
	return &movement, nil
}

func (s *inventoryService) GetMovements(filters models.MovementFilters) ([]models.StockMovement, error) {
	return s.inventoryRepo.GetMovements(filters)
}

func isValidMovementReason(reason string) bool {
	switch reason {
	case models.ReasonSale, models.ReasonSpoilage, models.ReasonOverPrep, models.ReasonDelivery,
		models.ReasonManualAdjustment, models.ReasonTransfer, models.ReasonWaste:
		return true
	}
	return false
}
