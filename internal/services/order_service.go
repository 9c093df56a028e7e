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
	ErrValidation         = errors.New("validation failed")
	ErrMenuItemNotFound   = errors.New("menu item not found or not available")
	ErrInsufficientStock  = errors.New("insufficient ingredient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// CreateOrderItemRequest is one requested line on a new order.
type CreateOrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload for creating a new order. Prices
// and costs are never taken from the client; they are copied from the
// menu inside the transaction.
type CreateOrderRequest struct {
	LocationID     int64                    `json:"location_id" binding:"required"`
	StaffID        *int64                   `json:"staff_id"`
	Channel        string                   `json:"channel" binding:"required"`
	PaymentMethod  *string                  `json:"payment_method"`
	Notes          *string                  `json:"notes"`
	DiscountAmount float64                  `json:"discount_amount"`
	TipAmount      float64                  `json:"tip_amount"`
	DeliveryFee    float64                  `json:"delivery_fee"`
	OrderItems     []CreateOrderItemRequest `json:"order_items" binding:"required,dive"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	menuRepo      repositories.MenuRepository
	inventoryRepo repositories.InventoryRepository
	db            *sql.DB // for managing transactions
	taxRate       float64
}

// NewOrderService creates a new instance of OrderService. taxRate is
// the fraction of the discounted subtotal charged as tax.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	ir repositories.InventoryRepository,
	db *sql.DB,
	taxRate float64,
) OrderService {
	return &orderService{
		orderRepo:     or,
		menuRepo:      mr,
		inventoryRepo: ir,
		db:            db,
		taxRate:       taxRate,
	}
}

func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if !isValidChannel(req.Channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrValidation, req.Channel)
	}
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if req.DiscountAmount < 0 || req.TipAmount < 0 || req.DeliveryFee < 0 {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	var subtotal float64
	itemsToCreate := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, itemReq := range req.OrderItems {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for menu item %d must be positive", ErrValidation, itemReq.MenuItemID)
		}
		menuItem, repoErr := s.menuRepo.GetMenuItemByID(itemReq.MenuItemID)
		if repoErr != nil {
			if errors.Is(repoErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, itemReq.MenuItemID)
			}
			return nil, fmt.Errorf("failed to fetch menu item %d: %w", itemReq.MenuItemID, repoErr)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItem.Name)
		}

		lineSubtotal := menuItem.BasePrice * float64(itemReq.Quantity)
		subtotal += lineSubtotal
		itemsToCreate = append(itemsToCreate, models.OrderItem{
			MenuItemID: itemReq.MenuItemID,
			Quantity:   itemReq.Quantity,
			UnitPrice:  menuItem.BasePrice,
			UnitCost:   menuItem.UnitCost,
			Subtotal:   lineSubtotal,
		})

		if err := s.consumeIngredients(tx, menuItem, itemReq.Quantity, req.LocationID, req.StaffID); err != nil {
			return nil, err
		}
	}

	discount := req.DiscountAmount
	if discount > subtotal {
		discount = subtotal
	}
	tax := (subtotal - discount) * s.taxRate

	order := models.Order{
		LocationID:     req.LocationID,
		StaffID:        req.StaffID,
		Channel:        req.Channel,
		Status:         models.OrderStatusPending,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TipAmount:      req.TipAmount,
		DeliveryFee:    req.DeliveryFee,
		TotalAmount:    subtotal + tax - discount + req.TipAmount + req.DeliveryFee,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}

	orderID, repoErr := s.orderRepo.CreateOrder(tx, &order)
	if repoErr != nil {
		return nil, fmt.Errorf("failed to create order record: %w", repoErr)
	}
	for i := range itemsToCreate {
		itemsToCreate[i].OrderID = orderID
		if _, repoErr = s.orderRepo.CreateOrderItem(tx, &itemsToCreate[i]); repoErr != nil {
			return nil, fmt.Errorf("failed to create order item (menu_item_id: %d): %w", itemsToCreate[i].MenuItemID, repoErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return s.GetOrderByID(orderID)
}

// consumeIngredients deducts recipe-driven ingredient usage for one
// order line and records the matching "out" movements.
func (s *orderService) consumeIngredients(tx *sql.Tx, menuItem *models.MenuItem, quantity int, locationID int64, staffID *int64) error {
	recipe, err := s.menuRepo.GetRecipeLinesByMenuItem(menuItem.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch recipe for menu item %d: %w", menuItem.ID, err)
	}
	for _, line := range recipe {
		used := line.Quantity * float64(quantity)
		ing, repoErr := s.inventoryRepo.GetIngredientByID(tx, line.IngredientID)
		if repoErr != nil {
			return fmt.Errorf("failed to fetch ingredient %d: %w", line.IngredientID, repoErr)
		}
		if ing.CurrentStock < used {
			return fmt.Errorf("%w: %s for %s (requested %.2f, available %.2f)",
				ErrInsufficientStock, ing.Name, menuItem.Name, used, ing.CurrentStock)
		}
		after, repoErr := s.inventoryRepo.AdjustStock(tx, line.IngredientID, -used)
		if repoErr != nil {
			return fmt.Errorf("failed to deduct stock for ingredient %d: %w", line.IngredientID, repoErr)
		}
		movement := models.StockMovement{
			IngredientID: line.IngredientID,
			LocationID:   locationID,
			StaffID:      staffID,
			Direction:    models.MovementOut,
			Quantity:     used,
			Reason:       models.ReasonSale,
			StockBefore:  ing.CurrentStock,
			StockAfter:   after,
			MovedAt:      time.Now(),
		}
		if _, repoErr = s.inventoryRepo.CreateMovement(tx, &movement); repoErr != nil {
			return fmt.Errorf("failed to record stock movement for ingredient %d: %w", line.IngredientID, repoErr)
		}
	}
	return nil
}

// restoreIngredients returns recipe-driven usage to stock when an order
// is cancelled or refunded before fulfilment.
func (s *orderService) restoreIngredients(tx *sql.Tx, order *models.Order) error {
	for _, item := range order.OrderItems {
		recipe, err := s.menuRepo.GetRecipeLinesByMenuItem(item.MenuItemID)
		if err != nil {
			return fmt.Errorf("failed to fetch recipe for menu item %d: %w", item.MenuItemID, err)
		}
		for _, line := range recipe {
			returned := line.Quantity * float64(item.Quantity)
			ing, repoErr := s.inventoryRepo.GetIngredientByID(tx, line.IngredientID)
			if repoErr != nil {
				return fmt.Errorf("failed to fetch ingredient %d: %w", line.IngredientID, repoErr)
			}
			after, repoErr := s.inventoryRepo.AdjustStock(tx, line.IngredientID, returned)
			if repoErr != nil {
				return fmt.Errorf("failed to return stock for ingredient %d: %w", line.IngredientID, repoErr)
			}
			movement := models.StockMovement{
				IngredientID: line.IngredientID,
				LocationID:   order.LocationID,
				StaffID:      order.StaffID,
				Direction:    models.MovementIn,
				Quantity:     returned,
				Reason:       models.ReasonManualAdjustment,
				StockBefore:  ing.CurrentStock,
				StockAfter:   after,
				MovedAt:      time.Now(),
			}
			if _, repoErr = s.inventoryRepo.CreateMovement(tx, &movement); repoErr != nil {
				return fmt.Errorf("failed to record stock return for ingredient %d: %w", line.IngredientID, repoErr)
			}
		}
	}
	return nil
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.OrderItems = items
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !isValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	// Cancelling or refunding a live order puts its ingredients back.
	reversing := req.Status == models.OrderStatusCancelled || req.Status == models.OrderStatusRefunded
	alreadyReversed := current.Status == models.OrderStatusCancelled || current.Status == models.OrderStatusRefunded
	if reversing && !alreadyReversed {
		if err := s.restoreIngredients(tx, current); err != nil {
			return nil, err
		}
	}

	var completedAt *time.Time
	if req.Status == models.OrderStatusCompleted {
		now := time.Now()
		completedAt = &now
	}
	if err := s.orderRepo.UpdateOrderStatus(tx, orderID, req.Status, completedAt); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusPreparing, models.OrderStatusReady,
		models.OrderStatusCompleted, models.OrderStatusCancelled, models.OrderStatusRefunded:
		return true
	}
	return false
}

func isValidChannel(channel string) bool {
	switch channel {
	case models.ChannelDineIn, models.ChannelTakeout, models.ChannelDelivery, models.ChannelCatering:
		return true
	}
	return false
}
