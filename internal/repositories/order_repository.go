package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_ops_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrdersWithItems(filters models.OrderFilters) ([]models.Order, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
	UpdateOrderStatus(executor SQLExecutor, orderID int64, status string, completedAt *time.Time) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	          (location_id, staff_id, channel, status, subtotal, tax_amount, discount_amount,
	           tip_amount, delivery_fee, total_amount, payment_method, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id`
	var staffID sql.NullInt64
	if order.StaffID != nil {
		staffID = sql.NullInt64{Int64: *order.StaffID, Valid: true}
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		order.LocationID, staffID, order.Channel, order.Status, order.Subtotal, order.TaxAmount,
		order.DiscountAmount, order.TipAmount, order.DeliveryFee, order.TotalAmount,
		order.PaymentMethod, order.Notes, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, unit_cost, subtotal)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.UnitCost, item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// buildOrderConditions translates filter fields into WHERE conditions.
func buildOrderConditions(filters models.OrderFilters) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.LocationID != nil {
		add("o.location_id = $%d", *filters.LocationID)
	}
	if filters.StaffID != nil {
		add("o.staff_id = $%d", *filters.StaffID)
	}
	if filters.Channel != nil && *filters.Channel != "" {
		add("o.channel = $%d", *filters.Channel)
	}
	if filters.Status != nil && *filters.Status != "" {
		add("o.status = $%d", *filters.Status)
	}
	if filters.StartDate != nil && *filters.StartDate != "" {
		add("o.created_at >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		// End date is exclusive of the following day.
		if end, err := time.Parse("2006-01-02", *filters.EndDate); err == nil {
			add("o.created_at < $%d", end.AddDate(0, 0, 1).Format("2006-01-02"))
		} else {
			add("o.created_at <= $%d", *filters.EndDate)
		}
	}
	return conditions, args
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    o.id, o.location_id, o.staff_id, o.channel, o.status, o.subtotal, o.tax_amount,
	    o.discount_amount, o.tip_amount, o.delivery_fee, o.total_amount, o.payment_method,
	    o.notes, o.created_at, o.completed_at,
	    COUNT(*) OVER() AS total_count
	  FROM orders o`)

	conditions, args := buildOrderConditions(filters)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC")

	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanOrder(rows, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, totalCount, rows.Err()
}

// GetOrdersWithItems returns matching orders with their order items
// attached, as the analytics engine consumes them. Items are fetched in
// one pass and grouped in memory.
func (r *orderRepository) GetOrdersWithItems(filters models.OrderFilters) ([]models.Order, error) {
	orders, _, err := r.GetOrders(filters)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]interface{}, len(orders))
	placeholders := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`SELECT
	    oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price, oi.unit_cost, oi.subtotal,
	    mi.name, mi.category, mi.base_price, mi.unit_cost, mi.profit_per_unit
	  FROM order_items oi
	  JOIN menu_items mi ON oi.menu_item_id = mi.id
	  WHERE oi.order_id IN (%s)
	  ORDER BY oi.order_id, oi.id`, strings.Join(placeholders, ", "))

	rows, err := r.db.Query(query, ids...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]models.OrderItem)
	for rows.Next() {
		var item models.OrderItem
		var menuItem models.MenuItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.UnitPrice,
			&item.UnitCost, &item.Subtotal,
			&menuItem.Name, &menuItem.Category, &menuItem.BasePrice, &menuItem.UnitCost, &menuItem.ProfitPerUnit,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		menuItem.ID = item.MenuItemID
		item.MenuItem = &menuItem
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order items: %v", ErrDatabaseError, err)
	}

	for i := range orders {
		orders[i].OrderItems = itemsByOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	query := `SELECT
	    o.id, o.location_id, o.staff_id, o.channel, o.status, o.subtotal, o.tax_amount,
	    o.discount_amount, o.tip_amount, o.delivery_fee, o.total_amount, o.payment_method,
	    o.notes, o.created_at, o.completed_at
	  FROM orders o WHERE o.id = $1`

	row := r.db.QueryRow(query, orderID)
	var order models.Order
	var staffID sql.NullInt64
	var paymentMethod, notes sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&order.ID, &order.LocationID, &staffID, &order.Channel, &order.Status, &order.Subtotal,
		&order.TaxAmount, &order.DiscountAmount, &order.TipAmount, &order.DeliveryFee,
		&order.TotalAmount, &paymentMethod, &notes, &order.CreatedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order %d: %v", ErrDatabaseError, orderID, err)
	}
	if staffID.Valid {
		order.StaffID = &staffID.Int64
	}
	if paymentMethod.Valid {
		order.PaymentMethod = &paymentMethod.String
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	if completedAt.Valid {
		order.CompletedAt = &completedAt.Time
	}
	return &order, nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	query := `SELECT id, order_id, menu_item_id, quantity, unit_price, unit_cost, subtotal
	          FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity,
			&item.UnitPrice, &item.UnitCost, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, status string, completedAt *time.Time) error {
	result, err := executor.Exec(`UPDATE orders SET status = $1, completed_at = $2 WHERE id = $3`,
		status, completedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order %d status: %v", ErrDatabaseError, orderID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking order update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(s scanner, totalCount *int) (models.Order, error) {
	var order models.Order
	var staffID sql.NullInt64
	var paymentMethod, notes sql.NullString
	var completedAt sql.NullTime
	if err := s.Scan(
		&order.ID, &order.LocationID, &staffID, &order.Channel, &order.Status, &order.Subtotal,
		&order.TaxAmount, &order.DiscountAmount, &order.TipAmount, &order.DeliveryFee,
		&order.TotalAmount, &paymentMethod, &notes, &order.CreatedAt, &completedAt, totalCount,
	); err != nil {
		return order, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
	}
	if staffID.Valid {
		order.StaffID = &staffID.Int64
	}
	if paymentMethod.Valid {
		order.PaymentMethod = &paymentMethod.String
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	if completedAt.Valid {
		order.CompletedAt = &completedAt.Time
	}
	return order, nil
}
