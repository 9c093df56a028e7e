package models

import "time"

// Order channel constants. Channel describes how the order reached the kitchen.
const (
	ChannelDineIn   = "dine_in"
	ChannelTakeout  = "takeout"
	ChannelDelivery = "delivery"
	ChannelCatering = "catering"
)

// Order status constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Payment method constants.
const (
	PaymentCash      = "cash"
	PaymentCard      = "card"
	PaymentMobilePay = "mobile_pay"
	PaymentGiftCard  = "gift_card"
	PaymentHouseAcct = "house_account"
)

// Order represents a single guest check at a location.
// TotalAmount is expected to satisfy
// total = subtotal + tax - discount + tip + delivery_fee; the write path
// enforces it, readers assume it.
type Order struct {
	ID             int64       `json:"id" db:"id"`
	LocationID     int64       `json:"location_id" db:"location_id" binding:"required"`
	StaffID        *int64      `json:"staff_id,omitempty" db:"staff_id"`
	Channel        string      `json:"channel" db:"channel" binding:"required"`
	Status         string      `json:"status" db:"status"`
	Subtotal       float64     `json:"subtotal" db:"subtotal"`
	TaxAmount      float64     `json:"tax_amount" db:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount" db:"discount_amount"`
	TipAmount      float64     `json:"tip_amount" db:"tip_amount"`
	DeliveryFee    float64     `json:"delivery_fee" db:"delivery_fee"`
	TotalAmount    float64     `json:"total_amount" db:"total_amount"`
	PaymentMethod  *string     `json:"payment_method,omitempty" db:"payment_method"`
	Notes          *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	OrderItems     []OrderItem `json:"order_items,omitempty"`
	Location       *Location   `json:"location,omitempty"`
}

// OrderItem is one line on an order. UnitPrice and UnitCost are copied
// from the menu item at sale time so later menu edits do not rewrite
// history.
type OrderItem struct {
	ID         int64     `json:"id" db:"id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	MenuItemID int64     `json:"menu_item_id" db:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" db:"quantity" binding:"required,gt=0"`
	UnitPrice  float64   `json:"unit_price" db:"unit_price"`
	UnitCost   float64   `json:"unit_cost" db:"unit_cost"`
	Subtotal   float64   `json:"subtotal" db:"subtotal"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
}

// OrderFilters defines the available filters for querying orders.
// Used by both the service and repository layers.
type OrderFilters struct {
	LocationID *int64  `form:"location_id"`
	StaffID    *int64  `form:"staff_id"`
	Channel    *string `form:"channel"`
	Status     *string `form:"status"`
	StartDate  *string `form:"start_date"` // YYYY-MM-DD
	EndDate    *string `form:"end_date"`   // YYYY-MM-DD
	Page       int     `form:"page"`
	PageSize   int     `form:"page_size"`
}
