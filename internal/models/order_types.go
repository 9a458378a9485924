package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Cancelled is terminal: once an order is cancelled (and its lines restocked)
// it never changes again.
func CanTransition(from, to OrderStatus) bool {
	if !to.IsValid() {
		return false
	}
	if from == StatusCancelled {
		return false
	}
	return from != to
}

// Order is the model for the 'orders' table.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	Reference       string      `json:"reference" db:"reference"`
	UserID          int64       `json:"userId" db:"user_id"`
	UserEmail       string      `json:"userEmail" db:"user_email"`
	Total           float64     `json:"total" db:"total"`
	Status          OrderStatus `json:"status" db:"status"`
	ShippingAddress string      `json:"shippingAddress" db:"shipping_address"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table.
// Name and Price are snapshotted from the product at purchase time and stay
// fixed through later product edits or deletions.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}
