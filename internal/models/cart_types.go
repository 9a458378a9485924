package models

import "time"

// CartItem is the model for the 'cart_items' table.
// (user_id, product_id) is unique; adding an existing pair bumps quantity.
type CartItem struct {
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// WishlistItem is the model for the 'wishlist_items' table.
// (user_id, product_id) is unique; re-adding is a no-op.
type WishlistItem struct {
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
