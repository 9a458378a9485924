package models

import "time"

// Category is the model for the 'categories' table.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// Product is the model for the 'products' table.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Slug        string  `json:"slug" db:"slug"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	CategoryID  *int64  `json:"categoryId,omitempty" db:"category_id"`
	Image       string  `json:"image" db:"image"`
	Stock       int     `json:"stock" db:"stock"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Populated from a join, not a column.
	CategoryName string `json:"categoryName,omitempty" db:"-"`
}

// LowStockThreshold flags products that need restocking attention.
const LowStockThreshold = 10
