package models

import (
	"fmt"
	"time"
)

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	SKU         *string   `json:"sku" db:"sku"`
	Category    *string   `json:"category" db:"category"`
	Stock       *int      `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewProduct is the payload for creating or updating a product.
type NewProduct struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	SKU         *string `json:"sku"`
	Category    *string `json:"category"`
	Stock       *int    `json:"stock"`
}

// Validate applies the same server-side checks the product forms enforce.
func (n *NewProduct) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("name is required")
	}
	if n.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if n.Stock != nil && *n.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}
