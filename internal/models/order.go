package models

import (
	"fmt"
	"time"
)

// Order groups order items for one customer.
type Order struct {
	ID         string       `json:"id" db:"id"`
	CustomerID string       `json:"customer_id" db:"customer_id"`
	Status     string       `json:"status" db:"status"`
	Notes      *string      `json:"notes" db:"notes"`
	Total      float64      `json:"total" db:"total"`
	Items      []OrderItem  `json:"items,omitempty"`
	Customer   *CustomerRef `json:"customer,omitempty"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

// OrderItem captures one product line at the price it had when ordered.
type OrderItem struct {
	OrderID     string  `json:"order_id" db:"order_id"`
	ProductID   string  `json:"product_id" db:"product_id"`
	Quantity    int     `json:"quantity" db:"quantity"`
	PriceAtTime float64 `json:"price_at_time" db:"price_at_time"`
}

// NewOrder is the payload for creating an order with its items.
type NewOrder struct {
	CustomerID string         `json:"customer_id"`
	Status     string         `json:"status"`
	Notes      *string        `json:"notes"`
	Total      float64        `json:"total"`
	Items      []NewOrderItem `json:"order_items"`
}

// NewOrderItem is one line of a new order.
type NewOrderItem struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`
}

// Validate enforces the order-form rules: a customer and at least one item.
func (n *NewOrder) Validate() error {
	if n.CustomerID == "" {
		return fmt.Errorf("customer is required")
	}
	if len(n.Items) == 0 {
		return fmt.Errorf("at least one product item is required")
	}
	for i, item := range n.Items {
		if item.ProductID == "" {
			return fmt.Errorf("item %d: product is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
	}
	return nil
}
