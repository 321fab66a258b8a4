package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

// ListOrders returns all orders newest first, joined with their customer.
func (s *Store) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.customer_id, o.status, o.notes, o.total, o.created_at,
		       c.id, c.name, c.company
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		var o models.Order
		var custID, custName, custCompany sql.NullString
		err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Notes, &o.Total,
			&o.CreatedAt, &custID, &custName, &custCompany)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if custID.Valid {
			ref := &models.CustomerRef{ID: custID.String, Name: custName.String}
			if custCompany.Valid {
				company := custCompany.String
				ref.Company = &company
			}
			o.Customer = ref
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// CreateOrder inserts the order and its items in one transaction, so a
// failing item insert rolls the whole order back.
func (s *Store) CreateOrder(ctx context.Context, n *models.NewOrder) (*models.Order, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	now := time.Now().UTC()
	status := n.Status
	if status == "" {
		status = "pending"
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, status, notes, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, n.CustomerID, status, n.Notes, n.Total, now)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(n.Items))
	for _, item := range n.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4)`,
			id, item.ProductID, item.Quantity, item.PriceAtTime)
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		items = append(items, models.OrderItem{
			OrderID:     id,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return &models.Order{
		ID:         id,
		CustomerID: n.CustomerID,
		Status:     status,
		Notes:      n.Notes,
		Total:      n.Total,
		Items:      items,
		CreatedAt:  now,
	}, nil
}
