package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

const productColumns = `id, name, description, price, sku, category, stock, created_at`

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SKU,
		&p.Category, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns all products ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct fetches one product by id.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// CreateProduct inserts a product and returns the stored record.
func (s *Store) CreateProduct(ctx context.Context, n *models.NewProduct) (*models.Product, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	id := uuid.New().String()
	p, err := scanProduct(s.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, sku, category, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		id, n.Name, n.Description, n.Price, n.SKU, n.Category, n.Stock, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// UpdateProduct overwrites the editable fields of an existing product.
func (s *Store) UpdateProduct(ctx context.Context, id string, n *models.NewProduct) (*models.Product, error) {
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p, err := scanProduct(s.db.QueryRowContext(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, sku = $5, category = $6, stock = $7
		WHERE id = $1
		RETURNING `+productColumns,
		id, n.Name, n.Description, n.Price, n.SKU, n.Category, n.Stock))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes a product.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
