package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

const customerColumns = `id, name, company, email, phone, created_at`

func scanCustomer(row interface {
	Scan(dest ...interface{}) error
}) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// GetCustomer fetches one customer by id.
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return c, nil
}

// FindCustomerByCompany looks a customer up by case-insensitive company-name
// equality. Returns (nil, nil) when no customer matches.
func (s *Store) FindCustomerByCompany(ctx context.Context, company string) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE LOWER(company) = LOWER($1)`, company))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by company: %w", err)
	}
	return c, nil
}

// CreateCustomer inserts a customer and returns the stored record.
func (s *Store) CreateCustomer(ctx context.Context, n *models.NewCustomer) (*models.Customer, error) {
	id := uuid.New().String()
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, name, company, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+customerColumns,
		id, n.Name, n.Company, n.Email, n.Phone, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// UpdateCustomer overwrites the editable fields of an existing customer.
func (s *Store) UpdateCustomer(ctx context.Context, id string, n *models.NewCustomer) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `
		UPDATE customers SET name = $2, company = $3, email = $4, phone = $5
		WHERE id = $1
		RETURNING `+customerColumns,
		id, n.Name, n.Company, n.Email, n.Phone))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return c, nil
}

// DeleteCustomer removes a customer. Linked tasks keep existing with a null
// customer reference; notes cascade.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CustomerExists reports whether a customer row exists.
func (s *Store) CustomerExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("customer exists %s: %w", id, err)
	}
	return exists, nil
}
