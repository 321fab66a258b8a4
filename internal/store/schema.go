package store

import "context"

// schemaStatements create the tables the API owns. The unique index on
// LOWER(company) turns the intake resolver's find-or-create race into a
// fetch-existing path instead of a duplicate row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		company    TEXT,
		email      TEXT,
		phone      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_company_lower
		ON customers (LOWER(company)) WHERE company IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT,
		customer_id TEXT REFERENCES customers(id) ON DELETE SET NULL,
		priority    TEXT NOT NULL DEFAULT 'medium',
		due_date    TEXT,
		week_number INTEGER,
		status      TEXT NOT NULL DEFAULT 'todo',
		tags        TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_customer ON tasks(customer_id)`,
	`CREATE TABLE IF NOT EXISTS customer_notes (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		note_title  TEXT NOT NULL,
		note_text   TEXT NOT NULL,
		location    TEXT,
		user_id     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		price       NUMERIC(12,2) NOT NULL,
		sku         TEXT,
		category    TEXT,
		stock       INTEGER,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		status      TEXT NOT NULL DEFAULT 'pending',
		notes       TEXT,
		total       NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id      TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id    TEXT NOT NULL REFERENCES products(id),
		quantity      INTEGER NOT NULL,
		price_at_time NUMERIC(12,2) NOT NULL
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
