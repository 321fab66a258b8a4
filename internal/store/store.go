// Package store implements Postgres data access for the back-office domain.
package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice/internal/common/logger"

	"github.com/lib/pq"
)

// Store bundles all Postgres-backed data access.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks payloads with unknown fields or bad values,
// so callers can distinguish them from storage failures.
var ErrInvalidInput = errors.New("invalid update")

// IsInvalidInput reports whether err originated from a bad request payload.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
