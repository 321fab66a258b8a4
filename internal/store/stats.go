package store

import (
	"context"
	"fmt"

	"backoffice/internal/models"
)

// DashboardStats gathers the dashboard counters in one round trip.
func (s *Store) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'todo'),
			(SELECT COUNT(*) FROM customer_notes)`).
		Scan(&stats.ProductCount, &stats.CustomerCount, &stats.OpenOrderCount,
			&stats.OpenTaskCount, &stats.NoteCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
