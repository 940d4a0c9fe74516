package store

import (
	"context"
	"time"
)

// OrderStats aggregates a tenant's orders for the dashboard. Revenue only
// counts DONE orders; canceled and in-flight orders contribute nothing.
type OrderStats struct {
	Total     int     `db:"total" json:"total"`
	Pending   int     `db:"pending" json:"pending"`
	Preparing int     `db:"preparing" json:"preparing"`
	Done      int     `db:"done" json:"done"`
	Canceled  int     `db:"canceled" json:"canceled"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}

// GetOrderStats computes per-status counts and revenue in one pass
func (s *Store) GetOrderStats(ctx context.Context, tenantID string) (*OrderStats, error) {
	var stats OrderStats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE status = 'PREPARING') AS preparing,
			COUNT(*) FILTER (WHERE status = 'DONE') AS done,
			COUNT(*) FILTER (WHERE status = 'CANCELED') AS canceled,
			COALESCE(SUM(total) FILTER (WHERE status = 'DONE'), 0) AS revenue
		FROM orders
		WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DailyRevenue is one day's DONE-order revenue
type DailyRevenue struct {
	Day   time.Time `db:"day"`
	Total float64   `db:"total"`
}

// GetDailyRevenue sums DONE-order totals per day since the given time. Days
// without completed orders produce no row; callers fill the gaps.
func (s *Store) GetDailyRevenue(ctx context.Context, tenantID string, since time.Time) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := s.db.SelectContext(ctx, &rows, `
		SELECT date_trunc('day', created_at) AS day, SUM(total) AS total
		FROM orders
		WHERE tenant_id = $1 AND status = 'DONE' AND created_at >= $2
		GROUP BY 1
		ORDER BY 1`, tenantID, since)
	return rows, err
}
