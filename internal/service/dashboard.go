package service

import (
	"context"
	"time"

	"storefront-service/internal/store"
)

const (
	dashboardDays         = 7
	dashboardRecentOrders = 5
)

// Dashboard is the back-office landing payload: per-status counts, revenue
// over completed orders, a trailing revenue series and the latest orders.
type Dashboard struct {
	Stats        *store.OrderStats    `json:"stats"`
	Series       []DailyPoint         `json:"series"`
	RecentOrders []store.OrderSummary `json:"recent_orders"`
}

// DailyPoint is one day of the dashboard revenue series
type DailyPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// GetDashboard assembles the tenant's dashboard view
func (s *AdminOrderService) GetDashboard(ctx context.Context, tenantID string) (*Dashboard, error) {
	stats, err := s.store.GetOrderStats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	since := now.AddDate(0, 0, -(dashboardDays - 1)).Truncate(24 * time.Hour)
	rows, err := s.store.GetDailyRevenue(ctx, tenantID, since)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(orders) > dashboardRecentOrders {
		orders = orders[:dashboardRecentOrders]
	}

	return &Dashboard{
		Stats:        stats,
		Series:       BuildDailySeries(rows, now, dashboardDays),
		RecentOrders: orders,
	}, nil
}

// BuildDailySeries expands sparse per-day revenue rows into a dense series of
// the trailing days ending at until, zero-filling days without completed
// orders so the chart always shows a full window.
func BuildDailySeries(rows []store.DailyRevenue, until time.Time, days int) []DailyPoint {
	byDay := make(map[string]float64, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] += r.Total
	}

	series := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := until.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, DailyPoint{Date: date, Total: byDay[date]})
	}
	return series
}
