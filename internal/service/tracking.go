package service

import (
	"context"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// TrackingService serves the public order tracking view, looked up by the
// human-readable order code with no authentication.
type TrackingService struct {
	store        *store.Store
	pollInterval int
}

// NewTrackingService creates a new tracking service
func NewTrackingService(store *store.Store, pollIntervalSeconds int) *TrackingService {
	return &TrackingService{
		store:        store,
		pollInterval: pollIntervalSeconds,
	}
}

// TrackView is the public tracking payload. PollSeconds tells clients how
// often to refresh; polling continues until the customer navigates away.
type TrackView struct {
	Code         string                      `json:"code"`
	Status       string                      `json:"status"`
	CustomerName string                      `json:"customer_name,omitempty"`
	Total        float64                     `json:"total"`
	CreatedAt    string                      `json:"created_at"`
	History      []models.OrderStatusHistory `json:"history"`
	PollSeconds  int                         `json:"poll_seconds"`
}

// TrackByCode resolves an order and its status trail by tracking code
func (ts *TrackingService) TrackByCode(ctx context.Context, code string) (*TrackView, error) {
	order, err := ts.store.GetOrderByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	history, err := ts.store.GetOrderHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	util.TrackLookupsTotal.Inc()
	return &TrackView{
		Code:         order.Code,
		Status:       order.Status,
		CustomerName: order.CustomerName,
		Total:        order.Total,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
		History:      history,
		PollSeconds:  ts.pollInterval,
	}, nil
}
