package models

import "time"

// Event types
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when a checkout or manual order commits
type OrderCreatedEvent struct {
	BaseEvent
	OrderID      string          `json:"order_id"`
	TenantID     string          `json:"tenant_id"`
	Code         string          `json:"code"`
	Channel      string          `json:"channel"`
	CustomerName string          `json:"customer_name"`
	Total        float64         `json:"total"`
	Items        []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published after a successful status transition
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    string `json:"order_id"`
	TenantID   string `json:"tenant_id"`
	Code       string `json:"code"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
}
