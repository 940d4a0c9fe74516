package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned for a status edge the workflow does not
// define, including anything out of a terminal state.
var ErrInvalidTransition = errors.New("invalid status transition")

// Forward-only edges: PENDING -> PREPARING -> DONE, with CANCELED reachable
// from the two non-terminal states. DONE and CANCELED have no outgoing edges.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCanceled},
	models.OrderStatusPreparing: {models.OrderStatusDone, models.OrderStatusCanceled},
	models.OrderStatusDone:      {},
	models.OrderStatusCanceled:  {},
}

// CanTransition reports whether from -> to is a defined forward edge
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the actionable transitions for a status; terminal
// states yield an empty set so no control is rendered for them.
func NextStatuses(status string) []string {
	return allowedTransitions[status]
}

// AdminOrderService handles the back-office order workflow
type AdminOrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	codeRetries    int
	logger         *zap.Logger
}

// NewAdminOrderService creates a new admin order service
func NewAdminOrderService(store *store.Store, eventPublisher *broker.EventPublisher, codeRetries int) *AdminOrderService {
	return &AdminOrderService{
		store:          store,
		eventPublisher: eventPublisher,
		codeRetries:    codeRetries,
		logger:         util.GetLogger(),
	}
}

// ListOrders returns the tenant's orders narrowed by an exact status filter
// and a substring search over code and customer name.
func (s *AdminOrderService) ListOrders(ctx context.Context, tenantID, status, search string) ([]store.OrderSummary, error) {
	orders, err := s.store.ListOrders(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return FilterOrders(orders, status, search), nil
}

// FilterOrders applies the admin list filters over a fetched order set
func FilterOrders(orders []store.OrderSummary, status, search string) []store.OrderSummary {
	if status == "" && search == "" {
		return orders
	}

	needle := strings.ToLower(search)
	filtered := make([]store.OrderSummary, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.Code), needle) &&
			!strings.Contains(strings.ToLower(o.CustomerName), needle) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// OrderDetail is the on-demand expansion of one order row
type OrderDetail struct {
	Order        *models.Order               `json:"order"`
	Items        []models.OrderItem          `json:"items"`
	History      []models.OrderStatusHistory `json:"history"`
	NextStatuses []string                    `json:"next_statuses"`
}

// GetOrderDetail loads an order with its items and status trail
func (s *AdminOrderService) GetOrderDetail(ctx context.Context, tenantID, orderID string) (*OrderDetail, error) {
	order, err := s.store.GetOrderByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history, err := s.store.GetOrderHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:        order,
		Items:        items,
		History:      history,
		NextStatuses: NextStatuses(order.Status),
	}, nil
}

// Transition advances an order along a defined edge. The caller supplies the
// status it believes the order is in; a mismatch (another admin won the race)
// returns store.ErrStatusConflict and changes nothing.
func (s *AdminOrderService) Transition(ctx context.Context, tenantID, orderID, from, to string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "AdminOrderService.Transition")
	defer span.End()

	if !CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	order, err := s.store.TransitionOrderStatus(ctx, tenantID, orderID, from, to)
	if err != nil {
		if errors.Is(err, store.ErrStatusConflict) {
			util.StatusConflictsTotal.Inc()
		}
		return nil, err
	}

	util.StatusTransitionsTotal.WithLabelValues(to).Inc()
	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", from),
		zap.String("to", to))

	s.publishStatusChanged(ctx, order, from, to)
	return order, nil
}

func (s *AdminOrderService) publishStatusChanged(ctx context.Context, order *models.Order, from, to string) {
	if s.eventPublisher == nil {
		return
	}

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:    order.ID,
		TenantID:   order.TenantID,
		Code:       order.Code,
		FromStatus: from,
		ToStatus:   to,
	}

	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}
}

// ManualOrderRequest is a staff-entered order: item snapshots are typed in
// directly rather than taken from a cart.
type ManualOrderRequest struct {
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	CustomerAddress string            `json:"customer_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	DeliveryFee     float64           `json:"delivery_fee"`
	Items           []ManualOrderItem `json:"items"`
}

type ManualOrderItem struct {
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateManualOrder persists a staff-entered order on the MANUAL channel,
// using the same transactional unit of work as the web checkout.
func (s *AdminOrderService) CreateManualOrder(ctx context.Context, tenantID string, req *ManualOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, &ValidationError{Field: "customer_name"}
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("manual order needs at least one item")
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Qty < 1 {
			return nil, fmt.Errorf("item quantity must be at least 1")
		}
		lineTotal := it.UnitPrice * float64(it.Qty)
		subtotal += lineTotal
		items = append(items, models.OrderItem{
			ProductName: it.ProductName,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			Total:       lineTotal,
		})
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	params := &store.CreateOrderParams{
		TenantID: tenantID,
		Customer: &models.Customer{
			Name:    strings.TrimSpace(req.CustomerName),
			Phone:   strings.TrimSpace(req.CustomerPhone),
			Address: strings.TrimSpace(req.CustomerAddress),
		},
		Channel:  models.OrderChannelManual,
		Subtotal: subtotal,
		Delivery: req.DeliveryFee,
		Total:    subtotal + req.DeliveryFee,
		Notes:    notes,
		Items:    items,
	}

	order, err := createOrderWithCode(ctx, s.store, params, s.codeRetries)
	if err != nil {
		return nil, err
	}

	util.OrdersCreatedTotal.WithLabelValues(models.OrderChannelManual).Inc()
	s.logger.Info("Manual order created",
		zap.String("order_id", order.ID),
		zap.String("code", order.Code))

	s.publishCreated(ctx, order, params)
	return order, nil
}

func (s *AdminOrderService) publishCreated(ctx context.Context, order *models.Order, params *store.CreateOrderParams) {
	if s.eventPublisher == nil {
		return
	}

	itemData := make([]models.OrderItemData, 0, len(params.Items))
	for _, item := range params.Items {
		itemData = append(itemData, models.OrderItemData{
			ProductName: item.ProductName,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
		})
	}

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:      order.ID,
		TenantID:     order.TenantID,
		Code:         order.Code,
		Channel:      order.Channel,
		CustomerName: params.Customer.Name,
		Total:        order.Total,
		Items:        itemData,
	}

	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}
