package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports a missing required checkout field. Nothing is
// written when validation fails.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field is blank: %s", e.Field)
}

// CheckoutService converts a session's cart plus customer input into a
// persisted order
type CheckoutService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	codeRetries    int
	logger         *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	codeRetries int,
) *CheckoutService {
	return &CheckoutService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		codeRetries:    codeRetries,
		logger:         util.GetLogger(),
	}
}

// CheckoutRequest carries the customer form for one checkout
type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// Validate checks required fields before any write is attempted
func (r *CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(r.Phone) == "" {
		return &ValidationError{Field: "phone"}
	}
	if strings.TrimSpace(r.Address) == "" {
		return &ValidationError{Field: "address"}
	}
	return nil
}

// Checkout persists the session's cart as an order. Customer, order, item
// snapshots and the initial PENDING history row are written in a single
// transaction; the cart is cleared only after the transaction commits, so a
// failed checkout leaves the cart intact for resubmission without having
// written anything.
func (cs *CheckoutService) Checkout(ctx context.Context, tenantSlug, sessionID string, req *CheckoutRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Checkout")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	if err := req.Validate(); err != nil {
		util.CheckoutFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	tenant, err := cs.store.GetTenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}

	ct, err := cs.redis.GetCart(ctx, sessionID, tenantSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if ct.IsEmpty() {
		util.CheckoutFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	settings, err := cs.store.GetSettingsByTenantID(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	var deliveryFee float64
	if settings != nil {
		deliveryFee = settings.DeliveryFee
	}

	subtotal := ct.Total()
	items := make([]models.OrderItem, 0, len(ct.Items))
	for _, line := range ct.Items {
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: line.Name,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			Total:       line.UnitPrice * float64(line.Qty),
		})
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	params := &store.CreateOrderParams{
		TenantID: tenant.ID,
		Customer: &models.Customer{
			Name:    strings.TrimSpace(req.Name),
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
		},
		Channel:  models.OrderChannelWeb,
		Subtotal: subtotal,
		Delivery: deliveryFee,
		Total:    subtotal + deliveryFee,
		Notes:    notes,
		Items:    items,
	}

	order, err := createOrderWithCode(ctx, cs.store, params, cs.codeRetries)
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.OrdersCreatedTotal.WithLabelValues(models.OrderChannelWeb).Inc()
	cs.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("code", order.Code),
		zap.String("tenant_id", tenant.ID))

	if err := cs.redis.DeleteCart(ctx, sessionID, tenantSlug); err != nil {
		// The order is committed; a stale cart is a nuisance, not a failure.
		cs.logger.Warn("Failed to clear cart after checkout",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	cs.publishCreated(ctx, order, params)
	return order, nil
}

func (cs *CheckoutService) publishCreated(ctx context.Context, order *models.Order, params *store.CreateOrderParams) {
	if cs.eventPublisher == nil {
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

	var customerName string
	if params.Customer != nil {
		customerName = params.Customer.Name
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
		CustomerName: customerName,
		Total:        order.Total,
		Items:        itemData,
	}

	if err := cs.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		cs.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}
