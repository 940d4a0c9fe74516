package worker

import (
	"context"
	"log"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// NotificationWorker consumes order events and delivers notifications over
// the tenant's WhatsApp link. With the link stubbed, delivery amounts to a
// structured log line plus an activity stamp on the connection row.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, st *store.Store) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		store:    st,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderCreated(w.handleOrderCreated)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	connected, err := w.tenantConnected(ctx, event.TenantID)
	if err != nil {
		return err
	}
	if !connected {
		return nil
	}

	w.logger.Info("Notifying new order",
		zap.String("tenant_id", event.TenantID),
		zap.String("code", event.Code),
		zap.String("customer", event.CustomerName),
		zap.Float64("total", event.Total))

	return w.store.TouchWhatsAppActivity(ctx, event.TenantID)
}

func (w *NotificationWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	connected, err := w.tenantConnected(ctx, event.TenantID)
	if err != nil {
		return err
	}
	if !connected {
		return nil
	}

	w.logger.Info("Notifying status change",
		zap.String("tenant_id", event.TenantID),
		zap.String("code", event.Code),
		zap.String("from", event.FromStatus),
		zap.String("to", event.ToStatus))

	return w.store.TouchWhatsAppActivity(ctx, event.TenantID)
}

func (w *NotificationWorker) tenantConnected(ctx context.Context, tenantID string) (bool, error) {
	conn, err := w.store.GetWhatsAppConnection(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return conn != nil && conn.Status == models.WhatsAppConnected, nil
}
