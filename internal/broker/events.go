package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%s", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderStatusChanged publishes OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	key := fmt.Sprintf("order-%s", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered callbacks
type EventHandler struct {
	onOrderCreated       func(context.Context, *models.OrderCreatedEvent) error
	onOrderStatusChanged func(context.Context, *models.OrderStatusChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// OnOrderStatusChanged registers a handler for OrderStatusChanged events
func (eh *EventHandler) OnOrderStatusChanged(handler func(context.Context, *models.OrderStatusChangedEvent) error) {
	eh.onOrderStatusChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
			}
			return eh.onOrderCreated(ctx, &event)
		}

	case models.EventTypeOrderStatusChanged:
		if eh.onOrderStatusChanged != nil {
			var event models.OrderStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderStatusChanged event: %w", err)
			}
			return eh.onOrderStatusChanged(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
