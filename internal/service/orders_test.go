package service

import (
	"context"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusPreparing))
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusCanceled))
	assert.True(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusDone))
	assert.True(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusCanceled))

	// No skipping forward
	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusDone))

	// No moving backward
	assert.False(t, CanTransition(models.OrderStatusPreparing, models.OrderStatusPending))

	// Terminal states have no outgoing edges
	assert.False(t, CanTransition(models.OrderStatusDone, models.OrderStatusCanceled))
	assert.False(t, CanTransition(models.OrderStatusCanceled, models.OrderStatusPending))

	// Unknown statuses never transition
	assert.False(t, CanTransition("UNKNOWN", models.OrderStatusPending))
	assert.False(t, CanTransition(models.OrderStatusPending, "UNKNOWN"))
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{models.OrderStatusPreparing, models.OrderStatusCanceled},
		NextStatuses(models.OrderStatusPending))
	assert.ElementsMatch(t,
		[]string{models.OrderStatusDone, models.OrderStatusCanceled},
		NextStatuses(models.OrderStatusPreparing))
	assert.Empty(t, NextStatuses(models.OrderStatusDone))
	assert.Empty(t, NextStatuses(models.OrderStatusCanceled))
}

func TestFilterOrders(t *testing.T) {
	orders := []store.OrderSummary{
		{Order: models.Order{Code: "ABC234", Status: models.OrderStatusPending}, CustomerName: "Budi Santoso"},
		{Order: models.Order{Code: "XYZ789", Status: models.OrderStatusDone}, CustomerName: "Siti Rahma"},
		{Order: models.Order{Code: "QRS567", Status: models.OrderStatusPending}, CustomerName: "Budi Hartono"},
	}

	// No filters returns everything
	assert.Len(t, FilterOrders(orders, "", ""), 3)

	// Exact status filter
	pending := FilterOrders(orders, models.OrderStatusPending, "")
	assert.Len(t, pending, 2)

	// Search matches code, case-insensitively
	byCode := FilterOrders(orders, "", "xyz")
	assert.Len(t, byCode, 1)
	assert.Equal(t, "XYZ789", byCode[0].Code)

	// Search matches customer name
	byName := FilterOrders(orders, "", "budi")
	assert.Len(t, byName, 2)

	// Both filters combine
	both := FilterOrders(orders, models.OrderStatusPending, "hartono")
	assert.Len(t, both, 1)
	assert.Equal(t, "QRS567", both[0].Code)

	// Nothing matches
	assert.Empty(t, FilterOrders(orders, models.OrderStatusCanceled, ""))
}

func TestCreateManualOrderValidation(t *testing.T) {
	s := &AdminOrderService{}
	ctx := context.Background()

	_, err := s.CreateManualOrder(ctx, "t1", &ManualOrderRequest{
		CustomerName: "  ",
		Items:        []ManualOrderItem{{ProductName: "Bakso", Qty: 1, UnitPrice: 12.00}},
	})
	assert.Error(t, err)

	_, err = s.CreateManualOrder(ctx, "t1", &ManualOrderRequest{CustomerName: "Budi"})
	assert.Error(t, err)

	_, err = s.CreateManualOrder(ctx, "t1", &ManualOrderRequest{
		CustomerName: "Budi",
		Items:        []ManualOrderItem{{ProductName: "Bakso", Qty: 0, UnitPrice: 12.00}},
	})
	assert.Error(t, err)
}

func TestTransitionRejectsUndefinedEdgeBeforeHittingStore(t *testing.T) {
	// A nil store is safe here: the edge check runs first
	s := &AdminOrderService{}

	_, err := s.Transition(context.Background(), "t1", "o1", models.OrderStatusDone, models.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
