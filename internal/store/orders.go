package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-service/internal/models"

	"github.com/lib/pq"
)

// ErrCodeTaken is returned when the generated order code collides with an
// existing one; callers retry with a fresh code.
var ErrCodeTaken = errors.New("order code already taken")

// OrderSummary is an order row joined with its customer's name, used by the
// admin list and the public tracking view.
type OrderSummary struct {
	models.Order
	CustomerName string `db:"customer_name"`
}

// CreateOrderParams is the unit of work for one checkout: customer, order,
// item snapshots and the initial history row commit or roll back together.
type CreateOrderParams struct {
	TenantID string
	Customer *models.Customer
	Code     string
	Channel  string
	Subtotal float64
	Delivery float64
	Total    float64
	Notes    *string
	Items    []models.OrderItem
}

// CreateOrderTx persists a complete order in a single transaction. A failure
// at any step leaves no orphaned customer or partial order behind.
func (s *Store) CreateOrderTx(ctx context.Context, params *CreateOrderParams) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var customerID *string
	if params.Customer != nil {
		params.Customer.TenantID = params.TenantID
		err = tx.GetContext(ctx, params.Customer, `
			INSERT INTO customers (tenant_id, name, phone, address)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			params.Customer.TenantID, params.Customer.Name,
			params.Customer.Phone, params.Customer.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		customerID = &params.Customer.ID
	}

	order := &models.Order{
		TenantID:   params.TenantID,
		CustomerID: customerID,
		Code:       params.Code,
		Channel:    params.Channel,
		Status:     models.OrderStatusPending,
		Subtotal:   params.Subtotal,
		Delivery:   params.Delivery,
		Total:      params.Total,
		Notes:      params.Notes,
	}

	err = tx.GetContext(ctx, order, `
		INSERT INTO orders (tenant_id, customer_id, code, channel, status, subtotal, delivery, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		order.TenantID, order.CustomerID, order.Code, order.Channel, order.Status,
		order.Subtotal, order.Delivery, order.Total, order.Notes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range params.Items {
		item := &params.Items[i]
		item.OrderID = order.ID
		err = tx.GetContext(ctx, &item.ID, `
			INSERT INTO order_items (order_id, product_id, product_name, qty, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.Qty, item.UnitPrice, item.Total)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO order_status_history (order_id, status) VALUES ($1, $2)",
		order.ID, models.OrderStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to record initial status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// TransitionOrderStatus advances an order's status with an expected-status
// precondition. The row is locked, compared against the expected status, and
// updated together with its history row in one transaction, so two admins
// racing on the same order produce one winner and one ErrStatusConflict.
func (s *Store) TransitionOrderStatus(ctx context.Context, tenantID, orderID, from, to string) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE id = $1 AND tenant_id = $2 FOR UPDATE",
		orderID, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	if order.Status != from {
		return nil, ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", to, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO order_status_history (order_id, status) VALUES ($1, $2)",
		orderID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to record status change: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}

	order.Status = to
	return &order, nil
}

// GetOrderByID retrieves an order, scoped to the tenant
func (s *Store) GetOrderByID(ctx context.Context, tenantID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE id = $1 AND tenant_id = $2", orderID, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByCode retrieves an order by its public tracking code
func (s *Store) GetOrderByCode(ctx context.Context, code string) (*OrderSummary, error) {
	var order OrderSummary
	err := s.db.GetContext(ctx, &order, `
		SELECT o.*, COALESCE(c.name, '') AS customer_name
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.code = $1`, code)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves all orders for a tenant, newest first
func (s *Store) ListOrders(ctx context.Context, tenantID string) ([]OrderSummary, error) {
	var orders []OrderSummary
	err := s.db.SelectContext(ctx, &orders, `
		SELECT o.*, COALESCE(c.name, '') AS customer_name
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.tenant_id = $1
		ORDER BY o.created_at DESC`, tenantID)
	return orders, err
}

// GetOrderItems retrieves all items for an order
func (s *Store) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}

// GetOrderHistory retrieves the status trail for an order, oldest first
func (s *Store) GetOrderHistory(ctx context.Context, orderID string) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := s.db.SelectContext(ctx, &history,
		"SELECT * FROM order_status_history WHERE order_id = $1 ORDER BY created_at", orderID)
	return history, err
}

// ListCustomers retrieves all customers for a tenant, newest first
func (s *Store) ListCustomers(ctx context.Context, tenantID string) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers WHERE tenant_id = $1 ORDER BY created_at DESC", tenantID)
	return customers, err
}
