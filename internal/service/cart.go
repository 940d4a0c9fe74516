package service

import (
	"context"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CartService manages per-session, per-tenant carts
type CartService struct {
	store  *store.Store
	redis  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store, redis *redisclient.Client, ttl time.Duration) *CartService {
	return &CartService{
		store:  store,
		redis:  redis,
		ttl:    ttl,
		logger: util.GetLogger(),
	}
}

// CartView is the cart payload returned to storefront clients
type CartView struct {
	TenantSlug string      `json:"tenant_slug"`
	Items      []cart.Item `json:"items"`
	Total      float64     `json:"total"`
	ItemCount  int         `json:"item_count"`
}

func viewOf(ct *cart.Cart) *CartView {
	items := ct.Items
	if items == nil {
		items = []cart.Item{}
	}
	return &CartView{
		TenantSlug: ct.TenantSlug,
		Items:      items,
		Total:      ct.Total(),
		ItemCount:  ct.ItemCount(),
	}
}

// GetCart returns the session's cart for a tenant
func (cs *CartService) GetCart(ctx context.Context, sessionID, tenantSlug string) (*CartView, error) {
	ct, err := cs.redis.GetCart(ctx, sessionID, tenantSlug)
	if err != nil {
		return nil, err
	}
	return viewOf(ct), nil
}

// AddItem adds one unit of a storefront-visible product to the cart,
// snapshotting its name, price and image. A line that already exists keeps
// its original snapshot and only gains quantity.
func (cs *CartService) AddItem(ctx context.Context, sessionID, tenantSlug, productID string) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	tenant, err := cs.store.GetTenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}

	product, err := cs.store.GetVisibleProductByID(ctx, tenant.ID, productID)
	if err != nil {
		return nil, err
	}

	line := cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImageURL:  product.ImageURL,
		Qty:       1,
	}

	if _, err := cs.redis.AddCartItem(ctx, sessionID, tenantSlug, line, cs.ttl); err != nil {
		return nil, err
	}

	util.CartOperationsTotal.WithLabelValues("add").Inc()
	return cs.GetCart(ctx, sessionID, tenantSlug)
}

// UpdateQuantity sets a line's quantity exactly; below 1 removes the line
func (cs *CartService) UpdateQuantity(ctx context.Context, sessionID, tenantSlug, productID string, qty int) (*CartView, error) {
	ct, err := cs.redis.GetCart(ctx, sessionID, tenantSlug)
	if err != nil {
		return nil, err
	}

	ct.UpdateQuantity(productID, qty)

	if err := cs.redis.SaveCart(ctx, sessionID, ct, cs.ttl); err != nil {
		return nil, err
	}

	util.CartOperationsTotal.WithLabelValues("update").Inc()
	return viewOf(ct), nil
}

// RemoveItem deletes a line regardless of quantity
func (cs *CartService) RemoveItem(ctx context.Context, sessionID, tenantSlug, productID string) (*CartView, error) {
	ct, err := cs.redis.GetCart(ctx, sessionID, tenantSlug)
	if err != nil {
		return nil, err
	}

	ct.RemoveItem(productID)

	if err := cs.redis.SaveCart(ctx, sessionID, ct, cs.ttl); err != nil {
		return nil, err
	}

	util.CartOperationsTotal.WithLabelValues("remove").Inc()
	return viewOf(ct), nil
}

// ClearCart empties the session's cart for a tenant. Idempotent.
func (cs *CartService) ClearCart(ctx context.Context, sessionID, tenantSlug string) error {
	if err := cs.redis.DeleteCart(ctx, sessionID, tenantSlug); err != nil {
		return err
	}
	util.CartOperationsTotal.WithLabelValues("clear").Inc()
	return nil
}
