package redisclient

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/cart"

	"github.com/go-redis/redis/v8"
)

//go:embed scripts/cart_add.lua
var cartAddScript string

type Client struct {
	rdb       *redis.Client
	addScript *redis.Script
}

// NewClient creates a new Redis client with Lua scripts loaded
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:       rdb,
		addScript: redis.NewScript(cartAddScript),
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Carts are partitioned by session AND tenant slug, so browsing a second
// storefront in the same session never mixes lines across tenants.
func cartKey(sessionID, tenantSlug string) string {
	return fmt.Sprintf("cart:%s:%s", sessionID, tenantSlug)
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// GetCart loads the cart for a session/tenant pair. A missing key yields an
// empty cart, not an error.
func (c *Client) GetCart(ctx context.Context, sessionID, tenantSlug string) (*cart.Cart, error) {
	raw, err := c.rdb.Get(ctx, cartKey(sessionID, tenantSlug)).Bytes()
	if err == redis.Nil {
		return cart.New(tenantSlug), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var ct cart.Cart
	if err := json.Unmarshal(raw, &ct); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &ct, nil
}

// SaveCart persists the cart with a TTL. An empty cart deletes the key.
func (c *Client) SaveCart(ctx context.Context, sessionID string, ct *cart.Cart, ttl time.Duration) error {
	if ct.IsEmpty() {
		return c.DeleteCart(ctx, sessionID, ct.TenantSlug)
	}

	raw, err := json.Marshal(ct)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return c.rdb.Set(ctx, cartKey(sessionID, ct.TenantSlug), raw, ttl).Err()
}

// AddCartItem atomically increments or inserts a cart line via Lua, so two
// quick taps on "add" from the same session cannot lose an increment.
// Returns the number of distinct lines in the cart.
func (c *Client) AddCartItem(ctx context.Context, sessionID, tenantSlug string, line cart.Item, ttl time.Duration) (int, error) {
	lineJSON, err := json.Marshal(line)
	if err != nil {
		return 0, fmt.Errorf("failed to encode cart line: %w", err)
	}

	result, err := c.addScript.Run(ctx, c.rdb,
		[]string{cartKey(sessionID, tenantSlug)},
		line.ProductID, string(lineJSON), tenantSlug, int(ttl.Seconds())).Result()
	if err != nil {
		return 0, fmt.Errorf("cart add script failed: %w", err)
	}

	count, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected script result type")
	}
	return int(count), nil
}

// DeleteCart removes the cart key. Deleting an absent cart is a no-op.
func (c *Client) DeleteCart(ctx context.Context, sessionID, tenantSlug string) error {
	return c.rdb.Del(ctx, cartKey(sessionID, tenantSlug)).Err()
}

// SetSession stores a session token mapped to a profile id with TTL
func (c *Client) SetSession(ctx context.Context, token, profileID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionKey(token), profileID, ttl).Err()
}

// GetSession resolves a session token to a profile id. Returns an empty
// string when the token is unknown or expired.
func (c *Client) GetSession(ctx context.Context, token string) (string, error) {
	profileID, err := c.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return profileID, nil
}

// DeleteSession invalidates a session token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}
