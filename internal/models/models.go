package models

import (
	"encoding/json"
	"time"
)

// Tenant is one restaurant instance, addressed publicly by its slug.
type Tenant struct {
	ID        string    `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	LogoURL   string    `db:"logo_url" json:"logo_url,omitempty"`
	Plan      string    `db:"plan" json:"plan"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Category struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Published bool      `db:"published" json:"published"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Product is storefront-visible only when Active and PublishedAt is set.
type Product struct {
	ID          string     `db:"id" json:"id"`
	TenantID    string     `db:"tenant_id" json:"tenant_id"`
	CategoryID  *string    `db:"category_id" json:"category_id,omitempty"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Price       float64    `db:"price" json:"price"`
	ImageURL    string     `db:"image_url" json:"image_url,omitempty"`
	Stock       int        `db:"stock" json:"stock"`
	Active      bool       `db:"active" json:"active"`
	Featured    bool       `db:"featured" json:"featured"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type Banner struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Title     string    `db:"title" json:"title"`
	ImageURL  string    `db:"image_url" json:"image_url,omitempty"`
	Link      string    `db:"link" json:"link,omitempty"`
	Published bool      `db:"published" json:"published"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Partnership struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	LogoURL   string    `db:"logo_url" json:"logo_url,omitempty"`
	Link      string    `db:"link" json:"link,omitempty"`
	Published bool      `db:"published" json:"published"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Settings is one-to-one with Tenant. OpeningHours maps weekday name to
// {"open": "HH:MM", "close": "HH:MM"} and is stored as jsonb.
type Settings struct {
	ID            string          `db:"id" json:"id"`
	TenantID      string          `db:"tenant_id" json:"tenant_id"`
	IsOpen        bool            `db:"is_open" json:"is_open"`
	DeliveryFee   float64         `db:"delivery_fee" json:"delivery_fee"`
	PickupEnabled bool            `db:"pickup_enabled" json:"pickup_enabled"`
	OpeningHours  json.RawMessage `db:"opening_hours" json:"opening_hours,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Customer rows are created at checkout and never deduplicated; a repeat
// phone number gets a fresh row.
type Customer struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Order struct {
	ID         string    `db:"id" json:"id"`
	TenantID   string    `db:"tenant_id" json:"tenant_id"`
	CustomerID *string   `db:"customer_id" json:"customer_id,omitempty"`
	Code       string    `db:"code" json:"code"`
	Channel    string    `db:"channel" json:"channel"`
	Status     string    `db:"status" json:"status"`
	Subtotal   float64   `db:"subtotal" json:"subtotal"`
	Delivery   float64   `db:"delivery" json:"delivery"`
	Total      float64   `db:"total" json:"total"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// OrderItem freezes the product's name and price at order time. Rows are
// immutable after creation; later catalog edits must not touch them.
type OrderItem struct {
	ID          string  `db:"id" json:"id"`
	OrderID     string  `db:"order_id" json:"order_id"`
	ProductID   *string `db:"product_id" json:"product_id,omitempty"`
	ProductName string  `db:"product_name" json:"product_name"`
	Qty         int     `db:"qty" json:"qty"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Total       float64 `db:"total" json:"total"`
}

// OrderStatusHistory is an append-only trail, one row per transition
// including the initial PENDING.
type OrderStatusHistory struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Profile struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	TenantID     *string   `db:"tenant_id" json:"tenant_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type WhatsAppConnection struct {
	ID           string     `db:"id" json:"id"`
	TenantID     string     `db:"tenant_id" json:"tenant_id"`
	Status       string     `db:"status" json:"status"`
	QRCode       *string    `db:"qr_code" json:"qr_code,omitempty"`
	ConnectedAt  *time.Time `db:"connected_at" json:"connected_at,omitempty"`
	LastActivity *time.Time `db:"last_activity" json:"last_activity,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPreparing = "PREPARING"
	OrderStatusDone      = "DONE"
	OrderStatusCanceled  = "CANCELED"
)

// Order channels
const (
	OrderChannelWeb    = "WEB"
	OrderChannelManual = "MANUAL"
)

// Profile roles
const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

// WhatsApp connection statuses
const (
	WhatsAppDisconnected = "disconnected"
	WhatsAppConnecting   = "connecting"
	WhatsAppConnected    = "connected"
	WhatsAppError        = "error"
)
