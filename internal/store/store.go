package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible
	// to the caller's tenant.
	ErrNotFound = errors.New("not found")

	// ErrStatusConflict is returned when a status transition's expected
	// current status no longer matches the row.
	ErrStatusConflict = errors.New("order status conflict")

	// ErrEmailTaken is returned when a profile email is already registered
	ErrEmailTaken = errors.New("email already registered")
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetTenantBySlug resolves a tenant by its public slug. Inactive tenants
// resolve the same as missing ones so the public surface leaks nothing.
func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.GetContext(ctx, &tenant,
		"SELECT * FROM tenants WHERE slug = $1 AND is_active = TRUE", slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetTenantByID retrieves a tenant by ID
func (s *Store) GetTenantByID(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.GetContext(ctx, &tenant, "SELECT * FROM tenants WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateTenantContact updates the admin-editable contact fields
func (s *Store) UpdateTenantContact(ctx context.Context, id, name, phone, address, logoURL string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tenants SET name = $1, phone = $2, address = $3, logo_url = $4 WHERE id = $5",
		name, phone, address, logoURL, id)
	return err
}

// CreateProfile creates a staff profile
func (s *Store) CreateProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (email, name, password_hash, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, profile, query,
		profile.Email, profile.Name, profile.PasswordHash, profile.Role, profile.TenantID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetProfileByEmail retrieves a profile by email
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.GetContext(ctx, &profile, "SELECT * FROM profiles WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByID retrieves a profile by ID
func (s *Store) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.GetContext(ctx, &profile, "SELECT * FROM profiles WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetSettingsByTenantID retrieves tenant settings. Returns nil when the
// tenant has not saved settings yet.
func (s *Store) GetSettingsByTenantID(ctx context.Context, tenantID string) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.GetContext(ctx, &settings, "SELECT * FROM settings WHERE tenant_id = $1", tenantID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings creates or replaces the tenant's settings row
func (s *Store) UpsertSettings(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (tenant_id, is_open, delivery_fee, pickup_enabled, opening_hours)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			delivery_fee = EXCLUDED.delivery_fee,
			pickup_enabled = EXCLUDED.pickup_enabled,
			opening_hours = EXCLUDED.opening_hours
		RETURNING id, created_at`

	return s.db.GetContext(ctx, settings, query,
		settings.TenantID, settings.IsOpen, settings.DeliveryFee,
		settings.PickupEnabled, settings.OpeningHours)
}

// GetWhatsAppConnection retrieves the tenant's connection row, nil if none
func (s *Store) GetWhatsAppConnection(ctx context.Context, tenantID string) (*models.WhatsAppConnection, error) {
	var conn models.WhatsAppConnection
	err := s.db.GetContext(ctx, &conn,
		"SELECT * FROM whatsapp_connections WHERE tenant_id = $1", tenantID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// UpsertWhatsAppConnection creates or updates the tenant's connection row
func (s *Store) UpsertWhatsAppConnection(ctx context.Context, conn *models.WhatsAppConnection) error {
	query := `
		INSERT INTO whatsapp_connections (tenant_id, status, qr_code, connected_at, last_activity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id) DO UPDATE SET
			status = EXCLUDED.status,
			qr_code = EXCLUDED.qr_code,
			connected_at = EXCLUDED.connected_at,
			last_activity = EXCLUDED.last_activity
		RETURNING id, created_at`

	return s.db.GetContext(ctx, conn, query,
		conn.TenantID, conn.Status, conn.QRCode, conn.ConnectedAt, conn.LastActivity)
}

// TouchWhatsAppActivity stamps last_activity for a connected tenant
func (s *Store) TouchWhatsAppActivity(ctx context.Context, tenantID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE whatsapp_connections SET last_activity = NOW() WHERE tenant_id = $1 AND status = $2",
		tenantID, models.WhatsAppConnected)
	return err
}
