package service

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WhatsAppService manages the per-tenant WhatsApp link stub. No real
// WhatsApp API is involved: pairing is simulated with a generated QR payload
// and an explicit confirm step.
type WhatsAppService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(store *store.Store) *WhatsAppService {
	return &WhatsAppService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// GetConnection returns the tenant's connection state; tenants that never
// linked get a disconnected placeholder.
func (ws *WhatsAppService) GetConnection(ctx context.Context, tenantID string) (*models.WhatsAppConnection, error) {
	conn, err := ws.store.GetWhatsAppConnection(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return &models.WhatsAppConnection{
			TenantID: tenantID,
			Status:   models.WhatsAppDisconnected,
		}, nil
	}
	return conn, nil
}

// GenerateQR moves the connection to connecting and issues a fresh pairing
// payload for the admin to scan.
func (ws *WhatsAppService) GenerateQR(ctx context.Context, tenantID string) (*models.WhatsAppConnection, error) {
	qr := fmt.Sprintf("wa-link:%s:%s", tenantID, uuid.New().String())
	conn := &models.WhatsAppConnection{
		TenantID: tenantID,
		Status:   models.WhatsAppConnecting,
		QRCode:   &qr,
	}

	if err := ws.store.UpsertWhatsAppConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	ws.logger.Info("WhatsApp QR generated", zap.String("tenant_id", tenantID))
	return conn, nil
}

// Confirm marks the connection as connected and drops the QR payload
func (ws *WhatsAppService) Confirm(ctx context.Context, tenantID string) (*models.WhatsAppConnection, error) {
	now := time.Now()
	conn := &models.WhatsAppConnection{
		TenantID:     tenantID,
		Status:       models.WhatsAppConnected,
		ConnectedAt:  &now,
		LastActivity: &now,
	}

	if err := ws.store.UpsertWhatsAppConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	ws.logger.Info("WhatsApp connected", zap.String("tenant_id", tenantID))
	return conn, nil
}

// Restart drops the link back to disconnected, clearing pairing state
func (ws *WhatsAppService) Restart(ctx context.Context, tenantID string) (*models.WhatsAppConnection, error) {
	conn := &models.WhatsAppConnection{
		TenantID: tenantID,
		Status:   models.WhatsAppDisconnected,
	}

	if err := ws.store.UpsertWhatsAppConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	ws.logger.Info("WhatsApp connection restarted", zap.String("tenant_id", tenantID))
	return conn, nil
}
