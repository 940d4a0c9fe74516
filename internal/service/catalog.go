package service

import (
	"context"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService handles the admin back-office CRUD over catalog and
// presentational content. Every operation is scoped to the caller's tenant;
// the tenant id always comes from the session, never from the request body.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *CatalogService) ListCategories(ctx context.Context, tenantID string) ([]models.Category, error) {
	return s.store.ListCategories(ctx, tenantID)
}

func (s *CatalogService) CreateCategory(ctx context.Context, tenantID string, category *models.Category) error {
	category.TenantID = tenantID
	return s.store.CreateCategory(ctx, category)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, tenantID string, category *models.Category) error {
	category.TenantID = tenantID
	return s.store.UpdateCategory(ctx, category)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, tenantID, id string) error {
	return s.store.DeleteCategory(ctx, tenantID, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	return s.store.ListProducts(ctx, tenantID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, tenantID string, product *models.Product) error {
	product.TenantID = tenantID
	return s.store.CreateProduct(ctx, product)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, tenantID string, product *models.Product) error {
	product.TenantID = tenantID
	return s.store.UpdateProduct(ctx, product)
}

// SetProductPublished toggles storefront visibility. Publishing stamps
// published_at now; unpublishing clears it. The active flag is independent.
func (s *CatalogService) SetProductPublished(ctx context.Context, tenantID, id string, published bool) error {
	if err := s.store.SetProductPublished(ctx, tenantID, id, published); err != nil {
		return err
	}
	s.logger.Info("Product visibility changed",
		zap.String("product_id", id), zap.Bool("published", published))
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, tenantID, id string) error {
	return s.store.DeleteProduct(ctx, tenantID, id)
}

func (s *CatalogService) ListBanners(ctx context.Context, tenantID string) ([]models.Banner, error) {
	return s.store.ListBanners(ctx, tenantID)
}

func (s *CatalogService) CreateBanner(ctx context.Context, tenantID string, banner *models.Banner) error {
	banner.TenantID = tenantID
	return s.store.CreateBanner(ctx, banner)
}

func (s *CatalogService) UpdateBanner(ctx context.Context, tenantID string, banner *models.Banner) error {
	banner.TenantID = tenantID
	return s.store.UpdateBanner(ctx, banner)
}

func (s *CatalogService) DeleteBanner(ctx context.Context, tenantID, id string) error {
	return s.store.DeleteBanner(ctx, tenantID, id)
}

func (s *CatalogService) ListPartnerships(ctx context.Context, tenantID string) ([]models.Partnership, error) {
	return s.store.ListPartnerships(ctx, tenantID)
}

func (s *CatalogService) CreatePartnership(ctx context.Context, tenantID string, partnership *models.Partnership) error {
	partnership.TenantID = tenantID
	return s.store.CreatePartnership(ctx, partnership)
}

func (s *CatalogService) UpdatePartnership(ctx context.Context, tenantID string, partnership *models.Partnership) error {
	partnership.TenantID = tenantID
	return s.store.UpdatePartnership(ctx, partnership)
}

func (s *CatalogService) DeletePartnership(ctx context.Context, tenantID, id string) error {
	return s.store.DeletePartnership(ctx, tenantID, id)
}

func (s *CatalogService) GetSettings(ctx context.Context, tenantID string) (*models.Settings, error) {
	return s.store.GetSettingsByTenantID(ctx, tenantID)
}

func (s *CatalogService) SaveSettings(ctx context.Context, tenantID string, settings *models.Settings) error {
	settings.TenantID = tenantID
	return s.store.UpsertSettings(ctx, settings)
}

func (s *CatalogService) ListCustomers(ctx context.Context, tenantID string) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx, tenantID)
}

func (s *CatalogService) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	return s.store.GetTenantByID(ctx, tenantID)
}

func (s *CatalogService) UpdateTenantContact(ctx context.Context, tenantID, name, phone, address, logoURL string) error {
	return s.store.UpdateTenantContact(ctx, tenantID, name, phone, address, logoURL)
}
