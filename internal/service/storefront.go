package service

import (
	"context"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StorefrontService serves the public read path for one tenant's storefront
type StorefrontService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(store *store.Store) *StorefrontService {
	return &StorefrontService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Storefront bundles everything the public storefront needs in one response
type Storefront struct {
	Tenant       *models.Tenant       `json:"tenant"`
	Categories   []models.Category    `json:"categories"`
	Products     []models.Product     `json:"products"`
	Banners      []models.Banner      `json:"banners"`
	Partnerships []models.Partnership `json:"partnerships"`
	Settings     *models.Settings     `json:"settings,omitempty"`
}

// GetStorefront resolves a tenant by slug and loads its published content.
// The four content reads are independent and run concurrently, all gated by
// the resolved tenant id. Visibility is enforced by the queries themselves.
func (sf *StorefrontService) GetStorefront(ctx context.Context, slug, search, categoryID string) (*Storefront, error) {
	ctx, span := util.StartSpan(ctx, "StorefrontService.GetStorefront")
	defer span.End()

	tenant, err := sf.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	result := &Storefront{Tenant: tenant}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Categories, err = sf.store.GetPublishedCategories(gctx, tenant.ID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Products, err = sf.store.GetVisibleProducts(gctx, tenant.ID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Banners, err = sf.store.GetPublishedBanners(gctx, tenant.ID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Partnerships, err = sf.store.GetPublishedPartnerships(gctx, tenant.ID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Settings, err = sf.store.GetSettingsByTenantID(gctx, tenant.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Products = FilterProducts(result.Products, search, categoryID)

	util.StorefrontViewsTotal.Inc()
	return result, nil
}

// GetProduct loads one storefront-visible product for a tenant slug
func (sf *StorefrontService) GetProduct(ctx context.Context, slug, productID string) (*models.Product, error) {
	tenant, err := sf.store.GetTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return sf.store.GetVisibleProductByID(ctx, tenant.ID, productID)
}

// FilterProducts narrows an already-visible product set: case-insensitive
// substring match on name, plus optional category equality. It never widens
// visibility; hidden products are excluded upstream by the query.
func FilterProducts(products []models.Product, search, categoryID string) []models.Product {
	if search == "" && categoryID == "" {
		return products
	}

	needle := strings.ToLower(search)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if categoryID != "" && (p.CategoryID == nil || *p.CategoryID != categoryID) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
