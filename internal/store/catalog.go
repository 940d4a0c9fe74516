package store

import (
	"context"
	"database/sql"

	"storefront-service/internal/models"
)

// Storefront reads enforce visibility in SQL. A modified client cannot pull
// hidden rows because no query without these predicates is exposed publicly.

// GetPublishedCategories retrieves storefront-visible categories
func (s *Store) GetPublishedCategories(ctx context.Context, tenantID string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE tenant_id = $1 AND published = TRUE ORDER BY sort_order, name",
		tenantID)
	return categories, err
}

// GetVisibleProducts retrieves products that are active AND published
func (s *Store) GetVisibleProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products
		 WHERE tenant_id = $1 AND active = TRUE AND published_at IS NOT NULL
		 ORDER BY featured DESC, name`,
		tenantID)
	return products, err
}

// GetPublishedBanners retrieves storefront-visible banners
func (s *Store) GetPublishedBanners(ctx context.Context, tenantID string) ([]models.Banner, error) {
	var banners []models.Banner
	err := s.db.SelectContext(ctx, &banners,
		"SELECT * FROM banners WHERE tenant_id = $1 AND published = TRUE ORDER BY sort_order",
		tenantID)
	return banners, err
}

// GetPublishedPartnerships retrieves storefront-visible partnerships
func (s *Store) GetPublishedPartnerships(ctx context.Context, tenantID string) ([]models.Partnership, error) {
	var partnerships []models.Partnership
	err := s.db.SelectContext(ctx, &partnerships,
		"SELECT * FROM partnerships WHERE tenant_id = $1 AND published = TRUE ORDER BY sort_order",
		tenantID)
	return partnerships, err
}

// GetVisibleProductByID retrieves one storefront-visible product
func (s *Store) GetVisibleProductByID(ctx context.Context, tenantID, productID string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		`SELECT * FROM products
		 WHERE id = $1 AND tenant_id = $2 AND active = TRUE AND published_at IS NOT NULL`,
		productID, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Admin reads are scoped by tenant only; hidden rows stay editable.

// ListCategories retrieves all categories for a tenant
func (s *Store) ListCategories(ctx context.Context, tenantID string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories WHERE tenant_id = $1 ORDER BY sort_order, name", tenantID)
	return categories, err
}

// CreateCategory creates a new category
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (tenant_id, name, published, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, category, query,
		category.TenantID, category.Name, category.Published, category.SortOrder)
}

// UpdateCategory updates a category, scoped to the tenant
func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, published = $2, sort_order = $3 WHERE id = $4 AND tenant_id = $5",
		category.Name, category.Published, category.SortOrder, category.ID, category.TenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteCategory deletes a category, scoped to the tenant
func (s *Store) DeleteCategory(ctx context.Context, tenantID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM categories WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListProducts retrieves all products for a tenant
func (s *Store) ListProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE tenant_id = $1 ORDER BY name", tenantID)
	return products, err
}

// GetProductByID retrieves a product, scoped to the tenant
func (s *Store) GetProductByID(ctx context.Context, tenantID, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (tenant_id, category_id, name, description, price, image_url, stock, active, featured, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.TenantID, product.CategoryID, product.Name, product.Description,
		product.Price, product.ImageURL, product.Stock, product.Active,
		product.Featured, product.PublishedAt)
}

// UpdateProduct updates a product's editable fields, scoped to the tenant.
// published_at is managed separately by SetProductPublished.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET category_id = $1, name = $2, description = $3, price = $4,
			image_url = $5, stock = $6, active = $7, featured = $8
		 WHERE id = $9 AND tenant_id = $10`,
		product.CategoryID, product.Name, product.Description, product.Price,
		product.ImageURL, product.Stock, product.Active, product.Featured,
		product.ID, product.TenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetProductPublished publishes (stamps published_at) or unpublishes a product
func (s *Store) SetProductPublished(ctx context.Context, tenantID, id string, published bool) error {
	var query string
	if published {
		query = "UPDATE products SET published_at = NOW() WHERE id = $1 AND tenant_id = $2"
	} else {
		query = "UPDATE products SET published_at = NULL WHERE id = $1 AND tenant_id = $2"
	}
	result, err := s.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteProduct deletes a product; order items keep their snapshot and a
// null product_id via the FK's ON DELETE SET NULL.
func (s *Store) DeleteProduct(ctx context.Context, tenantID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListBanners retrieves all banners for a tenant
func (s *Store) ListBanners(ctx context.Context, tenantID string) ([]models.Banner, error) {
	var banners []models.Banner
	err := s.db.SelectContext(ctx, &banners,
		"SELECT * FROM banners WHERE tenant_id = $1 ORDER BY sort_order", tenantID)
	return banners, err
}

// CreateBanner creates a new banner
func (s *Store) CreateBanner(ctx context.Context, banner *models.Banner) error {
	query := `
		INSERT INTO banners (tenant_id, title, image_url, link, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, banner, query,
		banner.TenantID, banner.Title, banner.ImageURL, banner.Link,
		banner.Published, banner.SortOrder)
}

// UpdateBanner updates a banner, scoped to the tenant
func (s *Store) UpdateBanner(ctx context.Context, banner *models.Banner) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE banners SET title = $1, image_url = $2, link = $3, published = $4, sort_order = $5
		 WHERE id = $6 AND tenant_id = $7`,
		banner.Title, banner.ImageURL, banner.Link, banner.Published,
		banner.SortOrder, banner.ID, banner.TenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteBanner deletes a banner, scoped to the tenant
func (s *Store) DeleteBanner(ctx context.Context, tenantID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM banners WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListPartnerships retrieves all partnerships for a tenant
func (s *Store) ListPartnerships(ctx context.Context, tenantID string) ([]models.Partnership, error) {
	var partnerships []models.Partnership
	err := s.db.SelectContext(ctx, &partnerships,
		"SELECT * FROM partnerships WHERE tenant_id = $1 ORDER BY sort_order", tenantID)
	return partnerships, err
}

// CreatePartnership creates a new partnership
func (s *Store) CreatePartnership(ctx context.Context, partnership *models.Partnership) error {
	query := `
		INSERT INTO partnerships (tenant_id, name, logo_url, link, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, partnership, query,
		partnership.TenantID, partnership.Name, partnership.LogoURL,
		partnership.Link, partnership.Published, partnership.SortOrder)
}

// UpdatePartnership updates a partnership, scoped to the tenant
func (s *Store) UpdatePartnership(ctx context.Context, partnership *models.Partnership) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE partnerships SET name = $1, logo_url = $2, link = $3, published = $4, sort_order = $5
		 WHERE id = $6 AND tenant_id = $7`,
		partnership.Name, partnership.LogoURL, partnership.Link,
		partnership.Published, partnership.SortOrder, partnership.ID, partnership.TenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeletePartnership deletes a partnership, scoped to the tenant
func (s *Store) DeletePartnership(ctx context.Context, tenantID, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM partnerships WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
