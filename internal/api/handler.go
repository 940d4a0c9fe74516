package api

import (
	"errors"
	"net/http"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/storage"
	"storefront-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	auth       *service.AuthService
	storefront *service.StorefrontService
	cart       *service.CartService
	checkout   *service.CheckoutService
	orders     *service.AdminOrderService
	tracking   *service.TrackingService
	catalog    *service.CatalogService
	whatsapp   *service.WhatsAppService
	storage    *storage.Storage
}

// NewHandler creates a new HTTP handler
func NewHandler(
	auth *service.AuthService,
	storefront *service.StorefrontService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	orders *service.AdminOrderService,
	tracking *service.TrackingService,
	catalog *service.CatalogService,
	whatsapp *service.WhatsAppService,
	storage *storage.Storage,
) *Handler {
	return &Handler{
		auth:       auth,
		storefront: storefront,
		cart:       cart,
		checkout:   checkout,
		orders:     orders,
		tracking:   tracking,
		catalog:    catalog,
		whatsapp:   whatsapp,
		storage:    storage,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", h.storage.Dir())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/signin", h.signIn)
		auth.POST("/signout", h.signOut)
	}

	pub := v1.Group("/store/:slug")
	{
		pub.GET("", h.getStorefront)
		pub.GET("/products/:id", h.getProduct)
		pub.GET("/cart", h.getCart)
		pub.POST("/cart/items", h.addCartItem)
		pub.PUT("/cart/items/:productId", h.updateCartItem)
		pub.DELETE("/cart/items/:productId", h.removeCartItem)
		pub.DELETE("/cart", h.clearCart)
		pub.POST("/checkout", h.checkoutOrder)
	}

	v1.GET("/track/:code", h.trackOrder)

	admin := v1.Group("/admin")
	admin.Use(authMiddleware(h.auth))
	{
		admin.GET("/dashboard", h.getDashboard)

		admin.GET("/orders", h.listOrders)
		admin.POST("/orders", h.createManualOrder)
		admin.GET("/orders/:id", h.getOrderDetail)
		admin.POST("/orders/:id/transition", h.transitionOrder)

		admin.GET("/categories", h.listCategories)
		admin.POST("/categories", h.createCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)

		admin.GET("/products", h.listProducts)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.POST("/products/:id/publish", h.publishProduct)
		admin.DELETE("/products/:id", h.deleteProduct)

		admin.GET("/banners", h.listBanners)
		admin.POST("/banners", h.createBanner)
		admin.PUT("/banners/:id", h.updateBanner)
		admin.DELETE("/banners/:id", h.deleteBanner)

		admin.GET("/partnerships", h.listPartnerships)
		admin.POST("/partnerships", h.createPartnership)
		admin.PUT("/partnerships/:id", h.updatePartnership)
		admin.DELETE("/partnerships/:id", h.deletePartnership)

		admin.GET("/customers", h.listCustomers)

		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.saveSettings)

		admin.GET("/tenant", h.getTenant)
		admin.PUT("/tenant", h.updateTenant)

		admin.GET("/whatsapp", h.getWhatsApp)
		admin.POST("/whatsapp/qr", h.whatsAppQR)
		admin.POST("/whatsapp/confirm", h.whatsAppConfirm)
		admin.POST("/whatsapp/restart", h.whatsAppRestart)

		admin.POST("/uploads", h.uploadImage)
		admin.DELETE("/uploads", h.deleteImage)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// respondError maps domain errors onto HTTP statuses. Backend failures stay
// generic; internals never leak to the public surface.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transition not allowed"})
	case errors.Is(err, store.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, reload and retry"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large (max 5MB)"})
	case errors.Is(err, storage.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images are allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}

// --- auth ---

func (h *Handler) signUp(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	profile, err := h.auth.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *Handler) signIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *Handler) signOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- public storefront ---

func (h *Handler) getStorefront(c *gin.Context) {
	result, err := h.storefront.GetStorefront(
		c.Request.Context(),
		c.Param("slug"),
		c.Query("search"),
		c.Query("category"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.storefront.GetProduct(c.Request.Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- cart ---

func (h *Handler) getCart(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	view, err := h.cart.GetCart(c.Request.Context(), session, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) addCartItem(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.cart.AddItem(c.Request.Context(), session, c.Param("slug"), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) updateCartItem(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.cart.UpdateQuantity(
		c.Request.Context(), session, c.Param("slug"), c.Param("productId"), req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	view, err := h.cart.RemoveItem(
		c.Request.Context(), session, c.Param("slug"), c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	if err := h.cart.ClearCart(c.Request.Context(), session, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- checkout & tracking ---

func (h *Handler) checkoutOrder(c *gin.Context) {
	session, ok := requireCartSession(c)
	if !ok {
		return
	}

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.checkout.Checkout(c.Request.Context(), c.Param("slug"), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": order.Code, "order": order})
}

func (h *Handler) trackOrder(c *gin.Context) {
	view, err := h.tracking.TrackByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// --- admin: dashboard & orders ---

func (h *Handler) getDashboard(c *gin.Context) {
	dashboard, err := h.orders.GetDashboard(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(
		c.Request.Context(), currentTenantID(c), c.Query("status"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) createManualOrder(c *gin.Context) {
	var req service.ManualOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.CreateManualOrder(c.Request.Context(), currentTenantID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) getOrderDetail(c *gin.Context) {
	detail, err := h.orders.GetOrderDetail(c.Request.Context(), currentTenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) transitionOrder(c *gin.Context) {
	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.Transition(
		c.Request.Context(), currentTenantID(c), c.Param("id"), req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- admin: catalog ---

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) createCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.CreateCategory(c.Request.Context(), currentTenantID(c), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	category.ID = c.Param("id")

	if err := h.catalog.UpdateCategory(c.Request.Context(), currentTenantID(c), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), currentTenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.CreateProduct(c.Request.Context(), currentTenantID(c), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product.ID = c.Param("id")

	if err := h.catalog.UpdateProduct(c.Request.Context(), currentTenantID(c), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) publishProduct(c *gin.Context) {
	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.SetProductPublished(
		c.Request.Context(), currentTenantID(c), c.Param("id"), *req.Published); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), currentTenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: banners & partnerships ---

func (h *Handler) listBanners(c *gin.Context) {
	banners, err := h.catalog.ListBanners(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (h *Handler) createBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.CreateBanner(c.Request.Context(), currentTenantID(c), &banner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (h *Handler) updateBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	banner.ID = c.Param("id")

	if err := h.catalog.UpdateBanner(c.Request.Context(), currentTenantID(c), &banner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *Handler) deleteBanner(c *gin.Context) {
	if err := h.catalog.DeleteBanner(c.Request.Context(), currentTenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listPartnerships(c *gin.Context) {
	partnerships, err := h.catalog.ListPartnerships(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partnerships": partnerships})
}

func (h *Handler) createPartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := c.ShouldBindJSON(&partnership); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.CreatePartnership(c.Request.Context(), currentTenantID(c), &partnership); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, partnership)
}

func (h *Handler) updatePartnership(c *gin.Context) {
	var partnership models.Partnership
	if err := c.ShouldBindJSON(&partnership); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	partnership.ID = c.Param("id")

	if err := h.catalog.UpdatePartnership(c.Request.Context(), currentTenantID(c), &partnership); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partnership)
}

func (h *Handler) deletePartnership(c *gin.Context) {
	if err := h.catalog.DeletePartnership(c.Request.Context(), currentTenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: customers, settings, tenant ---

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.catalog.GetSettings(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) saveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.SaveSettings(c.Request.Context(), currentTenantID(c), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) getTenant(c *gin.Context) {
	tenant, err := h.catalog.GetTenant(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *Handler) updateTenant(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		LogoURL string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.catalog.UpdateTenantContact(
		c.Request.Context(), currentTenantID(c), req.Name, req.Phone, req.Address, req.LogoURL); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- admin: whatsapp ---

func (h *Handler) getWhatsApp(c *gin.Context) {
	conn, err := h.whatsapp.GetConnection(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *Handler) whatsAppQR(c *gin.Context) {
	conn, err := h.whatsapp.GenerateQR(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *Handler) whatsAppConfirm(c *gin.Context) {
	conn, err := h.whatsapp.Confirm(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

func (h *Handler) whatsAppRestart(c *gin.Context) {
	conn, err := h.whatsapp.Restart(c.Request.Context(), currentTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

// --- admin: uploads ---

func (h *Handler) uploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	url, err := h.storage.Upload(c.DefaultPostForm("folder", "uploads"), src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *Handler) deleteImage(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing path parameter"})
		return
	}

	if err := h.storage.Remove(path); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
