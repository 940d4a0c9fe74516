package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
)

const profileKey = "profile"

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

// authMiddleware resolves the bearer token to a staff profile and requires a
// tenant binding; every admin query downstream is scoped by that tenant.
func authMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		profile, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		if profile.TenantID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Profile is not bound to a tenant",
			})
			return
		}

		c.Set(profileKey, profile)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// currentProfile returns the authenticated profile set by authMiddleware
func currentProfile(c *gin.Context) *models.Profile {
	return c.MustGet(profileKey).(*models.Profile)
}

// currentTenantID returns the session's tenant id
func currentTenantID(c *gin.Context) string {
	return *currentProfile(c).TenantID
}

// cartSession extracts the storefront session id carried by the client.
// Carts and checkouts are keyed by it, partitioned per tenant slug.
func cartSession(c *gin.Context) string {
	if id := c.GetHeader("X-Session-Id"); id != "" {
		return id
	}
	if id, err := c.Cookie("session_id"); err == nil {
		return id
	}
	return ""
}

// requireCartSession rejects cart and checkout requests without a session id,
// so no operation ever touches a key with an empty session segment.
func requireCartSession(c *gin.Context) (string, bool) {
	session := cartSession(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session id"})
		return "", false
	}
	return session, true
}
