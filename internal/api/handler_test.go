package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/service"
	"storefront-service/internal/storage"
	"storefront-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := storage.New(t.TempDir(), "http://localhost:8080/uploads", 1024)
	require.NoError(t, err)

	// Backend-free handler: these routes must reject before touching a service
	h := NewHandler(nil, nil, nil, nil, nil, nil, nil, nil, st)
	router := gin.New()
	h.SetupRoutes(router)
	return router
}

func TestCartRoutesRequireSession(t *testing.T) {
	router := newTestRouter(t)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/store/warung/cart"},
		{http.MethodPost, "/api/v1/store/warung/cart/items"},
		{http.MethodPut, "/api/v1/store/warung/cart/items/p1"},
		{http.MethodDelete, "/api/v1/store/warung/cart/items/p1"},
		{http.MethodDelete, "/api/v1/store/warung/cart"},
		{http.MethodPost, "/api/v1/store/warung/checkout"},
	}

	for _, tc := range requests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "session")
		})
	}
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &service.ValidationError{Field: "name"}, http.StatusBadRequest},
		{"empty cart", service.ErrEmptyCart, http.StatusConflict},
		{"invalid transition", service.ErrInvalidTransition, http.StatusBadRequest},
		{"status conflict", store.ErrStatusConflict, http.StatusConflict},
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"email taken", store.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"too large", storage.ErrTooLarge, http.StatusBadRequest},
		{"not image", storage.ErrNotImage, http.StatusBadRequest},
		{"backend failure stays generic", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	gin.SetMode(gin.TestMode)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
