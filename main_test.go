package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"florist/internal/config"
)

// newTestApp builds the app against a stub backend and an in-memory
// snapshot store.
func newTestApp(t *testing.T, upstream http.Handler) *fiber.App {
	t.Helper()

	backend := httptest.NewServer(upstream)
	t.Cleanup(backend.Close)

	cfg := config.Config{
		AppPort:          ":0",
		UpstreamURL:      backend.URL,
		SnapshotDriver:   "sqlite",
		SnapshotDSN:      "file::memory:?cache=shared",
		CSVDelimiter:     ';',
		ShippingCostHome: 50000,
	}

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	return app
}

// testToken mints a token carrying the given role. The gateway only decodes
// claims, it never verifies signatures, so any signing key works.
func testToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":    role,
		"user_id": 42,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestUnauthenticatedAccess(t *testing.T) {
	app := newTestApp(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublicCatalogProxies(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/produk" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id_produk": 1, "name": "Rose Bouquet", "harga": 150000, "stok": 5},
			},
		})
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/produk", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Rose Bouquet")
}

func TestRoleGating(t *testing.T) {
	app := newTestApp(t, http.NotFoundHandler())

	// A plain user cannot reach the admin screens.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/produk", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
