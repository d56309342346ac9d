package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"florist/internal/handlers"
	"florist/internal/middleware"
	"florist/internal/repositories"
	"florist/internal/services"
	"florist/internal/upstream"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp sets up a Fiber app for testing with all handlers wired against
// the given stub backend.
func setupApp(t *testing.T, backend http.Handler) *fiber.App {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client := upstream.NewClient(server.URL)

	checkoutService := services.NewCheckoutService(client, nil, 50000)
	listingService := services.NewListingService(repositories.NewMockSnapshotRepository(), ';')
	services.RegisterScreens(listingService, client)
	reportService := services.NewReportService(client)

	cartHandler := handlers.NewCartHandler(client, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(client, checkoutService)
	adminHandler := handlers.NewAdminHandler(listingService, reportService)

	app := fiber.New()
	api := app.Group("/api")

	protected := api.Group("", middleware.TokenRequired())
	cartHandler.RegisterRoutes(protected)
	checkoutHandler.RegisterRoutes(protected)
	checkoutHandler.RegisterStaffRoutes(protected)
	adminHandler.RegisterRoutes(protected)

	return app
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":    role,
		"user_id": 7,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// checkoutMultipart builds a submission form with the given items JSON and a
// complete set of shipping/payment fields.
func checkoutMultipart(t *testing.T, items string, overrides map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	fields := map[string]string{
		"receiver_name":   "Dewi Lestari",
		"phone":           "081234567890",
		"address":         "Jl. Melati No. 5",
		"delivery_date":   time.Now().Format("2006-01-02"),
		"delivery_time":   "09:00",
		"shipping_method": "Pickup at Store",
		"payment_method":  "Cash On Delivery",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	if items != "" {
		fields["items"] = items
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

// stubBackend serves the product and checkout endpoints the submission flow
// touches and counts order creations.
func stubBackend(created *int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/produk/5", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id_produk":5,"name":"Tulip Mix","harga":120000,"stok":8,"ukuran":"Spray,Full bloom"}}`))
	})
	mux.HandleFunc("/api/checkout", func(w http.ResponseWriter, r *http.Request) {
		*created++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(`{"data":{"id":%d}}`, *created)))
	})
	return mux
}

func TestCheckoutSubmit_EndToEnd(t *testing.T) {
	created := 0
	app := setupApp(t, stubBackend(&created))

	body, contentType := checkoutMultipart(t,
		`[{"product_id":5,"quantity":2,"ukuran":"Spray"},{"product_id":5,"quantity":1,"ukuran":"Full bloom"}]`,
		nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, created) // one backend order per line

	var payload struct {
		Data services.SubmissionResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, uint(1), payload.Data.FirstOrderID)
	assert.Equal(t, []uint{1, 2}, payload.Data.OrderIDs)
}

func TestCheckoutSubmit_TransferWithoutProof(t *testing.T) {
	created := 0
	app := setupApp(t, stubBackend(&created))

	body, contentType := checkoutMultipart(t,
		`[{"product_id":5,"quantity":1,"ukuran":"Spray"}]`,
		map[string]string{"payment_method": "Bank Transfer", "payer_name": "Budi Santoso"})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Blocked client-side: no order reaches the backend.
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, created)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "proof of transfer")
}

func TestCheckoutSubmit_UnavailableSize(t *testing.T) {
	created := 0
	app := setupApp(t, stubBackend(&created))

	body, contentType := checkoutMultipart(t,
		`[{"product_id":5,"quantity":1,"ukuran":"Bud"}]`, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, created)
}

func TestStatusUpdate_RejectsInvalidTransition(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/checkout/9", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			t.Error("backend must not see a rejected transition")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":9,"status":"pending"}}`))
	})
	app := setupApp(t, mux)

	body := bytes.NewBufferString(`{"status":"completed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/checkout/9", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Invalid status transition")
}

func TestStatusUpdate_AllowsValidTransition(t *testing.T) {
	updated := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/checkout/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			updated = true
			_, _ = w.Write([]byte(`{"message":"ok"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"id":9,"status":"pending"}}`))
	})
	app := setupApp(t, mux)

	body := bytes.NewBufferString(`{"status":"processing"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/checkout/9", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, updated)
}

func TestExpiredSessionSignalsRelogin(t *testing.T) {
	app := setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// One policy for every screen: drop the session and go back to login.
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"relogin":true`)
}

func TestAdminScreenFilterAndExport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/produk", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id_produk":1,"name":"Rose Bouquet","harga":150000,"stok":5,"ukuran":"Spray","kategori":"bouquet","warna":"red"},
			{"id_produk":2,"name":"Tulip Mix","harga":120000,"stok":8,"ukuran":"Spray,Full bloom","kategori":"bouquet","warna":"mixed"}
		]}`))
	})
	app := setupApp(t, mux)
	token := signToken(t, "admin")

	// First load fetches and stores the snapshot.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/produk", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Filter narrows over the snapshot, no re-fetch needed.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/produk?q=tulip", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Rows  []services.Row `json:"rows"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 2, payload.Total)
	require.Len(t, payload.Rows, 1)
	assert.Contains(t, payload.Rows[0], "Tulip Mix")

	// Export is semicolon-delimited CSV of the filtered snapshot.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/produk/export?q=tulip", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	respExport, err := app.Test(req)
	require.NoError(t, err)
	defer respExport.Body.Close()

	assert.Equal(t, fiber.StatusOK, respExport.StatusCode)
	assert.Contains(t, respExport.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, respExport.Header.Get("Content-Disposition"), `produk.csv`)

	csvBody, _ := io.ReadAll(respExport.Body)
	assert.Contains(t, string(csvBody), "Tulip Mix;")

	// A filter matching nothing is an error, not an empty file.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/produk/export?q=zzz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	respEmpty, err := app.Test(req)
	require.NoError(t, err)
	defer respEmpty.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, respEmpty.StatusCode)
}

func TestUnknownScreen(t *testing.T) {
	app := setupApp(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/nope", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
