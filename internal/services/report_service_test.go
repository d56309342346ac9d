package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"florist/internal/services"
	"florist/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Monthly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/checkouts" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": 1, "total_amount": 150000, "shipping_cost": 50000, "createdAt": "2026-08-05T10:00:00Z"},
				{"id": 2, "total_amount": 75000, "shipping_cost": 0, "createdAt": "2026-08-20T15:30:00Z"},
				{"id": 3, "total_amount": 300000, "shipping_cost": 50000, "createdAt": "2026-07-28T09:00:00Z"},
			},
		})
	}))
	defer server.Close()

	service := services.NewReportService(upstream.NewClient(server.URL))

	report, err := service.Monthly(context.Background(), "token", "2026-08")
	require.NoError(t, err)

	// Only the August orders count towards the totals.
	assert.Equal(t, "2026-08", report.Month)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, float64(225000), report.TotalRevenue)
	assert.Equal(t, float64(50000), report.TotalShipping)
	require.Len(t, report.Orders, 2)
	assert.Equal(t, uint(1), report.Orders[0].ID)
}

func TestReportService_Monthly_BadMonth(t *testing.T) {
	service := services.NewReportService(nil)

	_, err := service.Monthly(context.Background(), "token", "08-2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}
