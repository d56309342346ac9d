package services

import (
	"context"
	"fmt"
	"time"

	"florist/internal/models"
	"florist/internal/upstream"
)

// ReportService builds the employee financial report: all orders of one
// calendar month with revenue and shipping totals.
type ReportService struct {
	client *upstream.Client
}

// NewReportService creates a ReportService.
func NewReportService(client *upstream.Client) *ReportService {
	return &ReportService{client: client}
}

// Report is one month's order listing with totals.
type Report struct {
	Month         string            `json:"month"`
	TotalRevenue  float64           `json:"total_revenue"`
	TotalShipping float64           `json:"total_shipping"`
	OrderCount    int               `json:"order_count"`
	Orders        []models.Checkout `json:"orders"`
}

// Monthly fetches all orders and keeps the ones created in the given month
// (YYYY-MM; empty means the current month).
func (s *ReportService) Monthly(ctx context.Context, token, month string) (*Report, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("month must be YYYY-MM: %w", err)
	}

	checkouts, err := s.client.Checkouts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	report := &Report{Month: month, Orders: []models.Checkout{}}
	for _, co := range checkouts {
		if co.CreatedAt.Format("2006-01") != month {
			continue
		}
		report.Orders = append(report.Orders, co)
		report.TotalRevenue += co.TotalAmount
		report.TotalShipping += co.ShippingCost
	}
	report.OrderCount = len(report.Orders)
	return report, nil
}
