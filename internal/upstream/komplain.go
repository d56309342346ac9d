package upstream

import (
	"context"
	"fmt"
	"net/http"

	"florist/internal/models"
)

// CreateKomplain files a complaint for the authenticated user.
func (c *Client) CreateKomplain(ctx context.Context, token string, req models.KomplainRequest) error {
	return c.DoJSON(ctx, token, http.MethodPost, "/api/komplain", req, nil)
}

// Komplains lists every complaint (admin screen).
func (c *Client) Komplains(ctx context.Context, token string) ([]models.Komplain, error) {
	var komplains []models.Komplain
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/komplain", nil, &komplains); err != nil {
		return nil, err
	}
	return komplains, nil
}

// Absens lists the authenticated employee's attendance records.
func (c *Client) Absens(ctx context.Context, token string) ([]models.Absen, error) {
	var absens []models.Absen
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/absen", nil, &absens); err != nil {
		return nil, err
	}
	return absens, nil
}

// CheckIn clocks the employee in for the day.
func (c *Client) CheckIn(ctx context.Context, token string, req models.CheckInRequest) error {
	return c.DoJSON(ctx, token, http.MethodPost, "/api/checkin", req, nil)
}

// CheckOut clocks the employee out on an existing attendance record.
func (c *Client) CheckOut(ctx context.Context, token string, id uint, req models.CheckOutRequest) error {
	return c.DoJSON(ctx, token, http.MethodPatch, fmt.Sprintf("/api/absen/%d", id), req, nil)
}
