package upstream

import (
	"context"
	"fmt"
	"net/http"

	"florist/internal/models"
)

// CreateCheckout posts a single order line as multipart form data. The
// backend accepts exactly one line per request; fan-out over a multi-line
// cart is the checkout service's job.
func (c *Client) CreateCheckout(ctx context.Context, token string, fields map[string]string, proof *FilePart) (*models.Checkout, error) {
	var created models.Checkout
	if err := c.DoMultipart(ctx, token, http.MethodPost, "/api/checkout", fields, proof, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CheckoutByID fetches one order for the payment detail view.
func (c *Client) CheckoutByID(ctx context.Context, token string, id uint) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := c.DoJSON(ctx, token, http.MethodGet, fmt.Sprintf("/api/checkout/%d", id), nil, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// Checkouts lists every order (admin and report screens).
func (c *Client) Checkouts(ctx context.Context, token string) ([]models.Checkout, error) {
	var checkouts []models.Checkout
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/checkouts", nil, &checkouts); err != nil {
		return nil, err
	}
	return checkouts, nil
}

// UpdateCheckoutStatus moves an order to a new status.
func (c *Client) UpdateCheckoutStatus(ctx context.Context, token string, id uint, status models.Status) error {
	body := map[string]models.Status{"status": status}
	return c.DoJSON(ctx, token, http.MethodPut, fmt.Sprintf("/api/checkout/%d", id), body, nil)
}

// DeleteCheckout removes an order.
func (c *Client) DeleteCheckout(ctx context.Context, token string, id uint) error {
	return c.DoJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/api/checkout/%d", id), nil, nil)
}
