package upstream

import (
	"context"
	"fmt"
	"net/http"

	"florist/internal/models"
)

// CreateCustomOrder posts a bespoke arrangement request with its optional
// reference image.
func (c *Client) CreateCustomOrder(ctx context.Context, token string, fields map[string]string, image *FilePart) (*models.CustomOrder, error) {
	var created models.CustomOrder
	if err := c.DoMultipart(ctx, token, http.MethodPost, "/api/custom-order", fields, image, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CustomOrderByID fetches one custom order.
func (c *Client) CustomOrderByID(ctx context.Context, token string, id uint) (*models.CustomOrder, error) {
	var order models.CustomOrder
	if err := c.DoJSON(ctx, token, http.MethodGet, fmt.Sprintf("/api/custom-order/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CustomOrders lists every custom order (employee queue).
func (c *Client) CustomOrders(ctx context.Context, token string) ([]models.CustomOrder, error) {
	var orders []models.CustomOrder
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/custom-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateCustomOrderStatus moves a custom order to a new status.
func (c *Client) UpdateCustomOrderStatus(ctx context.Context, token string, id uint, status models.Status) error {
	body := map[string]models.Status{"status": status}
	return c.DoJSON(ctx, token, http.MethodPut, fmt.Sprintf("/api/custom-order/%d", id), body, nil)
}

// DeleteCustomOrder removes a custom order.
func (c *Client) DeleteCustomOrder(ctx context.Context, token string, id uint) error {
	return c.DoJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/api/custom-order/%d", id), nil, nil)
}
