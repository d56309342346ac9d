package upstream

import (
	"context"
	"fmt"
	"net/http"

	"florist/internal/models"
)

// CartItems fetches the authenticated user's cart lines.
func (c *Client) CartItems(ctx context.Context, token string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem adds a product line to the cart.
func (c *Client) AddCartItem(ctx context.Context, token string, req models.AddCartRequest) error {
	return c.DoJSON(ctx, token, http.MethodPost, "/api/cart", req, nil)
}

// DeleteCartItem removes a cart line.
func (c *Client) DeleteCartItem(ctx context.Context, token string, id uint) error {
	return c.DoJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/api/hapus/%d", id), nil, nil)
}
