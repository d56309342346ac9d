package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"florist/internal/models"
)

// Products lists the catalogue, optionally restricted to one category.
func (c *Client) Products(ctx context.Context, token, kategori string) ([]models.Product, error) {
	path := "/api/produk"
	if kategori != "" {
		path += "?kategori=" + url.QueryEscape(kategori)
	}
	var products []models.Product
	if err := c.DoJSON(ctx, token, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID fetches a single product.
func (c *Client) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := c.DoJSON(ctx, "", http.MethodGet, fmt.Sprintf("/api/produk/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Search runs the backend's keyword search over the catalogue.
func (c *Client) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	path := "/api/search?keyword=" + url.QueryEscape(keyword)
	if err := c.DoJSON(ctx, "", http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a catalogue product; the image travels as a multipart
// file part alongside the form fields.
func (c *Client) CreateProduct(ctx context.Context, token string, fields map[string]string, image *FilePart) (*models.Product, error) {
	var product models.Product
	if err := c.DoMultipart(ctx, token, http.MethodPost, "/api/produk", fields, image, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a catalogue product.
func (c *Client) UpdateProduct(ctx context.Context, token string, id uint, fields map[string]string, image *FilePart) error {
	return c.DoMultipart(ctx, token, http.MethodPut, fmt.Sprintf("/api/produk/%d", id), fields, image, nil)
}

// DeleteProduct removes a catalogue product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id uint) error {
	return c.DoJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/api/produk/%d", id), nil, nil)
}
