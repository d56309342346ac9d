package upstream

import (
	"context"
	"fmt"
	"net/http"

	"florist/internal/models"
)

// Login exchanges credentials for a bearer token, role, and user id.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.DoJSON(ctx, "", http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.DoJSON(ctx, "", http.MethodPost, "/api/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the account behind the token.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile round-trips the profile form, password field included.
func (c *Client) UpdateProfile(ctx context.Context, token string, id uint, user models.User) error {
	return c.DoJSON(ctx, token, http.MethodPut, fmt.Sprintf("/api/edit/%d", id), user, nil)
}

// Users lists all accounts (admin screens filter by role client-side).
func (c *Client) Users(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/user", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Employees lists accounts with the karyawan role.
func (c *Client) Employees(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.DoJSON(ctx, token, http.MethodGet, "/api/karyawan", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
