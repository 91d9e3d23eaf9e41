package api

import (
	"context"
	"net/http"
)

// Register creates an account. The backend answers with a confirmation
// message; the caller logs in separately.
func (c *Client) Register(ctx context.Context, r Registration) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "auth/register/", nil, "", r, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a backend token.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var resp AuthResponse
	err := c.call(ctx, http.MethodPost, "auth/login/", nil, "", creds, &resp)
	return resp, err
}

// Logout invalidates token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.call(ctx, http.MethodPost, "auth/logout/", nil, token, nil, nil)
}

// CurrentUser returns the account that owns token.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.call(ctx, http.MethodGet, "users/profile/", nil, token, nil, &u)
	return u, err
}
