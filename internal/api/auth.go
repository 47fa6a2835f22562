package api

import (
	"context"
	"net/http"

	"github.com/plaide-ai/intake/internal/auth"
	"github.com/plaide-ai/intake/internal/model"
)

// AuthClient handles login, registration and token refresh. The backend issues
// tokens; this client only stores them.
type AuthClient struct {
	transport *Transport
	tokens    *auth.TokenStore
}

// NewAuthClient creates an auth client backed by the given token store.
func NewAuthClient(t *Transport, tokens *auth.TokenStore) *AuthClient {
	return &AuthClient{transport: t, tokens: tokens}
}

// Login authenticates and stores the returned token.
func (c *AuthClient) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, validationErrorf("email and password are required")
	}

	var resp model.AuthResponse
	if err := c.transport.Do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.tokens.Set(resp.AccessToken)
	return &resp, nil
}

// Register creates an account and stores the returned token.
func (c *AuthClient) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, validationErrorf("email and password are required")
	}

	var resp model.AuthResponse
	if err := c.transport.Do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.tokens.Set(resp.AccessToken)
	return &resp, nil
}

// Refresh exchanges the stored token for a fresh one.
func (c *AuthClient) Refresh(ctx context.Context) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.transport.Do(ctx, http.MethodPost, "/api/auth/refresh", nil, &resp); err != nil {
		return nil, err
	}
	c.tokens.Set(resp.AccessToken)
	return &resp, nil
}

// Me fetches the authenticated profile.
func (c *AuthClient) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.transport.Do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout drops the stored token. Local only; the backend keeps no session.
func (c *AuthClient) Logout() {
	c.tokens.Clear()
}
