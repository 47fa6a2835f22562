// Package auth holds the bearer token the client attaches to backend calls.
// Token issuance and renewal belong to the backend; this package only stores
// and inspects tokens.
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenStore is a concurrency-safe TokenSource with explicit set/clear.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore creates a token store, optionally seeded with a token.
func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

// Token returns the current bearer token, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the stored token.
func (s *TokenStore) Clear() {
	s.Set("")
}

// Claims are the JWT claims the backend issues.
type Claims struct {
	jwt.RegisteredClaims
	CabinetID string `json:"cabinet_id,omitempty"`
}

// Expired reports whether the stored token carries an exp claim in the past.
// The signature is not verified; only the backend can do that. A missing or
// unparseable token reports false so the backend stays the authority.
func (s *TokenStore) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
