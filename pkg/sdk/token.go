package sdk

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a token written by Login stays valid on the client.
const SessionTTL = 7 * 24 * time.Hour

// Token is the opaque session token issued by the login endpoint.
type Token struct {
	Value      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	EmployeeID string    `json:"employee_id,omitempty"`
}

// NewToken wraps a token value issued at now with the standard session lifetime.
// A JWT carrying an exp claim keeps the server's expiry instead.
func NewToken(value string, now time.Time) *Token {
	tok := &Token{
		Value:     value,
		ExpiresAt: now.Add(SessionTTL),
	}
	if claims, err := ParseTokenClaims(value); err == nil && claims.ExpiresAt != nil {
		tok.ExpiresAt = claims.ExpiresAt.Time
	}
	return tok
}

// ParseTokenClaims decodes the registered claims of a JWT session token
// without verifying its signature. The server is the only party that can
// verify it; the client reads exp and sub for display and local expiry.
func ParseTokenClaims(value string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return claims, nil
}

func (t *Token) IsExpired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// TokenStore persists the session token between calls. LoadToken must return
// ErrNotLoggedIn when no token is stored or the stored token has expired.
// DeleteToken must be idempotent.
type TokenStore interface {
	LoadToken() (*Token, error)
	SaveToken(token *Token) error
	DeleteToken() error
}

// MemoryStore is a TokenStore that keeps the token in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token *Token
}

var _ TokenStore = (*MemoryStore)(nil)

// NewMemoryStore returns a MemoryStore, optionally seeded with a token.
func NewMemoryStore(token *Token) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) LoadToken() (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil || s.token.Value == "" {
		return nil, ErrNotLoggedIn
	}
	if s.token.IsExpired() {
		s.token = nil
		return nil, ErrNotLoggedIn
	}
	tok := *s.token
	return &tok, nil
}

func (s *MemoryStore) SaveToken(token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := *token
	s.token = &tok
	return nil
}

func (s *MemoryStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}
