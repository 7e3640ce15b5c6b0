// README: Session token manager for grouping suggest/retrieve calls into one billable session.
package search

import (
	"sync"

	"github.com/google/uuid"
)

// TokenManager issues the opaque session token that scopes a bounded
// sequence of suggest calls plus the retrieve that resolves one of them.
// The token is replaced wholesale on Renew, never mutated in place.
type TokenManager struct {
	mu    sync.Mutex
	token string
}

func NewTokenManager() *TokenManager {
	return &TokenManager{token: uuid.NewString()}
}

// Current returns the active session token.
func (m *TokenManager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Renew replaces the token with a fresh UUID and returns it. Call after a
// successful retrieve, or when the user starts an unrelated search, so the
// upstream provider does not bill unrelated interactions as one session.
func (m *TokenManager) Renew() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = uuid.NewString()
	return m.token
}
