// Package auth provides a pluggable authentication capability with bearer
// sessions. Credentials are always verified against bcrypt hashes; neither
// backend stores a plaintext password.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// Identity is the authenticated user of a session.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Authenticator signs users in and resolves bearer tokens back to
// identities.
type Authenticator interface {
	// SignIn verifies the credentials and returns a session token.
	SignIn(ctx context.Context, email, password string) (string, Identity, error)
	// Session resolves a token to its identity, ErrNoSession otherwise.
	Session(ctx context.Context, token string) (Identity, error)
	// SignOut invalidates the token. Unknown tokens are a no-op.
	SignOut(ctx context.Context, token string) error
}

// sessions is the in-memory token table shared by both authenticator
// implementations. Tokens die with the process.
type sessions struct {
	mu     sync.RWMutex
	active map[string]Identity
}

func newSessions() *sessions {
	return &sessions{active: make(map[string]Identity)}
}

func (s *sessions) create(id Identity) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.active[token] = id
	s.mu.Unlock()
	return token
}

func (s *sessions) resolve(token string) (Identity, bool) {
	s.mu.RLock()
	id, ok := s.active[token]
	s.mu.RUnlock()
	return id, ok
}

func (s *sessions) drop(token string) {
	s.mu.Lock()
	delete(s.active, token)
	s.mu.Unlock()
}
