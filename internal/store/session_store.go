package store

import (
	"context"
	"sync"

	"quickchat/internal/domain"
)

// SessionTokenKey is the fixed key the session token lives under.
const SessionTokenKey = "userToken"

// SessionStore persists the single session token on a key-value backend.
//
// The last written token is also held in memory, so a token whose write
// failed still counts as the session for the rest of the process run.
type SessionStore struct {
	kv domain.KeyValueStore

	mu       sync.Mutex
	volatile string
}

// NewSessionStore returns a SessionStore on kv.
func NewSessionStore(kv domain.KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

// Write stores token, overwriting any previous one. A storage failure is
// returned as *domain.PersistenceError.
func (s *SessionStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volatile = token
	if err := s.kv.Set(ctx, SessionTokenKey, token); err != nil {
		return &domain.PersistenceError{Op: "write", Err: err}
	}
	return nil
}

// Read returns the current token; ok=false when there is none.
func (s *SessionStore) Read(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.volatile != "" {
		return s.volatile, true, nil
	}
	token, ok, err := s.kv.Get(ctx, SessionTokenKey)
	if err != nil {
		return "", false, &domain.PersistenceError{Op: "read", Err: err}
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear drops all persisted session state.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volatile = ""
	if err := s.kv.Clear(ctx); err != nil {
		return &domain.PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// Compile-time assertion that SessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionStore)(nil)
