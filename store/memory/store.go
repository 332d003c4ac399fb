// Package memory provides an in-memory TokenStore. It is intended for
// testing and development; credentials do not survive a process restart.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/gatehouse/store"
)

// Compile-time interface check.
var _ store.TokenStore = (*Store)(nil)

// Store is a thread-safe in-memory token store.
type Store struct {
	mu    sync.RWMutex
	creds store.Credentials
	saved bool
}

// New creates a new in-memory token store.
func New() *Store {
	return &Store{}
}

// Load returns the stored credentials, or zero credentials when nothing
// has been saved.
func (s *Store) Load(_ context.Context) (store.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return store.Credentials{}, nil
	}
	return s.creds, nil
}

// Save replaces the stored credentials.
func (s *Store) Save(_ context.Context, creds store.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.saved = true
	return nil
}

// Clear removes the stored credentials.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = store.Credentials{}
	s.saved = false
	return nil
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }
