package prefs

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no preferences are stored for a recipient.
var ErrNotFound = errors.New("preferences not found")

// Preferences is a per-recipient override of delivery settings.
type Preferences struct {
	// Language is an optional ISO language code; empty means "no override".
	Language string `json:"language,omitempty"`
	// Channel is the preferred delivery channel name; empty means "no
	// override".
	Channel string `json:"channel,omitempty"`
	// Active gates delivery entirely: inactive recipients are skipped.
	Active bool `json:"active"`
}

// Store persists per-recipient preferences.
type Store interface {
	// Get returns the preferences for a recipient, or ErrNotFound.
	Get(ctx context.Context, recipientID string) (Preferences, error)

	// Save stores the preferences for a recipient, replacing any
	// previous value.
	Save(ctx context.Context, recipientID string, p Preferences) error
}

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]Preferences
}

// NewMemoryStore creates an empty in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]Preferences)}
}

// Get implements the Store interface.
func (s *MemoryStore) Get(_ context.Context, recipientID string) (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[recipientID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return p, nil
}

// Save implements the Store interface.
func (s *MemoryStore) Save(_ context.Context, recipientID string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[recipientID] = p
	return nil
}
