package notifier

import (
	"context"
	"sync"

	"github.com/campusalert/campusalert/pkg/alert"
)

// ManualConfirmer tracks explicit confirmations keyed by alert title. An
// operator confirms a pending alert out of band before it may be dispatched.
type ManualConfirmer struct {
	mu      sync.RWMutex
	granted map[string]bool
}

// NewManualConfirmer creates a confirmer with no confirmations granted.
func NewManualConfirmer() *ManualConfirmer {
	return &ManualConfirmer{granted: make(map[string]bool)}
}

// Confirm approves dispatch of alerts carrying the given title.
func (m *ManualConfirmer) Confirm(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.granted[title] = true
}

// Revoke withdraws a previously granted confirmation.
func (m *ManualConfirmer) Revoke(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.granted, title)
}

func (m *ManualConfirmer) Confirmed(_ context.Context, a alert.Alert) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.granted[a.Title]
}
