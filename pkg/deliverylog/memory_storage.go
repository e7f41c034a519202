package deliverylog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campusalert/campusalert/pkg/alert"
)

// MemoryStorage is an in-memory Storage implementation. Suitable for tests
// and single-process deployments.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string][]Entry // recipientID -> entries
}

// NewMemoryStorage creates an empty in-memory delivery log.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]Entry)}
}

func (s *MemoryStorage) Log(ctx context.Context, entry Entry) error {
	if entry.RecipientID == "" {
		return ErrMissingRecipientID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.RecipientID] = append(s.entries[entry.RecipientID], entry)
	return nil
}

// Append satisfies the in-app channel's inbox writer. Messages arriving here
// were delivered by definition.
func (s *MemoryStorage) Append(ctx context.Context, msg alert.Message) error {
	return s.Log(ctx, NewEntry(msg, alert.Type(msg.Tag), OutcomeDelivered))
}

func (s *MemoryStorage) ListByRecipient(ctx context.Context, recipientID string, opts ListOptions) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.entries[recipientID]
	if !ok {
		return []Entry{}, nil
	}

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if opts.OnlyUnread && e.Read {
			continue
		}
		if opts.Outcome != "" && e.Outcome != opts.Outcome {
			continue
		}
		if opts.Since != nil && e.CreatedAt.Before(*opts.Since) {
			continue
		}
		filtered = append(filtered, e)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start := opts.Offset
	if start > len(filtered) {
		return []Entry{}, nil
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, recipientID string, entryIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.entries[recipientID]
	if !ok {
		return nil
	}

	idSet := make(map[string]bool, len(entryIDs))
	for _, id := range entryIDs {
		idSet[id] = true
	}
	for i := range entries {
		if idSet[entries[i].ID] {
			entries[i].markAsRead()
		}
	}
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.entries[recipientID]
	for i := range entries {
		entries[i].markAsRead()
	}
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries[recipientID] {
		if !e.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, recipientID string, entryIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.entries[recipientID]
	if !ok {
		return nil
	}

	idSet := make(map[string]bool, len(entryIDs))
	for _, id := range entryIDs {
		idSet[id] = true
	}

	kept := entries[:0]
	for _, e := range entries {
		if !idSet[e.ID] {
			kept = append(kept, e)
		}
	}
	s.entries[recipientID] = kept
	return nil
}
