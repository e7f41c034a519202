package deliverylog

import (
	"context"
	"time"
)

// Storage persists delivery entries and serves the inbox operations.
type Storage interface {
	// Log stores a new entry.
	Log(ctx context.Context, entry Entry) error

	// ListByRecipient returns a recipient's entries, newest first.
	ListByRecipient(ctx context.Context, recipientID string, opts ListOptions) ([]Entry, error)

	// MarkRead marks the given entries as read. Unknown IDs are ignored.
	MarkRead(ctx context.Context, recipientID string, entryIDs ...string) error

	// MarkAllRead marks every entry of the recipient as read.
	MarkAllRead(ctx context.Context, recipientID string) error

	// CountUnread returns the recipient's unread entry count.
	CountUnread(ctx context.Context, recipientID string) (int, error)

	// Delete removes the given entries. Unknown IDs are ignored.
	Delete(ctx context.Context, recipientID string, entryIDs ...string) error
}

// ListOptions filters and paginates ListByRecipient results.
type ListOptions struct {
	Limit      int        // Maximum entries to return (0 = no limit)
	Offset     int        // Entries to skip for pagination
	OnlyUnread bool       // Only unread entries
	Outcome    Outcome    // Only entries with this outcome ("" = all)
	Since      *time.Time // Only entries created after this time
}
