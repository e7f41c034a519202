package deliverylog

import "errors"

var (
	// ErrEntryNotFound is returned when an entry does not exist for a recipient.
	ErrEntryNotFound = errors.New("delivery log entry not found")
	// ErrMissingRecipientID is returned when an entry has no recipient.
	ErrMissingRecipientID = errors.New("recipient ID is required")
	// ErrStorageUnavailable wraps backend failures.
	ErrStorageUnavailable = errors.New("delivery log storage unavailable")
)
