package deliverylog

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusalert/campusalert/pkg/alert"
)

// Outcome classifies how a delivery attempt ended.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Entry is one recorded delivery attempt. Delivered entries also serve as
// in-app inbox items for the recipient.
type Entry struct {
	ID          string         `json:"id"`
	RecipientID string         `json:"recipient_id"`
	Type        alert.Type     `json:"type"`
	Priority    alert.Priority `json:"priority"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Channel     string         `json:"channel"`
	Outcome     Outcome        `json:"outcome"`
	Error       string         `json:"error,omitempty"`
	Read        bool           `json:"read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewEntry builds an entry from a delivered message. The caller sets the
// outcome and error afterwards for failed attempts.
func NewEntry(msg alert.Message, alertType alert.Type, outcome Outcome) Entry {
	return Entry{
		ID:          uuid.NewString(),
		RecipientID: msg.Recipient.ID,
		Type:        alertType,
		Priority:    msg.Priority,
		Subject:     msg.Subject,
		Body:        msg.Body,
		Channel:     msg.Channel,
		Outcome:     outcome,
		CreatedAt:   time.Now(),
	}
}

// markAsRead sets the read flag with the current timestamp.
func (e *Entry) markAsRead() {
	if e.Read {
		return
	}
	e.Read = true
	now := time.Now()
	e.ReadAt = &now
}
