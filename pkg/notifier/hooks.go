package notifier

import (
	"context"
	"time"

	"github.com/campusalert/campusalert/pkg/alert"
)

// TranslateFunc translates source-language text into the effective language
// of the recipient being rendered for. It never fails; on any translation
// problem it returns the input unchanged.
type TranslateFunc func(text string) string

// Hooks is the type-specific part of dispatch. The Dispatcher owns the
// shared flow and calls these at fixed points.
type Hooks interface {
	// Name identifies the notifier. It keys the resilience policies and
	// metrics for this type.
	Name() string

	// Precondition runs before any delivery. A non-nil error aborts the
	// whole batch and must wrap ErrPreconditionFailed.
	Precondition(ctx context.Context, a alert.Alert, recipients []alert.Recipient) error

	// Annotate enriches the alert before rendering, e.g. computing risk
	// zones. An error aborts the batch.
	Annotate(ctx context.Context, a alert.Alert) (alert.Alert, error)

	// Render produces the channel-agnostic subject and body for one
	// recipient in the given language.
	Render(a alert.Alert, lang string, translate TranslateFunc) (subject, body string)
}

// RecipientOutcome records what happened for one recipient.
type RecipientOutcome struct {
	RecipientID string        `json:"recipient_id"`
	Channel     string        `json:"channel,omitempty"`
	Language    string        `json:"language,omitempty"`
	Delivered   bool          `json:"delivered"`
	Skipped     bool          `json:"skipped,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
}

// Result summarizes one dispatch batch. A batch that ran to completion is a
// success even when every recipient failed; failure detail lives in the
// per-recipient outcomes.
type Result struct {
	Notifier string             `json:"notifier"`
	Notified int                `json:"notified"`
	Outcomes []RecipientOutcome `json:"outcomes"`
}

// Confirmer gates confirmation-protected alerts.
type Confirmer interface {
	Confirmed(ctx context.Context, a alert.Alert) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, a alert.Alert) bool

func (f ConfirmerFunc) Confirmed(ctx context.Context, a alert.Alert) bool {
	return f(ctx, a)
}

// AutoConfirm approves every alert. Used where the deployment has no
// human-in-the-loop confirmation step.
func AutoConfirm() Confirmer {
	return ConfirmerFunc(func(context.Context, alert.Alert) bool { return true })
}
