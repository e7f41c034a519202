package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusalert/campusalert/pkg/alert"
)

// Health dispatches health alerts. Dispatch is confirmation-gated; the
// default confirmer approves automatically so deployments opt in to a
// manual gate explicitly.
type Health struct {
	confirmer Confirmer
	log       *slog.Logger
}

// HealthOption customizes a Health notifier.
type HealthOption func(*Health)

// WithHealthConfirmer replaces the confirmation gate.
func WithHealthConfirmer(c Confirmer) HealthOption {
	return func(h *Health) {
		if c != nil {
			h.confirmer = c
		}
	}
}

// WithHealthLogger sets the logger.
func WithHealthLogger(l *slog.Logger) HealthOption {
	return func(h *Health) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHealth creates the health notifier.
func NewHealth(opts ...HealthOption) *Health {
	h := &Health{
		confirmer: AutoConfirm(),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Health) Name() string { return string(alert.TypeHealth) }

func (h *Health) Precondition(ctx context.Context, a alert.Alert, _ []alert.Recipient) error {
	if !h.confirmer.Confirmed(ctx, a) {
		return fmt.Errorf("%w: health alert %q", ErrConfirmationRequired, a.Title)
	}
	return nil
}

func (h *Health) Annotate(_ context.Context, a alert.Alert) (alert.Alert, error) {
	return a, nil
}

func (h *Health) Render(a alert.Alert, _ string, translate TranslateFunc) (string, string) {
	subject := translate(a.Title)
	body := translate(a.Message + " Merci de suivre les instructions sanitaires.")
	return subject, body
}
