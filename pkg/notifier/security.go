package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusalert/campusalert/pkg/alert"
)

// Security dispatches security alerts. Critical alerts take the emergency
// path, which requires an operator confirmation before any delivery; an
// unconfirmed critical batch is rejected outright.
type Security struct {
	confirmer Confirmer
	log       *slog.Logger
}

// SecurityOption customizes a Security notifier.
type SecurityOption func(*Security)

// WithSecurityConfirmer replaces the confirmation gate. The default is a
// ManualConfirmer with nothing confirmed.
func WithSecurityConfirmer(c Confirmer) SecurityOption {
	return func(s *Security) {
		if c != nil {
			s.confirmer = c
		}
	}
}

// WithSecurityLogger sets the logger.
func WithSecurityLogger(l *slog.Logger) SecurityOption {
	return func(s *Security) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSecurity creates the security notifier.
func NewSecurity(opts ...SecurityOption) *Security {
	s := &Security{
		confirmer: NewManualConfirmer(),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Security) Name() string { return string(alert.TypeSecurity) }

// Precondition requires confirmation for critical alerts before any
// delivery begins.
func (s *Security) Precondition(ctx context.Context, a alert.Alert, _ []alert.Recipient) error {
	if a.Priority != alert.PriorityCritical {
		return nil
	}
	if !s.confirmer.Confirmed(ctx, a) {
		return fmt.Errorf("%w: critical security alert %q", ErrConfirmationRequired, a.Title)
	}
	return nil
}

// Annotate logs the emergency-exit path for confirmed critical alerts.
func (s *Security) Annotate(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	if a.Priority == alert.PriorityCritical {
		s.log.WarnContext(ctx, "emergency exit triggered", "title", a.Title)
	}
	return a, nil
}

func (s *Security) Render(a alert.Alert, _ string, translate TranslateFunc) (string, string) {
	subject := translate(a.Title)
	body := translate(fmt.Sprintf("%s (Priorité: %s)", a.Message, a.Priority))
	return subject, body
}
