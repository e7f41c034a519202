package notifier

import (
	"context"
	"log/slog"

	"github.com/campusalert/campusalert/pkg/alert"
)

// Infra dispatches infrastructure alerts (outages, closures, works).
type Infra struct {
	log *slog.Logger
}

// InfraOption customizes an Infra notifier.
type InfraOption func(*Infra)

// WithInfraLogger sets the logger.
func WithInfraLogger(l *slog.Logger) InfraOption {
	return func(i *Infra) {
		if l != nil {
			i.log = l
		}
	}
}

// NewInfra creates the infrastructure notifier.
func NewInfra(opts ...InfraOption) *Infra {
	i := &Infra{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Infra) Name() string { return string(alert.TypeInfra) }

func (i *Infra) Precondition(context.Context, alert.Alert, []alert.Recipient) error {
	return nil
}

func (i *Infra) Annotate(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	i.log.InfoContext(ctx, "notifying impacted students", "title", a.Title)
	return a, nil
}

func (i *Infra) Render(a alert.Alert, _ string, translate TranslateFunc) (string, string) {
	subject := translate(a.Title)
	body := translate(a.Message + " Merci de planifier vos déplacements.")
	return subject, body
}
