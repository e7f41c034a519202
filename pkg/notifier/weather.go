package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusalert/campusalert/pkg/alert"
	"github.com/campusalert/campusalert/pkg/resilience"
)

// RiskZoneSource computes the campus zones a weather event puts at risk.
type RiskZoneSource func(ctx context.Context) ([]string, error)

// Weather dispatches weather alerts. Risk zones are computed under retry
// before delivery begins; the zone check hint is appended to every body.
type Weather struct {
	zones RiskZoneSource
	retry resilience.RetryPolicy
	log   *slog.Logger
}

// WeatherOption customizes a Weather notifier.
type WeatherOption func(*Weather)

// WithRiskZoneSource replaces the default risk-zone computation.
func WithRiskZoneSource(fn RiskZoneSource) WeatherOption {
	return func(w *Weather) { w.zones = fn }
}

// WithWeatherRetryPolicy sets the retry policy for risk-zone computation.
func WithWeatherRetryPolicy(p resilience.RetryPolicy) WeatherOption {
	return func(w *Weather) { w.retry = p }
}

// WithWeatherLogger sets the logger.
func WithWeatherLogger(l *slog.Logger) WeatherOption {
	return func(w *Weather) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWeather creates the weather notifier.
func NewWeather(opts ...WeatherOption) *Weather {
	w := &Weather{
		zones: func(context.Context) ([]string, error) {
			return []string{"Campus Principal"}, nil
		},
		retry: resilience.DefaultRetryPolicy(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Weather) Name() string { return string(alert.TypeWeather) }

func (w *Weather) Precondition(context.Context, alert.Alert, []alert.Recipient) error {
	return nil
}

// Annotate computes the risk zones under retry. The zones are logged rather
// than embedded: recipients get a generic zone-check hint in the body while
// operators see the concrete list.
func (w *Weather) Annotate(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	var zones []string
	err := resilience.Retry(ctx, w.retry, func(ctx context.Context) error {
		z, err := w.zones(ctx)
		if err != nil {
			return err
		}
		zones = z
		return nil
	})
	if err != nil {
		return a, fmt.Errorf("risk zone computation: %w", err)
	}
	w.log.InfoContext(ctx, "risk zones computed", "zones", zones)
	return a, nil
}

func (w *Weather) Render(a alert.Alert, _ string, translate TranslateFunc) (string, string) {
	subject := translate(a.Title)
	body := translate(a.Message + " (zones ciblées à vérifier)")
	return subject, body
}
