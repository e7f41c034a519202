package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusalert/campusalert/pkg/alert"
	"github.com/campusalert/campusalert/pkg/channel"
	"github.com/campusalert/campusalert/pkg/deliverylog"
	"github.com/campusalert/campusalert/pkg/metrics"
	"github.com/campusalert/campusalert/pkg/prefs"
	"github.com/campusalert/campusalert/pkg/resilience"
)

// Translator converts source-language text into a target language. It never
// returns an error; failures fall back to the source text.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) string
}

// Dependencies are the collaborators every dispatcher shares. Channels is
// required; the rest default to inert implementations when nil.
type Dependencies struct {
	Prefs      *prefs.Resolver
	Translator Translator
	Channels   *channel.Registry
	Resilience *resilience.Registry
	Log        deliverylog.Storage
	Metrics    *metrics.Aggregator
	Logger     *slog.Logger
}

// Dispatcher drives the shared dispatch flow for one alert type.
type Dispatcher struct {
	hooks Hooks
	deps  Dependencies
	log   *slog.Logger
}

// NewDispatcher creates a dispatcher for the given hooks.
func NewDispatcher(hooks Hooks, deps Dependencies) (*Dispatcher, error) {
	if hooks == nil {
		return nil, ErrNilHooks
	}
	if deps.Channels == nil {
		return nil, fmt.Errorf("%w: channel registry", ErrNilDependency)
	}
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewResolver(nil)
	}
	if deps.Resilience == nil {
		deps.Resilience = resilience.NewRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		hooks: hooks,
		deps:  deps,
		log:   deps.Logger.With("notifier", hooks.Name()),
	}, nil
}

// Name returns the notifier name this dispatcher serves.
func (d *Dispatcher) Name() string { return d.hooks.Name() }

// Dispatch delivers the alert to every recipient. The override carries
// request-level language/channel choices that outrank stored preferences.
// It returns an error only for batch-level failures (validation,
// precondition, annotation); recipient failures are absorbed into the
// Result.
func (d *Dispatcher) Dispatch(ctx context.Context, a alert.Alert, recipients []alert.Recipient, override prefs.Override) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := d.hooks.Precondition(ctx, a, recipients); err != nil {
		d.log.WarnContext(ctx, "precondition rejected batch", "error", err)
		return nil, err
	}

	annotated, err := d.hooks.Annotate(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	result := &Result{
		Notifier: d.hooks.Name(),
		Outcomes: make([]RecipientOutcome, 0, len(recipients)),
	}
	for _, recipient := range recipients {
		outcome := d.dispatchOne(ctx, annotated, recipient, override)
		if outcome.Delivered {
			result.Notified++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	d.log.InfoContext(ctx, "batch dispatched",
		"recipients", len(recipients),
		"notified", result.Notified,
	)
	return result, nil
}

// dispatchOne handles a single recipient. It never returns an error; every
// failure is captured in the outcome so the batch always runs to completion.
func (d *Dispatcher) dispatchOne(ctx context.Context, a alert.Alert, recipient alert.Recipient, override prefs.Override) RecipientOutcome {
	outcome := RecipientOutcome{RecipientID: recipient.ID}

	res, err := d.deps.Prefs.Resolve(ctx, recipient, override)
	if err != nil {
		outcome.Error = fmt.Sprintf("resolve preferences: %v", err)
		return outcome
	}
	outcome.Language = res.Language
	outcome.Channel = res.Channel

	if !res.Active {
		outcome.Skipped = true
		d.log.DebugContext(ctx, "recipient opted out", "recipient", recipient.ID)
		return outcome
	}

	translate := d.translator(ctx, res.Language)
	subject, body := d.hooks.Render(a, res.Language, translate)

	msg := alert.Message{
		Subject:   subject,
		Body:      body,
		Priority:  a.Priority,
		Recipient: recipient,
		Channel:   res.Channel,
		Tag:       d.hooks.Name(),
	}

	deliveredVia := res.Channel
	start := time.Now()
	deliverErr := d.deps.Resilience.Execute(ctx, d.hooks.Name(), func(ctx context.Context) error {
		via, err := d.deps.Channels.Deliver(ctx, msg)
		if via != "" {
			deliveredVia = via
		}
		return err
	})
	outcome.Duration = time.Since(start)
	outcome.Delivered = deliverErr == nil
	outcome.Channel = deliveredVia
	msg.Channel = deliveredVia
	if deliverErr != nil {
		outcome.Error = deliverErr.Error()
		d.log.WarnContext(ctx, "delivery failed",
			"recipient", recipient.ID,
			"channel", deliveredVia,
			"error", deliverErr,
		)
	}

	if d.deps.Metrics != nil {
		d.deps.Metrics.Record(d.hooks.Name(), deliverErr, outcome.Duration)
	}
	// A successful in-app delivery already wrote its inbox entry; logging
	// it again would duplicate the recipient's history.
	if deliveredVia != alert.ChannelInApp || deliverErr != nil {
		d.logDelivery(ctx, msg, a.Type, deliverErr)
	}

	return outcome
}

// translator binds the translate call to the recipient's effective language.
// Source-language recipients skip translation entirely.
func (d *Dispatcher) translator(ctx context.Context, lang string) TranslateFunc {
	if d.deps.Translator == nil || lang == alert.DefaultLanguage {
		return func(text string) string { return text }
	}
	return func(text string) string {
		return d.deps.Translator.Translate(ctx, text, alert.DefaultLanguage, lang)
	}
}

func (d *Dispatcher) logDelivery(ctx context.Context, msg alert.Message, alertType alert.Type, deliverErr error) {
	if d.deps.Log == nil {
		return
	}

	entry := deliverylog.NewEntry(msg, alertType, deliverylog.OutcomeDelivered)
	if deliverErr != nil {
		entry.Outcome = deliverylog.OutcomeFailed
		entry.Error = deliverErr.Error()
	}
	if err := d.deps.Log.Log(ctx, entry); err != nil {
		d.log.WarnContext(ctx, "delivery log write failed", "error", err)
	}
}
