package campusalert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusalert/campusalert/pkg/alert"
	"github.com/campusalert/campusalert/pkg/channel"
	"github.com/campusalert/campusalert/pkg/deliverylog"
	"github.com/campusalert/campusalert/pkg/email"
	"github.com/campusalert/campusalert/pkg/metrics"
	"github.com/campusalert/campusalert/pkg/notifier"
	"github.com/campusalert/campusalert/pkg/prefs"
	"github.com/campusalert/campusalert/pkg/queue"
	"github.com/campusalert/campusalert/pkg/resilience"
	"github.com/campusalert/campusalert/pkg/translate"
)

// DeliveryStore persists delivery log entries and doubles as the in-app
// inbox sink. Both deliverylog.MemoryStorage and deliverylog.RedisStorage
// satisfy it.
type DeliveryStore interface {
	deliverylog.Storage
	Append(ctx context.Context, msg alert.Message) error
}

// Engine is the notification engine facade. It owns the task queue, the
// per-type dispatchers, and the resilience and metrics registries, and is
// safe for concurrent use.
type Engine struct {
	cfg Config
	log *slog.Logger

	queue       *queue.Manager
	resilience  *resilience.Registry
	channels    *channel.Registry
	metrics     *metrics.Aggregator
	delivery    DeliveryStore
	prefStore   prefs.Store
	confirmer   *notifier.ManualConfirmer
	dispatchers map[alert.Type]*notifier.Dispatcher
}

// Option customizes the engine's collaborators.
type Option func(*engineOptions)

type engineOptions struct {
	logger      *slog.Logger
	emailSender email.Sender
	smsSender   channel.SMSSender
	delivery    DeliveryStore
	prefStore   prefs.Store
	translator  notifier.Translator
	adapter     translate.CatalogAdapter
}

// WithLogger sets the engine logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithEmailSender replaces the development file sender with a real email
// transport.
func WithEmailSender(s email.Sender) Option {
	return func(o *engineOptions) { o.emailSender = s }
}

// WithSMSSender replaces the log-only SMS sender.
func WithSMSSender(s channel.SMSSender) Option {
	return func(o *engineOptions) { o.smsSender = s }
}

// WithDeliveryStore replaces the in-memory delivery log, e.g. with a redis
// backed one.
func WithDeliveryStore(s DeliveryStore) Option {
	return func(o *engineOptions) { o.delivery = s }
}

// WithPreferenceStore replaces the in-memory preference store.
func WithPreferenceStore(s prefs.Store) Option {
	return func(o *engineOptions) { o.prefStore = s }
}

// WithTranslator replaces the catalog translator entirely.
func WithTranslator(t notifier.Translator) Option {
	return func(o *engineOptions) { o.translator = t }
}

// WithCatalogAdapter sets the translation catalog source used to build the
// default translator. Ignored when WithTranslator is given.
func WithCatalogAdapter(a translate.CatalogAdapter) Option {
	return func(o *engineOptions) { o.adapter = a }
}

// taskPayload is the JSON body carried by queued dispatch tasks.
type taskPayload struct {
	Alert      alert.Alert       `json:"alert"`
	Recipients []alert.Recipient `json:"recipients"`
	Override   prefs.Override    `json:"override,omitzero"`
}

// New builds a fully wired engine from the config. The context is only used
// to load the translation catalog.
func New(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.normalized()

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.emailSender == nil {
		o.emailSender = email.NewDevSender(cfg.MailDir)
	}
	if o.smsSender == nil {
		o.smsSender = channel.NewSimulatedSMSSender(o.logger)
	}
	if o.delivery == nil {
		o.delivery = deliverylog.NewMemoryStorage()
	}
	if o.prefStore == nil {
		o.prefStore = prefs.NewMemoryStore()
	}
	if o.translator == nil {
		if o.adapter == nil {
			o.adapter = &translate.MapAdapter{}
		}
		tr, err := translate.New(ctx, o.adapter, translate.WithLogger(o.logger))
		if err != nil {
			return nil, fmt.Errorf("build translator: %w", err)
		}
		o.translator = tr
	}

	e := &Engine{
		cfg: cfg,
		log: o.logger,
		resilience: resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{
				Attempts: cfg.RetryAttempts,
				Delay:    cfg.RetryDelay,
				Backoff:  cfg.RetryBackoff,
			}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{
				Threshold: cfg.BreakerThreshold,
				Cooldown:  cfg.BreakerCooldown,
			}),
		),
		channels: channel.NewRegistry(
			channel.NewEmailChannel(o.emailSender),
			channel.NewSMSChannel(o.smsSender),
			channel.NewInAppChannel(o.delivery),
		),
		metrics:   metrics.NewAggregator(),
		delivery:  o.delivery,
		prefStore: o.prefStore,
		confirmer: notifier.NewManualConfirmer(),
	}

	deps := notifier.Dependencies{
		Prefs:      prefs.NewResolver(e.prefStore),
		Translator: o.translator,
		Channels:   e.channels,
		Resilience: e.resilience,
		Log:        e.delivery,
		Metrics:    e.metrics,
		Logger:     e.log,
	}
	hooks := []notifier.Hooks{
		notifier.NewWeather(notifier.WithWeatherLogger(e.log)),
		notifier.NewSecurity(
			notifier.WithSecurityConfirmer(e.confirmer),
			notifier.WithSecurityLogger(e.log),
		),
		notifier.NewHealth(notifier.WithHealthLogger(e.log)),
		notifier.NewInfra(notifier.WithInfraLogger(e.log)),
	}
	e.dispatchers = make(map[alert.Type]*notifier.Dispatcher, len(hooks))
	for _, h := range hooks {
		d, err := notifier.NewDispatcher(h, deps)
		if err != nil {
			return nil, fmt.Errorf("build %s dispatcher: %w", h.Name(), err)
		}
		e.dispatchers[alert.Type(h.Name())] = d
	}

	q, err := queue.New(e.process,
		queue.WithWorkers(cfg.Workers),
		queue.WithLogger(e.log),
	)
	if err != nil {
		return nil, fmt.Errorf("build queue: %w", err)
	}
	e.queue = q

	return e, nil
}

// Start launches the worker pool. Workers stop when ctx is cancelled or
// Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	return e.queue.Start(ctx)
}

// Stop drains in-flight tasks and stops the workers. Pending tasks stay
// pending.
func (e *Engine) Stop() error {
	return e.queue.Stop()
}

// Submit validates the request and enqueues a dispatch task. It returns the
// task id immediately; it never waits for delivery.
func (e *Engine) Submit(ctx context.Context, req Request) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	a, err := req.validate()
	if err != nil {
		return uuid.Nil, err
	}

	payload, err := json.Marshal(taskPayload{
		Alert:      a,
		Recipients: req.Recipients,
		Override:   req.override(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode payload: %w", err)
	}

	id, err := e.queue.Enqueue(string(a.Type), payload)
	if err != nil {
		return uuid.Nil, err
	}
	e.log.InfoContext(ctx, "alert submitted",
		"task_id", id,
		"type", a.Type,
		"priority", a.Priority.String(),
		"recipients", len(req.Recipients),
	)
	return id, nil
}

// process routes one queued task to the dispatcher for its alert type.
func (e *Engine) process(ctx context.Context, task queue.Task) (json.RawMessage, error) {
	var payload taskPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	d, ok := e.dispatchers[alert.Type(task.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, task.Type)
	}

	result, err := d.Dispatch(ctx, payload.Alert, payload.Recipients, payload.Override)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// GetTask returns a snapshot of a queued, running, or finished task.
func (e *Engine) GetTask(id uuid.UUID) (queue.Task, error) {
	return e.queue.GetTask(id)
}

// Stats returns the queue statistics.
func (e *Engine) Stats() queue.Stats {
	return e.queue.Stats()
}

// Metrics returns a snapshot of the per-notifier delivery metrics.
func (e *Engine) Metrics() metrics.Snapshot {
	return e.metrics.Snapshot()
}

// Collector returns a prometheus collector exposing the delivery metrics.
func (e *Engine) Collector() *metrics.Collector {
	return metrics.NewCollector(e.metrics)
}

// Configure replaces one resilience policy for a notifier at runtime. The
// policy must be a resilience.RetryPolicy or resilience.CircuitBreakerPolicy.
func (e *Engine) Configure(notifierName string, policy any) error {
	switch p := policy.(type) {
	case resilience.RetryPolicy:
		e.resilience.ConfigureRetry(notifierName, p)
	case resilience.CircuitBreakerPolicy:
		e.resilience.ConfigureCircuitBreaker(notifierName, p)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedPolicy, policy)
	}
	e.log.Info("policy configured", "notifier", notifierName, "policy", fmt.Sprintf("%T", policy))
	return nil
}

// ResetToDefaults restores a notifier's retry or breaker policy to the
// engine defaults.
func (e *Engine) ResetToDefaults(notifierName string, kind resilience.PolicyKind) error {
	return e.resilience.ResetToDefaults(notifierName, kind)
}

// BreakerStats returns the circuit breaker state for a notifier.
func (e *Engine) BreakerStats(notifierName string) resilience.CircuitStats {
	return e.resilience.BreakerStats(notifierName)
}

// ConfirmSecurityAlert records operator confirmation for a critical security
// alert, identified by its title. Unconfirmed critical security alerts fail
// their task with notifier.ErrConfirmationRequired.
func (e *Engine) ConfirmSecurityAlert(title string) {
	e.confirmer.Confirm(title)
}

// RevokeSecurityConfirmation withdraws a previously recorded confirmation.
func (e *Engine) RevokeSecurityConfirmation(title string) {
	e.confirmer.Revoke(title)
}

// SavePreferences stores notification preferences for a recipient.
func (e *Engine) SavePreferences(ctx context.Context, recipientID string, p prefs.Preferences) error {
	return e.prefStore.Save(ctx, recipientID, p)
}

// DeliveryLog exposes the delivery log for inbox queries.
func (e *Engine) DeliveryLog() deliverylog.Storage {
	return e.delivery
}

// ClearCompleted removes terminal tasks older than the given age and
// returns how many were dropped.
func (e *Engine) ClearCompleted(olderThan time.Duration) int {
	return e.queue.ClearCompleted(olderThan)
}
