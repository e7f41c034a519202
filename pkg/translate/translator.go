package translate

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// RemoteProvider is an external translation backend used when the manual
// catalog has no entry. Implementations may fail; the Translator absorbs
// those failures.
type RemoteProvider interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Translator resolves translations with a local-lookup-then-remote-fallback
// contract. Safe for concurrent use; the catalog is read-only after load.
type Translator struct {
	mu        sync.RWMutex
	catalog   Catalog
	supported map[string]struct{}
	remote    RemoteProvider
	logger    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithRemoteProvider sets the remote fallback backend.
func WithRemoteProvider(p RemoteProvider) Option {
	return func(t *Translator) { t.remote = p }
}

// WithLogger sets the logger used to report swallowed remote failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithSupportedLanguages overrides the set of target languages the
// translator will attempt. Unsupported targets return the source text.
func WithSupportedLanguages(langs ...string) Option {
	return func(t *Translator) {
		t.supported = make(map[string]struct{}, len(langs))
		for _, l := range langs {
			t.supported[strings.ToLower(l)] = struct{}{}
		}
	}
}

// New creates a Translator and loads the catalog through the adapter.
func New(ctx context.Context, adapter CatalogAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		supported: map[string]struct{}{"fr": {}, "en": {}},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	catalog, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	t.catalog = catalog
	return t, nil
}

// Translate returns text localized into targetLang. It never fails: when no
// translation can be produced the source text comes back unchanged.
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	sourceLang = normalizeLang(sourceLang)
	targetLang = normalizeLang(targetLang)

	if targetLang == sourceLang {
		return text
	}
	if _, ok := t.supported[targetLang]; !ok {
		return text
	}

	if manual, ok := t.lookupCatalog(text, targetLang); ok {
		return manual
	}

	if t.remote != nil {
		translated, err := t.remote.Translate(ctx, text, sourceLang, targetLang)
		if err == nil && strings.TrimSpace(translated) != "" {
			return translated
		}
		if err != nil {
			t.logger.WarnContext(ctx, "remote translation failed, falling back to source text",
				slog.String("source_lang", sourceLang),
				slog.String("target_lang", targetLang),
				slog.String("error", err.Error()))
		}
	}

	return text
}

// lookupCatalog searches the manual catalog, first by exact key and then
// case-insensitively.
func (t *Translator) lookupCatalog(text, targetLang string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	key := strings.TrimSpace(text)
	if entry, ok := t.catalog[key]; ok {
		if translated, ok := entry[targetLang]; ok && translated != "" {
			return translated, true
		}
	}

	lowerKey := strings.ToLower(key)
	for original, entry := range t.catalog {
		if strings.ToLower(original) == lowerKey {
			if translated, ok := entry[targetLang]; ok && translated != "" {
				return translated, true
			}
		}
	}
	return "", false
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "fr"
	}
	return lang
}
