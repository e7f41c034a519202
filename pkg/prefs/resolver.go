package prefs

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/campusalert/campusalert/pkg/alert"
)

// DefaultChannel is used when no channel preference can be resolved.
const DefaultChannel = "email"

// Override carries explicit per-request settings that outrank every stored
// or profile preference.
type Override struct {
	Language string `json:"language,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// IsZero reports whether the override carries no settings.
func (o Override) IsZero() bool {
	return o.Language == "" && o.Channel == ""
}

// Resolution is the effective delivery decision for one recipient.
type Resolution struct {
	Language string
	Channel  string
	Active   bool
}

// Resolver computes the effective language and channel for a recipient.
type Resolver struct {
	store Store
}

// NewResolver creates a Resolver backed by the given store. A nil store is
// allowed and behaves as an empty one.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve walks the priority chain: override > stored preference > recipient
// profile > system default. An inactive stored preference short-circuits
// with Active=false so the caller can skip delivery.
func (r *Resolver) Resolve(ctx context.Context, recipient alert.Recipient, override Override) (Resolution, error) {
	res := Resolution{
		Language: alert.DefaultLanguage,
		Channel:  DefaultChannel,
		Active:   true,
	}

	var stored Preferences
	var hasStored bool
	if r.store != nil {
		p, err := r.store.Get(ctx, recipient.ID)
		switch {
		case err == nil:
			stored, hasStored = p, true
		case errors.Is(err, ErrNotFound):
			// No stored preference is the common case.
		default:
			return Resolution{}, err
		}
	}

	if hasStored && !stored.Active {
		res.Active = false
		return res, nil
	}

	// Language: override > stored > profile preferred > profile declared.
	switch {
	case override.Language != "":
		res.Language = NormalizeLanguage(override.Language)
	case hasStored && stored.Language != "":
		res.Language = NormalizeLanguage(stored.Language)
	case recipient.PreferredLanguage != "":
		res.Language = NormalizeLanguage(recipient.PreferredLanguage)
	case recipient.Language != "":
		res.Language = NormalizeLanguage(recipient.Language)
	}

	// Channel: override > stored > default.
	switch {
	case override.Channel != "":
		res.Channel = strings.ToLower(strings.TrimSpace(override.Channel))
	case hasStored && stored.Channel != "":
		res.Channel = strings.ToLower(strings.TrimSpace(stored.Channel))
	}

	return res, nil
}

// NormalizeLanguage reduces a language tag to its lowercase base code, so
// "en-US" and "EN" both resolve to "en". Unparsable tags fall back to the
// system default.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return alert.DefaultLanguage
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return alert.DefaultLanguage
	}
	base, conf := tag.Base()
	if conf == language.No {
		return alert.DefaultLanguage
	}
	return base.String()
}
