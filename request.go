package campusalert

import (
	"fmt"

	"github.com/campusalert/campusalert/pkg/alert"
	"github.com/campusalert/campusalert/pkg/prefs"
)

// Request is one notification submission: the alert content plus the
// recipients to deliver it to.
type Request struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Priority   string            `json:"priority,omitempty"`
	Recipients []alert.Recipient `json:"recipients"`

	// Language and Channel override every stored and profile preference
	// for this one request. Both are optional.
	Language string `json:"language,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// override folds the request-level delivery settings into a preference
// override.
func (r Request) override() prefs.Override {
	return prefs.Override{Language: r.Language, Channel: r.Channel}
}

// validate converts the request into a domain alert, collecting every field
// problem instead of stopping at the first.
func (r Request) validate() (alert.Alert, error) {
	verr := NewValidationError()

	alertType, err := alert.ParseType(r.Type)
	if err != nil {
		verr.Add("type", fmt.Sprintf("unknown alert type %q", r.Type))
	}
	priority, err := alert.ParsePriority(r.Priority)
	if err != nil {
		verr.Add("priority", fmt.Sprintf("invalid priority %q", r.Priority))
	}
	if r.Title == "" {
		verr.Add("title", "title is required")
	}
	if r.Message == "" {
		verr.Add("message", "message is required")
	}
	if len(r.Recipients) == 0 {
		verr.Add("recipients", "at least one recipient is required")
	}
	for i, recipient := range r.Recipients {
		if err := recipient.Validate(); err != nil {
			verr.Add(fmt.Sprintf("recipients[%d]", i), err.Error())
		}
	}

	if !verr.IsEmpty() {
		return alert.Alert{}, verr
	}

	return alert.Alert{
		Type:     alertType,
		Title:    r.Title,
		Message:  r.Message,
		Priority: priority,
	}, nil
}
