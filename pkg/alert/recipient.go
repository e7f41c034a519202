package alert

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	recipientIDRegex = regexp.MustCompile(`^(?i)[a-z0-9_-]{5,20}$`)
	emailRegex       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex       = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// preferredLanguages lists the ISO codes a recipient may declare as their
// preferred language. Delivery itself supports a narrower set; unsupported
// preferences fall back to the source text untranslated.
var preferredLanguages = map[string]struct{}{
	"fr": {}, "en": {}, "es": {}, "de": {}, "it": {},
}

// Recipient is one member of the population an alert targets. It is supplied
// by the caller at submission time and read-only to the dispatch core.
type Recipient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Phone is optional; without it the SMS channel addresses the
	// recipient by name only.
	Phone string `json:"phone,omitempty"`
	// Language is the declared profile language.
	Language string `json:"language,omitempty"`
	// PreferredLanguage overrides Language when set and valid.
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// NewRecipient validates and normalizes recipient fields. Email and id are
// mandatory, phone and languages optional.
func NewRecipient(id, name, email string) (Recipient, error) {
	r := Recipient{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Language: DefaultLanguage,
	}
	if err := r.Validate(); err != nil {
		return Recipient{}, err
	}
	return r, nil
}

// Validate checks all populated fields against their formats.
func (r Recipient) Validate() error {
	if !recipientIDRegex.MatchString(r.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidRecipientID, r.ID)
	}
	if r.Name == "" {
		return ErrMissingRecipientName
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, r.Email)
	}
	if r.Phone != "" {
		if !phoneRegex.MatchString(strings.ReplaceAll(r.Phone, " ", "")) {
			return fmt.Errorf("%w: %q", ErrInvalidPhone, r.Phone)
		}
	}
	if r.PreferredLanguage != "" {
		lang := strings.ToLower(strings.TrimSpace(r.PreferredLanguage))
		if _, ok := preferredLanguages[lang]; !ok {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, r.PreferredLanguage)
		}
	}
	return nil
}

// NormalizedPhone returns the phone number without spaces.
func (r Recipient) NormalizedPhone() string {
	return strings.ReplaceAll(strings.TrimSpace(r.Phone), " ", "")
}
