package alert

import (
	"fmt"
	"strings"
)

// Type identifies the kind of emergency an alert describes. Each type maps
// to a dedicated notifier with its own rendering and preconditions.
type Type string

const (
	TypeWeather  Type = "weather"
	TypeSecurity Type = "security"
	TypeHealth   Type = "health"
	TypeInfra    Type = "infra"
)

// Valid reports whether t is one of the known alert types.
func (t Type) Valid() bool {
	switch t {
	case TypeWeather, TypeSecurity, TypeHealth, TypeInfra:
		return true
	}
	return false
}

// ParseType converts a string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Priority ranks alerts by urgency. Lower values are more urgent.
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityNormal   Priority = 3
)

// String returns the canonical uppercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityNormal:
		return "NORMAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityNormal
}

// ParsePriority accepts priority names (any case) and their numeric forms.
// An empty string resolves to PriorityNormal, mirroring submission defaults.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NORMAL", "3":
		return PriorityNormal, nil
	case "HIGH", "2":
		return PriorityHigh, nil
	case "CRITICAL", "1":
		return PriorityCritical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Default languages of the system. Alerts are authored in French; English is
// the second fully supported delivery language.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"

	// DefaultLanguage is used whenever no preference can be resolved.
	DefaultLanguage = LanguageFrench
)

// Alert is one emergency notification request before per-recipient
// rendering: a type tag plus the source-language content.
type Alert struct {
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Validate checks the fields every notifier requires.
func (a Alert) Validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, string(a.Type))
	}
	if strings.TrimSpace(a.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(a.Message) == "" {
		return ErrMissingMessage
	}
	if !a.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
