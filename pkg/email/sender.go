package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sender represents an interface for sending emails.
type Sender interface {
	SendEmail(ctx context.Context, params SendParams) error
}

// SendParams represents the parameters for sending one email.
type SendParams struct {
	SendTo   string `json:"send_to"`       // Email address of the recipient
	Subject  string `json:"subject"`       // Subject of the email
	BodyHTML string `json:"body_html"`     // HTML body of the email
	Tag      string `json:"tag,omitempty"` // Optional category tag
}

// Validate checks that the parameters describe a sendable email.
func (p SendParams) Validate() error {
	if !emailRegex.MatchString(strings.TrimSpace(p.SendTo)) {
		return fmt.Errorf("%w: recipient address %q", ErrInvalidParams, p.SendTo)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// Config holds email transport configuration. Postmark tokens and SMTP
// settings are optional so development environments can run on DevSender;
// SenderEmail establishes the sender identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SMTPHost             string `env:"SMTP_HOST"`
	SMTPPort             int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername         string `env:"SMTP_USERNAME"`
	SMTPPassword         string `env:"SMTP_PASSWORD"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"alerts@campus.local"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
}
