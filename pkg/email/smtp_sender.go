package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

type smtpSender struct {
	config Config
}

// NewSMTPSender creates an SMTP-backed email sender for deployments that
// run their own mail relay instead of a transactional provider.
func NewSMTPSender(cfg Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return &smtpSender{config: cfg}, nil
}

// SendEmail implements Sender over SMTP using go-mail.
func (s *smtpSender) SendEmail(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(s.config.SenderEmail); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if err := m.To(params.SendTo); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	m.Subject(params.Subject)
	m.SetBodyString(mail.TypeTextHTML, params.BodyHTML)

	opts := []mail.Option{
		mail.WithPort(s.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.config.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.config.SMTPUsername),
			mail.WithPassword(s.config.SMTPPassword),
		)
	}

	client, err := mail.NewClient(s.config.SMTPHost, opts...)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return client.DialAndSendWithContext(ctx, m)
}
