package channel

import (
	"context"
	"fmt"
	"html"

	"github.com/campusalert/campusalert/pkg/alert"
	"github.com/campusalert/campusalert/pkg/email"
)

// Channel delivers a rendered message to its recipient over one transport.
type Channel interface {
	// Name returns the channel identifier used in recipient preferences.
	Name() string
	// Deliver sends the message. Implementations must wrap transport
	// failures in ErrDeliveryFailed so callers can classify them.
	Deliver(ctx context.Context, msg alert.Message) error
}

// EmailChannel delivers messages as HTML emails through a Sender.
type EmailChannel struct {
	sender email.Sender
}

// NewEmailChannel creates the email delivery channel.
func NewEmailChannel(sender email.Sender) *EmailChannel {
	return &EmailChannel{sender: sender}
}

func (c *EmailChannel) Name() string { return alert.ChannelEmail }

func (c *EmailChannel) Deliver(ctx context.Context, msg alert.Message) error {
	if msg.Recipient.Email == "" {
		return fmt.Errorf("%w: recipient %s has no email", ErrMissingAddress, msg.Recipient.ID)
	}
	err := c.sender.SendEmail(ctx, email.SendParams{
		SendTo:   msg.Recipient.Email,
		Subject:  msg.Subject,
		BodyHTML: renderHTML(msg),
		Tag:      msg.Tag,
	})
	if err != nil {
		return fmt.Errorf("%w: email to %s: %v", ErrDeliveryFailed, msg.Recipient.ID, err)
	}
	return nil
}

// renderHTML wraps the plain-text body in a minimal HTML shell. Templates
// render channel-agnostic text; only the email transport needs markup.
func renderHTML(msg alert.Message) string {
	return fmt.Sprintf(
		"<html><body><h2>%s</h2><p>%s</p></body></html>",
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Body),
	)
}

// SMSSender abstracts the SMS gateway so deployments can plug in a real
// provider. SimulatedSMSSender is the default.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, text string) error
}

// SMSChannel delivers messages as text messages through an SMSSender.
type SMSChannel struct {
	sender SMSSender
}

// NewSMSChannel creates the SMS delivery channel.
func NewSMSChannel(sender SMSSender) *SMSChannel {
	return &SMSChannel{sender: sender}
}

func (c *SMSChannel) Name() string { return alert.ChannelSMS }

func (c *SMSChannel) Deliver(ctx context.Context, msg alert.Message) error {
	if msg.Recipient.Phone == "" {
		return fmt.Errorf("%w: recipient %s has no phone", ErrMissingAddress, msg.Recipient.ID)
	}
	text := msg.Subject + ": " + msg.Body
	if err := c.sender.SendSMS(ctx, msg.Recipient.NormalizedPhone(), text); err != nil {
		return fmt.Errorf("%w: sms to %s: %v", ErrDeliveryFailed, msg.Recipient.ID, err)
	}
	return nil
}

// InboxWriter appends a message to a recipient's in-app inbox. The delivery
// log storage satisfies this interface.
type InboxWriter interface {
	Append(ctx context.Context, msg alert.Message) error
}

// InAppChannel delivers messages to the recipient's in-app inbox.
type InAppChannel struct {
	inbox InboxWriter
}

// NewInAppChannel creates the in-app delivery channel.
func NewInAppChannel(inbox InboxWriter) *InAppChannel {
	return &InAppChannel{inbox: inbox}
}

func (c *InAppChannel) Name() string { return alert.ChannelInApp }

func (c *InAppChannel) Deliver(ctx context.Context, msg alert.Message) error {
	if err := c.inbox.Append(ctx, msg); err != nil {
		return fmt.Errorf("%w: inbox of %s: %v", ErrDeliveryFailed, msg.Recipient.ID, err)
	}
	return nil
}
