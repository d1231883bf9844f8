package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Channel dispatches a rendered message. Implementations own retries,
// transport and credentials; the core only sees pass/fail.
type Channel interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridChannel sends mail through the SendGrid API.
type SendGridChannel struct {
	apiKey   string
	fromName string
	fromMail string
}

// NewSendGridChannel constructs a channel.
func NewSendGridChannel(apiKey, fromName, fromMail string) (*SendGridChannel, error) {
	if apiKey == "" {
		return nil, errors.New("mailer: empty sendgrid api key")
	}
	if fromMail == "" {
		return nil, errors.New("mailer: empty from address")
	}
	if fromName == "" {
		fromName = "Banque du Numérique"
	}
	return &SendGridChannel{apiKey: apiKey, fromName: fromName, fromMail: fromMail}, nil
}

// Send dispatches one message and reports a single pass/fail result.
func (c *SendGridChannel) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return errors.New("mailer: nil channel")
	}
	if msg.To == "" {
		return ErrMissingRecipient
	}

	from := mail.NewEmail(c.fromName, c.fromMail)
	to := mail.NewEmail("", msg.To)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("mailer: sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("mailer: sendgrid status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
