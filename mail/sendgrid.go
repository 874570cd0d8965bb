package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridClient sends through the SendGrid v3 API.
type SendGridClient struct {
	apiKey   string
	fromName string
}

func NewSendGridClient(apiKey, fromName string) *SendGridClient {
	return &SendGridClient{apiKey: apiKey, fromName: fromName}
}

func (c *SendGridClient) Send(ctx context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewV3Mail()
	message.SetFrom(sgmail.NewEmail(c.fromName, from))
	message.Subject = subject
	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", to))
	message.AddPersonalizations(p)
	message.AddContent(sgmail.NewContent("text/html", body))

	response, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	slog.Debug("sendgrid mail sent", "status", response.StatusCode, "to", to, "subject", subject)
	return nil
}
