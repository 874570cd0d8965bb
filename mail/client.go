package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bimmills/portal/config"
)

// EmailClient delivers a single HTML email.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// NewClient builds the client selected by cfg.Provider.
func NewClient(cfg config.MailConfig) (EmailClient, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridClient(cfg.SendGrid.APIKey, cfg.FromName), nil
	case "smtp":
		return NewSMTPClient(cfg.SMTP, cfg.FromName), nil
	case "log", "":
		return LogClient{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// LogClient writes emails to the log instead of sending them.
type LogClient struct{}

func (LogClient) Send(_ context.Context, from, to, subject, body string) error {
	slog.Info("email (log provider)", "from", from, "to", to, "subject", subject, "bytes", len(body))
	return nil
}
