package mail

import (
	"context"
	"fmt"

	"github.com/bimmills/portal/config"
	gomail "github.com/wneessen/go-mail"
)

// SMTPClient sends through an SMTP relay with STARTTLS when offered.
type SMTPClient struct {
	cfg      config.SMTPConfig
	fromName string
}

func NewSMTPClient(cfg config.SMTPConfig, fromName string) *SMTPClient {
	return &SMTPClient{cfg: cfg, fromName: fromName}
}

func (c *SMTPClient) Send(ctx context.Context, from, to, subject, body string) error {
	if from == "" {
		from = c.cfg.Username
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(c.fromName, from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(gomail.TypeTextHTML, body)

	opts := []gomail.Option{
		gomail.WithPort(c.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if c.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(c.cfg.Username),
			gomail.WithPassword(c.cfg.Password),
		)
	}
	client, err := gomail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
