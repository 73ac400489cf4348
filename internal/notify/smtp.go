package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/mmynk/duoreg/internal/models"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends status emails through an SMTP server.
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

// NewSMTPNotifier builds the mail client. No connection is made until a send.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPNotifier{client: client, from: cfg.From}, nil
}

// SendStatusChange renders and sends the status email.
func (n *SMTPNotifier) SendStatusChange(ctx context.Context, entry models.Entry, status models.Status) error {
	rendered, err := Render(entry, status)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", n.from, err)
	}
	if err := msg.To(rendered.To...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}
	return nil
}
