// Package notify sends review status emails to athletes.
//
// Delivery is best-effort: a failed or slow send never affects the status
// change that triggered it. Dispatcher decouples the caller from delivery.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/mmynk/duoreg/internal/models"
)

// ErrNoRecipients is returned when neither athlete has an email address.
var ErrNoRecipients = errors.New("entry has no email recipients")

// Notifier delivers a status change notification for an entry.
type Notifier interface {
	SendStatusChange(ctx context.Context, entry models.Entry, status models.Status) error
}

// Message is a rendered status email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

var statusWords = map[models.Status]string{
	models.StatusAccepted:      "aprovada",
	models.StatusRejected:      "recusada",
	models.StatusPendingReview: "em análise",
	models.StatusDuplicate:     "duplicada",
}

var bodyTemplate = template.Must(template.New("status").Parse(
	`Olá{{if .Names}}, {{.Names}}{{end}}!

A inscrição da dupla {{.Duo}} na categoria {{.Category}} foi {{.Word}}.
{{if .Accepted}}
Nos vemos no evento. Guarde este e-mail como confirmação.
{{else if .Rejected}}
Se você acredita que houve um engano, responda este e-mail com o comprovante de pagamento.
{{end}}
Código da inscrição: {{.ID}}
`))

// Render builds the status email for an entry.
func Render(entry models.Entry, status models.Status) (Message, error) {
	var to []string
	for _, email := range []string{entry.Athlete1.Email, entry.Athlete2.Email} {
		if email = strings.TrimSpace(email); email != "" {
			to = append(to, email)
		}
	}
	if len(to) == 0 {
		return Message{}, ErrNoRecipients
	}

	word, ok := statusWords[status]
	if !ok {
		word = string(status)
	}

	var names []string
	for _, name := range []string{entry.Athlete1.Name, entry.Athlete2.Name} {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	duo := entry.Duo.Name
	if duo == "" {
		duo = "sem nome"
	}

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, map[string]any{
		"Names":    strings.Join(names, " e "),
		"Duo":      duo,
		"Category": entry.Duo.Category,
		"Word":     word,
		"Accepted": status == models.StatusAccepted,
		"Rejected": status == models.StatusRejected,
		"ID":       entry.ID,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render status email: %w", err)
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Inscrição %s - %s", word, entry.Duo.Category),
		Body:    body.String(),
	}, nil
}

// LogNotifier only logs. Used when no SMTP server is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs rendered messages.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendStatusChange(ctx context.Context, entry models.Entry, status models.Status) error {
	msg, err := Render(entry, status)
	if err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "Status email (not sent, SMTP disabled)",
		"entry_id", entry.ID,
		"status", status,
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
