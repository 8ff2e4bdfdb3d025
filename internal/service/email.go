package service

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/notely/notes-api/pkg/logger"
)

// Notifier delivers confirmation tokens out-of-band. It is a
// fire-and-forget collaborator: the auth service logs delivery
// failures but never fails a request because of them.
type Notifier interface {
	SendConfirmation(ctx context.Context, email, username, token string) error
}

const confirmationMailTemplate = `From: {{ .From }}
To: {{ .To }}
Subject: Confirm your email
MIME-Version: 1.0
Content-Type: text/plain; charset="utf-8"

Hi {{ .Username | title }},

please confirm your email address by opening the link below:

{{ .BaseURL }}/api/auth/confirmed_email/{{ .Token }}

The link is valid for 24 hours. If you did not sign up, ignore this
message.
`

// SMTPConfig holds mail relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPNotifier renders the confirmation mail and hands it to an SMTP
// relay.
type SMTPNotifier struct {
	cfg  SMTPConfig
	tmpl *template.Template
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	tmpl, err := template.New("confirmation").Funcs(sprig.TxtFuncMap()).Parse(confirmationMailTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirmation template: %w", err)
	}

	return &SMTPNotifier{cfg: cfg, tmpl: tmpl}, nil
}

func (n *SMTPNotifier) SendConfirmation(ctx context.Context, email, username, token string) error {
	var body bytes.Buffer
	err := n.tmpl.Execute(&body, map[string]string{
		"From":     n.cfg.From,
		"To":       email,
		"Username": username,
		"BaseURL":  n.cfg.BaseURL,
		"Token":    token,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation mail: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{email}, body.Bytes()); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}

	logger.DebugWithContext(ctx, "Confirmation mail sent").
		String("email", email).
		Log()

	return nil
}

// LogNotifier is the development stand-in: it only logs the token so
// the confirmation link can be copied from the output.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, email, username, token string) error {
	logger.InfoWithContext(ctx, "Confirmation token issued (mail disabled)").
		String("email", email).
		String("token", token).
		Log()
	return nil
}
