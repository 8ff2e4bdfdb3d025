package service

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmationMailTemplate(t *testing.T) {
	notifier, err := NewSMTPNotifier(SMTPConfig{
		Host:    "localhost",
		Port:    1025,
		From:    "noreply@notes.local",
		BaseURL: "https://notes.example.com",
	})
	if err != nil {
		t.Fatalf("NewSMTPNotifier failed: %v", err)
	}

	var body bytes.Buffer
	err = notifier.tmpl.Execute(&body, map[string]string{
		"From":     "noreply@notes.local",
		"To":       "alice@example.com",
		"Username": "alice",
		"BaseURL":  "https://notes.example.com",
		"Token":    "tok123",
	})
	if err != nil {
		t.Fatalf("Template execution failed: %v", err)
	}

	rendered := body.String()
	if !strings.Contains(rendered, "https://notes.example.com/api/auth/confirmed_email/tok123") {
		t.Error("Expected confirmation link in mail body")
	}
	if !strings.Contains(rendered, "Alice") {
		t.Error("Expected title-cased username in mail body")
	}
	if !strings.Contains(rendered, "To: alice@example.com") {
		t.Error("Expected recipient header in mail body")
	}
}
