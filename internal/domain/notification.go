package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SMSSender delivers a short text message. Implementations treat missing
// configuration as a logged skip, not an error.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// HoldConfirmationEmailData holds data for the hold-confirmation email.
type HoldConfirmationEmailData struct {
	Email     string
	EventID   string
	SlotName  string
	Qty       int
	HoldID    string
	ExpiresAt time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendHoldConfirmation(ctx context.Context, data *HoldConfirmationEmailData) error
}
