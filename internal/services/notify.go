package services

import (
	"context"
	"fmt"
	"log/slog"

	"neargo/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendHoldConfirmation sends the hold-confirmation email using the
// "hold_confirmation" template and the given data.
func (s *emailService) SendHoldConfirmation(ctx context.Context, data *domain.HoldConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("hold confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("hold_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render hold_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send hold confirmation email: %w", err)
	}
	s.logger.Info("hold confirmation sent", "to", data.Email, "hold_id", data.HoldID)
	return nil
}
