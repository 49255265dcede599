package services

import (
	"context"
	"fmt"
	"log/slog"

	"campusevents/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmed sends the "registration_confirmed" template.
func (s *emailService) SendRegistrationConfirmed(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send(ctx, "registration_confirmed", data)
}

// SendRegistrationCancelled sends the "registration_cancelled" template.
func (s *emailService) SendRegistrationCancelled(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send(ctx, "registration_cancelled", data)
}

func (s *emailService) send(ctx context.Context, templateName string, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", templateName, "to", data.Email)
	return nil
}
