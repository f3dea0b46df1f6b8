package services

import (
	"context"
	"fmt"
	"log"

	"eventboard/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventCreated notifies an organizer that their event was submitted.
func (s *emailService) SendEventCreated(ctx context.Context, data *domain.EventEmailData) error {
	return s.send("event_created", data)
}

// SendEventApproved notifies an organizer that their event is publicly listed.
func (s *emailService) SendEventApproved(ctx context.Context, data *domain.EventEmailData) error {
	return s.send("event_approved", data)
}

// SendEventDeleted notifies an organizer that their event was removed.
func (s *emailService) SendEventDeleted(ctx context.Context, data *domain.EventEmailData) error {
	return s.send("event_deleted", data)
}

func (s *emailService) send(templateName string, data *domain.EventEmailData) error {
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
	log.Printf("[EMAIL] %s email sent to %s", templateName, data.Email)
	return nil
}
