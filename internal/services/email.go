package services

import (
	"context"
	"fmt"
	"log"

	"eventdesk/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventPublished announces a newly published event using the "event_published" template.
func (s *emailService) SendEventPublished(ctx context.Context, data *domain.EventPublishedEmailData) error {
	if data == nil {
		return fmt.Errorf("event published data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_published", data)
	if err != nil {
		return fmt.Errorf("failed to render event_published template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event published email: %w", err)
	}
	log.Printf("[EMAIL] Event published notice sent to %s", data.Email)
	return nil
}

// SendBookingConfirmed notifies an attendee that the organizer confirmed their
// booking, using the "booking_confirmed" template.
func (s *emailService) SendBookingConfirmed(ctx context.Context, data *domain.BookingConfirmedEmailData) error {
	if data == nil {
		return fmt.Errorf("booking confirmed data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("booking_confirmed", data)
	if err != nil {
		return fmt.Errorf("failed to render booking_confirmed template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send booking confirmed email: %w", err)
	}
	log.Printf("[EMAIL] Booking confirmation sent to %s", data.Email)
	return nil
}
