package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventPublishedEmailData holds the event detail fields the dispatcher formats
// into a "now public" announcement.
type EventPublishedEmailData struct {
	Email       string
	Title       string
	Description string
	Tags        []string
	ShareLink   string
}

// BookingConfirmedEmailData holds data for the booking confirmation email.
type BookingConfirmedEmailData struct {
	Email      string
	EventTitle string
	VenueName  string
	StartTime  time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventPublished(ctx context.Context, data *EventPublishedEmailData) error
	SendBookingConfirmed(ctx context.Context, data *BookingConfirmedEmailData) error
}
