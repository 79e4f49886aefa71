package domain

import (
	"context"
	"time"
)

// BookingType distinguishes attendee self-bookings from organizer-invited
// speakers.
type BookingType string

const (
	BookingTypeAttendee BookingType = "attendee"
	BookingTypeSpeaker  BookingType = "speaker"
)

// RegistrationStatus is the lifecycle state of a booking. All three states
// are mutually reachable; none is terminal.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusDeclined  RegistrationStatus = "declined"
)

// Valid reports whether s is one of the known registration statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// Booking is a user's association with an event, as attendee or speaker.
// A user holds at most one booking per event, regardless of type.
// swagger:model Booking
type Booking struct {
	ID                 string             `json:"id"`
	EventID            string             `json:"event_id"`
	UserID             string             `json:"user_id"`
	Type               BookingType        `json:"type"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	CreatedAt          time.Time          `json:"created_at"`
}

// NewBooking returns a new Booking. ID is typically set by the repository on
// create. Attendee bookings start pending; speaker invitations start
// confirmed (the organizer issued them).
func NewBooking(eventID, userID string, bookingType BookingType, status RegistrationStatus, createdAt time.Time) *Booking {
	return &Booking{
		EventID:            eventID,
		UserID:             userID,
		Type:               bookingType,
		RegistrationStatus: status,
		CreatedAt:          createdAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts the booking. A second booking for the same (event, user)
	// pair fails with ErrDuplicateBooking.
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	ListByUserID(ctx context.Context, userID string) ([]*Booking, error)
	// UpdateStatus sets the status only when the row still holds from.
	// Returns ErrNotFound when no row matches both id and from.
	UpdateStatus(ctx context.Context, id string, from, to RegistrationStatus) error
	Delete(ctx context.Context, id string) error
	CountByEventAndType(ctx context.Context, eventID string, bookingType BookingType) (int, error)
	// ListDetailedByUserID returns the user's bookings joined with event,
	// venue, and timeslot detail, newest booking first. When status is
	// non-empty only bookings in that status are returned; scheduledOnly
	// drops bookings whose event has no timeslot assignment.
	ListDetailedByUserID(ctx context.Context, userID string, status RegistrationStatus, scheduledOnly bool) ([]*BookingDetail, error)
}

// BookingDetail joins a booking with its event and, when the event is
// scheduled, the venue and timeslot.
type BookingDetail struct {
	Booking  *Booking  `json:"booking"`
	Event    *Event    `json:"event"`
	Venue    *Venue    `json:"venue,omitempty"`
	Timeslot *Timeslot `json:"timeslot,omitempty"`
}

// BookingService defines the booking ledger operations for attendees,
// speakers, and organizers.
type BookingService interface {
	// CreateAttendeeBooking books the user onto the event with status pending.
	CreateAttendeeBooking(ctx context.Context, eventID, userID string) (*Booking, error)
	// CancelAttendeeBooking removes the caller's own attendee booking.
	CancelAttendeeBooking(ctx context.Context, bookingID, userID string) error
	// InviteSpeaker books the user onto the event as a speaker, already
	// confirmed.
	InviteSpeaker(ctx context.Context, eventID, organizerID, userID string) (*Booking, error)
	// RemoveSpeaker deletes a speaker booking entirely.
	RemoveSpeaker(ctx context.Context, bookingID, organizerID string) error
	// RespondAsSpeaker accepts or declines a pending speaker booking.
	RespondAsSpeaker(ctx context.Context, bookingID, userID string, accept bool) (*Booking, error)
	// ResetToPending moves a confirmed or declined booking back to pending.
	// Resetting an already-pending booking is a no-op success.
	ResetToPending(ctx context.Context, bookingID, organizerID string) (*Booking, error)
	// SetAttendeeStatus is the organizer-side accept/decline of a pending
	// attendee booking.
	SetAttendeeStatus(ctx context.Context, bookingID, organizerID string, status RegistrationStatus) (*Booking, error)
	ListForEvent(ctx context.Context, eventID, organizerID string) ([]*Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*BookingDetail, error)
}
