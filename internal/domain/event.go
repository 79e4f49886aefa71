package domain

import (
	"context"
	"time"
)

// EventStatus is the publish state of an event.
type EventStatus string

const (
	// EventStatusInactive is the draft state every event starts in.
	EventStatusInactive EventStatus = "inactive"
	// EventStatusActive marks an event as publicly visible.
	EventStatusActive EventStatus = "active"
)

// VenueAssignment ties an event to a venue and one of its timeslots. Both
// references always change together; an unassigned event carries a nil
// assignment instead of two independently nullable fields.
type VenueAssignment struct {
	VenueID    string `json:"venue_id"`
	TimeslotID string `json:"timeslot_id"`
}

// Event represents an organizer-created activity with content, capacity,
// an optional venue/timeslot assignment, and a publish state.
// swagger:model Event
type Event struct {
	ID              string           `json:"id"`
	OrganizerID     string           `json:"organizer_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	DurationMinutes int              `json:"duration_minutes"`
	MaxAttendees    int              `json:"max_attendees"`
	Status          EventStatus      `json:"status"`
	Venue           *VenueAssignment `json:"venue,omitempty"`
	Tags            []string         `json:"tags"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewEvent returns a draft Event with no venue assignment. ID is typically
// set by the repository on create.
func NewEvent(organizerID, title, description string, durationMinutes, maxAttendees int, tags []string, createdAt time.Time) *Event {
	return &Event{
		OrganizerID:     organizerID,
		Title:           title,
		Description:     description,
		DurationMinutes: durationMinutes,
		MaxAttendees:    maxAttendees,
		Status:          EventStatusInactive,
		Tags:            tags,
		CreatedAt:       createdAt,
	}
}

// EventRepository defines storage operations for events. Venue references are
// written only through VenueRepository.Allocate/Release.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	UpdateDetails(ctx context.Context, id, title, description string) (*Event, error)
	SetStatus(ctx context.Context, id string, status EventStatus) error
	// ListActiveNotBookedBy returns active events the user holds no booking
	// for, newest first, with the overall total for pagination.
	ListActiveNotBookedBy(ctx context.Context, userID string, params PaginationParams) ([]*Event, int, error)
}

// EventService defines organizer-facing event operations, including the
// publication guard.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID, title, description string, durationMinutes, maxAttendees int, tags []string) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListMyEvents(ctx context.Context, organizerID string) ([]*Event, error)
	UpdateDetails(ctx context.Context, eventID, organizerID, title, description string) (*Event, error)
	// AssignTimeslot books the timeslot for the event, releasing any slot the
	// event already holds. The venue reference follows from the timeslot.
	AssignTimeslot(ctx context.Context, eventID, organizerID, timeslotID string) (*Event, error)
	// UnassignVenue releases the event's current timeslot, if any, and clears
	// both venue references.
	UnassignVenue(ctx context.Context, eventID, organizerID string) (*Event, error)
	// CanPublish reports whether the event meets the publication requirements:
	// a venue/timeslot assignment and at least one speaker booking.
	CanPublish(ctx context.Context, eventID string) (bool, error)
	// Publish flips the event to active. It fails with a PreconditionError
	// naming every unmet requirement when CanPublish would be false.
	Publish(ctx context.Context, eventID, organizerID string) (*Event, error)
}
