package domain

import (
	"context"
	"time"
)

// Venue represents a physical location with a fixed attendee capacity.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVenue returns a new Venue with the given fields. ID is typically set by the repository on create.
func NewVenue(name, address string, capacity int, createdAt time.Time) *Venue {
	return &Venue{
		Name:      name,
		Address:   address,
		Capacity:  capacity,
		CreatedAt: createdAt,
	}
}

// Timeslot is a bookable start/end interval at a venue. A timeslot is held by
// at most one event at a time; IsAvailable is false exactly while some event
// references it.
// swagger:model Timeslot
type Timeslot struct {
	ID              string    `json:"id"`
	VenueID         string    `json:"venue_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewTimeslot returns an available Timeslot starting at start and lasting
// durationMinutes. EndTime is derived so the pair always stays consistent
// with the duration.
func NewTimeslot(venueID string, start time.Time, durationMinutes int, createdAt time.Time) *Timeslot {
	return &Timeslot{
		VenueID:         venueID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
		IsAvailable:     true,
		CreatedAt:       createdAt,
	}
}

// VenueRepository defines storage operations for venues and their timeslots.
//
// Allocate and Release are the only writes that touch the availability flag
// and the owning event's venue references; both must keep flag and references
// in agreement (single transaction).
type VenueRepository interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
	CreateTimeslot(ctx context.Context, slot *Timeslot) error
	GetTimeslotByID(ctx context.Context, id string) (*Timeslot, error)
	ListAvailableTimeslots(ctx context.Context, venueID string) ([]*Timeslot, error)
	// Allocate atomically claims the timeslot for the event: it frees any slot
	// the event currently holds, flips the new slot's is_available to false,
	// and points the event's venue_id/venue_timeslot_id at it. Exactly one of
	// several concurrent callers for the same slot succeeds; the rest get
	// ErrTimeslotTaken.
	Allocate(ctx context.Context, timeslotID, eventID string) error
	// Release frees the timeslot and clears the referencing event's venue
	// fields. Releasing an already-available slot is a no-op success.
	Release(ctx context.Context, timeslotID string) error
}

// VenueRegistry exposes venue and timeslot management to collaborators.
type VenueRegistry interface {
	CreateVenue(ctx context.Context, name, address string, capacity int) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
	CreateTimeslot(ctx context.Context, venueID string, start time.Time, durationMinutes int) (*Timeslot, error)
	ListAvailableTimeslots(ctx context.Context, venueID string) ([]*Timeslot, error)
}
