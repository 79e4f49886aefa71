package domain

import "context"

// EventRoster is the per-event booking roster, split the way the organizer
// membership screen consumes it: confirmed bookings on one side, everything
// still awaiting a decision (pending or declined) on the other.
type EventRoster struct {
	Confirmed []*Booking `json:"confirmed"`
	Awaiting  []*Booking `json:"awaiting"`
}

// AvailableEventsPage is one page of publicly bookable events.
type AvailableEventsPage struct {
	Events []*Event `json:"events"`
	Total  int      `json:"total"`
}

// ViewService defines the read-side projections consumed by UI collaborators.
type ViewService interface {
	// AvailableEventsFor returns active events the user holds no booking for
	// (any status, any type), newest first.
	AvailableEventsFor(ctx context.Context, userID string, params PaginationParams) (*AvailableEventsPage, error)
	// ConfirmedBookingsFor returns the user's confirmed bookings with event,
	// venue, and timeslot detail. Bookings whose event has no timeslot are
	// not calendar-displayable and are dropped from the view, never from the
	// ledger.
	ConfirmedBookingsFor(ctx context.Context, userID string) ([]*BookingDetail, error)
	// EventRoster returns the event's bookings grouped by confirmation, for
	// the event's organizer only.
	EventRoster(ctx context.Context, eventID, organizerID string) (*EventRoster, error)
}
