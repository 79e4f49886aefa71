package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventdesk/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// Valid UUIDs for path parameters; pathID rejects anything else before the
// service is reached.
const (
	eventUUID   = "11111111-1111-1111-1111-111111111111"
	slotUUID    = "22222222-2222-2222-2222-222222222222"
	bookingUUID = "33333333-3333-3333-3333-333333333333"
	venueUUID   = "44444444-4444-4444-4444-444444444444"
	userUUID    = "55555555-5555-5555-5555-555555555555"
)

type fakeEventService struct {
	err    error
	event  *domain.Event
	events []*domain.Event
	canPub bool

	lastOrganizerID string
	lastEventID     string
	lastTimeslotID  string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, organizerID, title, description string, durationMinutes, maxAttendees int, tags []string) (*domain.Event, error) {
	f.lastOrganizerID = organizerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastOrganizerID = organizerID
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) UpdateDetails(ctx context.Context, eventID, organizerID, title, description string) (*domain.Event, error) {
	f.lastEventID = eventID
	f.lastOrganizerID = organizerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) AssignTimeslot(ctx context.Context, eventID, organizerID, timeslotID string) (*domain.Event, error) {
	f.lastEventID = eventID
	f.lastOrganizerID = organizerID
	f.lastTimeslotID = timeslotID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) UnassignVenue(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) CanPublish(ctx context.Context, eventID string) (bool, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return false, f.err
	}
	return f.canPub, nil
}

func (f *fakeEventService) Publish(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	f.lastEventID = eventID
	f.lastOrganizerID = organizerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

type fakeBookingService struct {
	err      error
	booking  *domain.Booking
	bookings []*domain.Booking
	details  []*domain.BookingDetail

	lastEventID   string
	lastBookingID string
	lastUserID    string
	lastAccept    bool
	lastStatus    domain.RegistrationStatus
}

func (f *fakeBookingService) CreateAttendeeBooking(ctx context.Context, eventID, userID string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) CancelAttendeeBooking(ctx context.Context, bookingID, userID string) error {
	f.lastBookingID = bookingID
	f.lastUserID = userID
	return f.err
}

func (f *fakeBookingService) InviteSpeaker(ctx context.Context, eventID, organizerID, userID string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) RemoveSpeaker(ctx context.Context, bookingID, organizerID string) error {
	f.lastBookingID = bookingID
	return f.err
}

func (f *fakeBookingService) RespondAsSpeaker(ctx context.Context, bookingID, userID string, accept bool) (*domain.Booking, error) {
	f.lastBookingID = bookingID
	f.lastUserID = userID
	f.lastAccept = accept
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) ResetToPending(ctx context.Context, bookingID, organizerID string) (*domain.Booking, error) {
	f.lastBookingID = bookingID
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) SetAttendeeStatus(ctx context.Context, bookingID, organizerID string, status domain.RegistrationStatus) (*domain.Booking, error) {
	f.lastBookingID = bookingID
	f.lastStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) ListForEvent(ctx context.Context, eventID, organizerID string) ([]*domain.Booking, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

func (f *fakeBookingService) ListForUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

type fakeViewService struct {
	err     error
	page    *domain.AvailableEventsPage
	details []*domain.BookingDetail
	roster  *domain.EventRoster

	lastUserID string
	lastParams domain.PaginationParams
}

func (f *fakeViewService) AvailableEventsFor(ctx context.Context, userID string, params domain.PaginationParams) (*domain.AvailableEventsPage, error) {
	f.lastUserID = userID
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeViewService) ConfirmedBookingsFor(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeViewService) EventRoster(ctx context.Context, eventID, organizerID string) (*domain.EventRoster, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

type fakeVenueRegistry struct {
	err    error
	venue  *domain.Venue
	venues []*domain.Venue
	slot   *domain.Timeslot
	slots  []*domain.Timeslot

	lastVenueID string
}

func (f *fakeVenueRegistry) CreateVenue(ctx context.Context, name, address string, capacity int) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

func (f *fakeVenueRegistry) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venues, nil
}

func (f *fakeVenueRegistry) CreateTimeslot(ctx context.Context, venueID string, start time.Time, durationMinutes int) (*domain.Timeslot, error) {
	f.lastVenueID = venueID
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

func (f *fakeVenueRegistry) ListAvailableTimeslots(ctx context.Context, venueID string) ([]*domain.Timeslot, error) {
	f.lastVenueID = venueID
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}
