package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

type viewService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	contextTimeout time.Duration
}

// NewViewService creates the read-side projection service.
func NewViewService(eventRepo domain.EventRepository, bookingRepo domain.BookingRepository, timeout time.Duration) domain.ViewService {
	return &viewService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		contextTimeout: timeout,
	}
}

func (s *viewService) AvailableEventsFor(ctx context.Context, userID string, params domain.PaginationParams) (*domain.AvailableEventsPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListActiveNotBookedBy(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("list available events: %w", err)
	}
	return &domain.AvailableEventsPage{Events: events, Total: total}, nil
}

// ConfirmedBookingsFor feeds the personal calendar: confirmed bookings only,
// and only those whose event actually has a scheduled timeslot. Unscheduled
// confirmations stay in the ledger but are not calendar-displayable.
func (s *viewService) ConfirmedBookingsFor(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	details, err := s.bookingRepo.ListDetailedByUserID(ctx, userID, domain.StatusConfirmed, true)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	return details, nil
}

func (s *viewService) EventRoster(ctx context.Context, eventID, organizerID string) (*domain.EventRoster, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	roster := &domain.EventRoster{
		Confirmed: []*domain.Booking{},
		Awaiting:  []*domain.Booking{},
	}
	for _, b := range bookings {
		if b.RegistrationStatus == domain.StatusConfirmed {
			roster.Confirmed = append(roster.Confirmed, b)
		} else {
			roster.Awaiting = append(roster.Awaiting, b)
		}
	}
	return roster, nil
}
