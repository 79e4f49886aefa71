package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	notifier       domain.ChangeNotifier
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService with the given repositories.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	notifier domain.ChangeNotifier,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		notifier:       notifier,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateAttendeeBooking(ctx context.Context, eventID, userID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.createBooking(ctx, eventID, userID, domain.BookingTypeAttendee, domain.StatusPending)
}

func (s *bookingService) InviteSpeaker(ctx context.Context, eventID, organizerID, userID string) (*domain.Booking, error) {
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

	// Organizer-invited speakers are confirmed immediately; only attendee
	// self-bookings start pending.
	return s.createBooking(ctx, eventID, userID, domain.BookingTypeSpeaker, domain.StatusConfirmed)
}

func (s *bookingService) createBooking(ctx context.Context, eventID, userID string, bookingType domain.BookingType, status domain.RegistrationStatus) (*domain.Booking, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// One booking per user per event, of any type. The unique index backs
	// this up under concurrency; the pre-check gives the common case a clean
	// answer without burning a sequence value.
	if _, err := s.bookingRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrDuplicateBooking
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	booking := domain.NewBooking(eventID, userID, bookingType, status, time.Now())
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "booking", Action: "created", ID: booking.ID})
	return booking, nil
}

func (s *bookingService) CancelAttendeeBooking(ctx context.Context, bookingID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return domain.ErrForbidden
	}
	if booking.Type != domain.BookingTypeAttendee {
		return fmt.Errorf("%w: only attendee bookings can be cancelled", domain.ErrInvalidInput)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "booking", Action: "deleted", ID: bookingID})
	return nil
}

func (s *bookingService) RemoveSpeaker(ctx context.Context, bookingID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.requireEventOwner(ctx, booking.EventID, organizerID); err != nil {
		return err
	}
	if booking.Type != domain.BookingTypeSpeaker {
		return fmt.Errorf("%w: booking is not a speaker booking", domain.ErrInvalidInput)
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "booking", Action: "deleted", ID: bookingID})
	return nil
}

func (s *bookingService) RespondAsSpeaker(ctx context.Context, bookingID, userID string, accept bool) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if booking.Type != domain.BookingTypeSpeaker {
		return nil, fmt.Errorf("%w: booking is not a speaker booking", domain.ErrInvalidInput)
	}

	target := domain.StatusConfirmed
	if !accept {
		target = domain.StatusDeclined
	}
	if booking.RegistrationStatus != domain.StatusPending {
		return nil, &domain.InvalidTransitionError{Current: booking.RegistrationStatus, Attempted: target}
	}

	return s.transition(ctx, booking, domain.StatusPending, target)
}

func (s *bookingService) ResetToPending(ctx context.Context, bookingID, organizerID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEventOwner(ctx, booking.EventID, organizerID); err != nil {
		return nil, err
	}
	// Already pending: resetting again is a no-op, not an error.
	if booking.RegistrationStatus == domain.StatusPending {
		return booking, nil
	}

	return s.transition(ctx, booking, booking.RegistrationStatus, domain.StatusPending)
}

func (s *bookingService) SetAttendeeStatus(ctx context.Context, bookingID, organizerID string, status domain.RegistrationStatus) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.StatusConfirmed && status != domain.StatusDeclined {
		return nil, fmt.Errorf("%w: status must be confirmed or declined", domain.ErrInvalidInput)
	}
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEventOwner(ctx, booking.EventID, organizerID); err != nil {
		return nil, err
	}
	if booking.Type != domain.BookingTypeAttendee {
		return nil, fmt.Errorf("%w: booking is not an attendee booking", domain.ErrInvalidInput)
	}
	if booking.RegistrationStatus != domain.StatusPending {
		return nil, &domain.InvalidTransitionError{Current: booking.RegistrationStatus, Attempted: status}
	}

	return s.transition(ctx, booking, domain.StatusPending, status)
}

// transition applies a conditional status update. When the row no longer
// holds from (a concurrent writer got there first), the fresh state decides
// between not-found and an invalid-transition report.
func (s *bookingService) transition(ctx context.Context, booking *domain.Booking, from, to domain.RegistrationStatus) (*domain.Booking, error) {
	err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fresh, getErr := s.bookingRepo.GetByID(ctx, booking.ID)
			if getErr != nil {
				if errors.Is(getErr, domain.ErrNotFound) {
					return nil, domain.ErrNotFound
				}
				return nil, fmt.Errorf("get booking: %w", getErr)
			}
			return nil, &domain.InvalidTransitionError{Current: fresh.RegistrationStatus, Attempted: to}
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.RegistrationStatus = to
	s.notifier.Notify(ctx, domain.Change{Entity: "booking", Action: "updated", ID: booking.ID})
	return booking, nil
}

func (s *bookingService) ListForEvent(ctx context.Context, eventID, organizerID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireEventOwner(ctx, eventID, organizerID); err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	details, err := s.bookingRepo.ListDetailedByUserID(ctx, userID, "", false)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return details, nil
}

func (s *bookingService) getBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) requireEventOwner(ctx context.Context, eventID, organizerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	return nil
}
