package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

// UI-level minimums carried over as the contract here, since this is the only
// validation in the system.
const (
	minTitleLength       = 3
	minDescriptionLength = 10
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	bookingRepo    domain.BookingRepository
	notifier       domain.ChangeNotifier
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	bookingRepo domain.BookingRepository,
	notifier domain.ChangeNotifier,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		bookingRepo:    bookingRepo,
		notifier:       notifier,
		contextTimeout: timeout,
	}
}

func validateContent(title, description string) []string {
	var problems []string
	if len(strings.TrimSpace(title)) < minTitleLength {
		problems = append(problems, fmt.Sprintf("title must be at least %d characters", minTitleLength))
	}
	if len(strings.TrimSpace(description)) < minDescriptionLength {
		problems = append(problems, fmt.Sprintf("description must be at least %d characters", minDescriptionLength))
	}
	return problems
}

// normalizeTags trims tags and drops empties. Tags persist as a comma-joined
// list, so a comma inside a tag would corrupt the serialization.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.Contains(t, ",") {
			return nil, fmt.Errorf("%w: tag %q must not contain commas", domain.ErrInvalidInput, t)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID, title, description string, durationMinutes, maxAttendees int, tags []string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if organizerID == "" {
		return nil, fmt.Errorf("%w: organizer is required", domain.ErrInvalidInput)
	}
	problems := validateContent(title, description)
	if durationMinutes <= 0 {
		problems = append(problems, "duration_minutes must be positive")
	}
	if maxAttendees <= 0 {
		problems = append(problems, "max_attendees must be positive")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	normalized, err := normalizeTags(tags)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(organizerID, strings.TrimSpace(title), strings.TrimSpace(description),
		durationMinutes, maxAttendees, normalized, time.Now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "event", Action: "created", ID: event.ID})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateDetails(ctx context.Context, eventID, organizerID, title, description string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}
	if problems := validateContent(title, description); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	updated, err := s.eventRepo.UpdateDetails(ctx, event.ID, strings.TrimSpace(title), strings.TrimSpace(description))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event details: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "event", Action: "updated", ID: updated.ID})
	return updated, nil
}

func (s *eventService) AssignTimeslot(ctx context.Context, eventID, organizerID, timeslotID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getOwnedEvent(ctx, eventID, organizerID); err != nil {
		return nil, err
	}

	// Allocate releases any slot the event currently holds and claims the new
	// one in a single transaction, so a failed claim leaves the old
	// assignment intact.
	if err := s.venueRepo.Allocate(ctx, timeslotID, eventID); err != nil {
		if errors.Is(err, domain.ErrTimeslotTaken) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("allocate timeslot: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event after allocate: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "timeslot", Action: "allocated", ID: timeslotID})
	return event, nil
}

func (s *eventService) UnassignVenue(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}
	if event.Venue == nil {
		return event, nil
	}

	timeslotID := event.Venue.TimeslotID
	if err := s.venueRepo.Release(ctx, timeslotID); err != nil {
		return nil, fmt.Errorf("release timeslot: %w", err)
	}
	event.Venue = nil
	s.notifier.Notify(ctx, domain.Change{Entity: "timeslot", Action: "released", ID: timeslotID})
	return event, nil
}

// publishBlockers returns what stands between the event and publication.
// Speaker existence is checked regardless of the speaker's status, matching
// the organizer flow this was lifted from.
func (s *eventService) publishBlockers(ctx context.Context, event *domain.Event) ([]string, error) {
	var missing []string
	if event.Venue == nil {
		missing = append(missing, "missing timeslot")
	}
	speakers, err := s.bookingRepo.CountByEventAndType(ctx, event.ID, domain.BookingTypeSpeaker)
	if err != nil {
		return nil, fmt.Errorf("count speakers: %w", err)
	}
	if speakers == 0 {
		missing = append(missing, "missing speaker")
	}
	return missing, nil
}

func (s *eventService) CanPublish(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	missing, err := s.publishBlockers(ctx, event)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

func (s *eventService) Publish(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getOwnedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}
	missing, err := s.publishBlockers(ctx, event)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &domain.PreconditionError{Missing: missing}
	}

	if err := s.eventRepo.SetStatus(ctx, event.ID, domain.EventStatusActive); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set event status: %w", err)
	}
	event.Status = domain.EventStatusActive
	s.notifier.Notify(ctx, domain.Change{Entity: "event", Action: "published", ID: event.ID})
	return event, nil
}

func (s *eventService) getOwnedEvent(ctx context.Context, eventID, organizerID string) (*domain.Event, error) {
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
	return event, nil
}
