package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

type venueRegistry struct {
	venueRepo      domain.VenueRepository
	notifier       domain.ChangeNotifier
	contextTimeout time.Duration
}

// NewVenueRegistry creates a VenueRegistry backed by the given repository.
func NewVenueRegistry(venueRepo domain.VenueRepository, notifier domain.ChangeNotifier, timeout time.Duration) domain.VenueRegistry {
	return &venueRegistry{
		venueRepo:      venueRepo,
		notifier:       notifier,
		contextTimeout: timeout,
	}
}

func (s *venueRegistry) CreateVenue(ctx context.Context, name, address string, capacity int) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: venue name is required", domain.ErrInvalidInput)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", domain.ErrInvalidInput)
	}

	venue := domain.NewVenue(name, strings.TrimSpace(address), capacity, time.Now())
	if err := s.venueRepo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "venue", Action: "created", ID: venue.ID})
	return venue, nil
}

func (s *venueRegistry) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (s *venueRegistry) CreateTimeslot(ctx context.Context, venueID string, start time.Time, durationMinutes int) (*domain.Timeslot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if start.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", domain.ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.venueRepo.GetVenueByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	slot := domain.NewTimeslot(venueID, start, durationMinutes, time.Now())
	if err := s.venueRepo.CreateTimeslot(ctx, slot); err != nil {
		return nil, fmt.Errorf("create timeslot: %w", err)
	}
	s.notifier.Notify(ctx, domain.Change{Entity: "timeslot", Action: "created", ID: slot.ID})
	return slot, nil
}

func (s *venueRegistry) ListAvailableTimeslots(ctx context.Context, venueID string) ([]*domain.Timeslot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.venueRepo.GetVenueByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	slots, err := s.venueRepo.ListAvailableTimeslots(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("list available timeslots: %w", err)
	}
	return slots, nil
}
