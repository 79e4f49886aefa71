package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventdesk/internal/domain"
)

// memStore is a shared in-memory backing store so the repo fakes see each
// other's writes, the same way the real repos share one database.
type memStore struct {
	mu       sync.Mutex
	seq      int
	venues   map[string]*domain.Venue
	slots    map[string]*domain.Timeslot
	events   map[string]*domain.Event
	bookings map[string]*domain.Booking
}

func newMemStore() *memStore {
	return &memStore{
		venues:   map[string]*domain.Venue{},
		slots:    map[string]*domain.Timeslot{},
		events:   map[string]*domain.Event{},
		bookings: map[string]*domain.Booking{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type memVenueRepo struct{ store *memStore }

func (r *memVenueRepo) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	venue.ID = r.store.nextID("venue")
	r.store.venues[venue.ID] = venue
	return nil
}

func (r *memVenueRepo) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *memVenueRepo) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*domain.Venue, 0, len(r.store.venues))
	for _, v := range r.store.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memVenueRepo) CreateTimeslot(ctx context.Context, slot *domain.Timeslot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot.ID = r.store.nextID("slot")
	r.store.slots[slot.ID] = slot
	return nil
}

func (r *memVenueRepo) GetTimeslotByID(ctx context.Context, id string) (*domain.Timeslot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memVenueRepo) ListAvailableTimeslots(ctx context.Context, venueID string) ([]*domain.Timeslot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Timeslot
	for _, s := range r.store.slots {
		if s.VenueID == venueID && s.IsAvailable {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memVenueRepo) Allocate(ctx context.Context, timeslotID, eventID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	slot, ok := r.store.slots[timeslotID]
	if !ok {
		return domain.ErrNotFound
	}
	if event.Venue != nil && event.Venue.TimeslotID == timeslotID {
		return nil
	}
	if !slot.IsAvailable {
		return domain.ErrTimeslotTaken
	}
	if event.Venue != nil {
		if old, ok := r.store.slots[event.Venue.TimeslotID]; ok {
			old.IsAvailable = true
		}
	}
	slot.IsAvailable = false
	event.Venue = &domain.VenueAssignment{VenueID: slot.VenueID, TimeslotID: slot.ID}
	return nil
}

func (r *memVenueRepo) Release(ctx context.Context, timeslotID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[timeslotID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.store.events {
		if e.Venue != nil && e.Venue.TimeslotID == timeslotID {
			e.Venue = nil
		}
	}
	slot.IsAvailable = true
	return nil
}

type memEventRepo struct{ store *memStore }

func (r *memEventRepo) Create(ctx context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event.ID = r.store.nextID("event")
	r.store.events[event.ID] = event
	return nil
}

func (r *memEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *memEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.store.events {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memEventRepo) UpdateDetails(ctx context.Context, id, title, description string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Title = title
	e.Description = description
	return e, nil
}

func (r *memEventRepo) SetStatus(ctx context.Context, id string, status domain.EventStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

func (r *memEventRepo) ListActiveNotBookedBy(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booked := map[string]bool{}
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			booked[b.EventID] = true
		}
	}
	var all []*domain.Event
	for _, e := range r.store.events {
		if e.Status == domain.EventStatusActive && !booked[e.ID] {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.Limit()
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type memBookingRepo struct{ store *memStore }

func (r *memBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.EventID == booking.EventID && b.UserID == booking.UserID {
			return domain.ErrDuplicateBooking
		}
	}
	booking.ID = r.store.nextID("booking")
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *memBookingRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.EventID == eventID && b.UserID == userID {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.store.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memBookingRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.RegistrationStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok || b.RegistrationStatus != from {
		return domain.ErrNotFound
	}
	b.RegistrationStatus = to
	return nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.bookings, id)
	return nil
}

func (r *memBookingRepo) CountByEventAndType(ctx context.Context, eventID string, bookingType domain.BookingType) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, b := range r.store.bookings {
		if b.EventID == eventID && b.Type == bookingType {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) ListDetailedByUserID(ctx context.Context, userID string, status domain.RegistrationStatus, scheduledOnly bool) ([]*domain.BookingDetail, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.BookingDetail
	for _, b := range r.store.bookings {
		if b.UserID != userID {
			continue
		}
		if status != "" && b.RegistrationStatus != status {
			continue
		}
		event, ok := r.store.events[b.EventID]
		if !ok {
			continue
		}
		if scheduledOnly && event.Venue == nil {
			continue
		}
		detail := &domain.BookingDetail{Booking: b, Event: event}
		if event.Venue != nil {
			detail.Venue = r.store.venues[event.Venue.VenueID]
			detail.Timeslot = r.store.slots[event.Venue.TimeslotID]
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Booking.CreatedAt.After(out[j].Booking.CreatedAt) })
	return out, nil
}

// recordNotifier collects every change it sees.
type recordNotifier struct {
	mu      sync.Mutex
	changes []domain.Change
}

func (n *recordNotifier) Notify(ctx context.Context, change domain.Change) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

func (n *recordNotifier) has(entity, action string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.changes {
		if c.Entity == entity && c.Action == action {
			return true
		}
	}
	return false
}

// fixture wires the fakes into real services over one shared store.
type fixture struct {
	store    *memStore
	venues   *memVenueRepo
	events   *memEventRepo
	bookings *memBookingRepo
	notifier *recordNotifier

	registry domain.VenueRegistry
	event    domain.EventService
	booking  domain.BookingService
	views    domain.ViewService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:    store,
		venues:   &memVenueRepo{store: store},
		events:   &memEventRepo{store: store},
		bookings: &memBookingRepo{store: store},
		notifier: &recordNotifier{},
	}
	f.registry = NewVenueRegistry(f.venues, f.notifier, time.Second)
	f.event = NewEventService(f.events, f.venues, f.bookings, f.notifier, time.Second)
	f.booking = NewBookingService(f.bookings, f.events, f.notifier, time.Second)
	f.views = NewViewService(f.events, f.bookings, time.Second)
	return f
}
