package notify

import (
	"context"
	"log/slog"
	"time"

	"eventdesk/internal/domain"
)

// RecipientResolver maps a user ID onto the email address notifications for
// that user should go to. Identity lives outside this service, so the caller
// decides how addresses are found.
type RecipientResolver func(ctx context.Context, userID string) (string, error)

const dispatchTimeout = 10 * time.Second

// Dispatcher is a ChangeNotifier that turns publication and booking
// confirmation changes into emails. All other changes are logged and dropped.
type Dispatcher struct {
	logger        *slog.Logger
	events        domain.EventRepository
	bookings      domain.BookingRepository
	venues        domain.VenueRepository
	email         domain.EmailService
	resolve       RecipientResolver
	shareLinkBase string
}

func NewDispatcher(
	logger *slog.Logger,
	events domain.EventRepository,
	bookings domain.BookingRepository,
	venues domain.VenueRepository,
	email domain.EmailService,
	resolve RecipientResolver,
	shareLinkBase string,
) *Dispatcher {
	return &Dispatcher{
		logger:        logger,
		events:        events,
		bookings:      bookings,
		venues:        venues,
		email:         email,
		resolve:       resolve,
		shareLinkBase: shareLinkBase,
	}
}

// Notify implements domain.ChangeNotifier. Dispatch runs in a goroutine with
// its own context so a slow mail provider never delays the mutation that
// triggered it.
func (d *Dispatcher) Notify(ctx context.Context, change domain.Change) {
	d.logger.DebugContext(ctx, "change", "entity", change.Entity, "action", change.Action, "id", change.ID)

	switch {
	case change.Entity == "event" && change.Action == "published":
		go d.dispatchEventPublished(change.ID)
	case change.Entity == "booking" && (change.Action == "created" || change.Action == "updated"):
		go d.dispatchBookingConfirmed(change.ID)
	}
}

func (d *Dispatcher) dispatchEventPublished(eventID string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	event, err := d.events.GetByID(ctx, eventID)
	if err != nil {
		d.logger.Error("dispatch event published: get event", "event_id", eventID, "err", err)
		return
	}
	to, err := d.resolve(ctx, event.OrganizerID)
	if err != nil {
		d.logger.Error("dispatch event published: resolve recipient", "user_id", event.OrganizerID, "err", err)
		return
	}
	data := &domain.EventPublishedEmailData{
		Email:       to,
		Title:       event.Title,
		Description: event.Description,
		Tags:        event.Tags,
		ShareLink:   d.shareLinkBase + "/" + event.ID,
	}
	if err := d.email.SendEventPublished(ctx, data); err != nil {
		d.logger.Error("dispatch event published: send", "event_id", eventID, "err", err)
	}
}

func (d *Dispatcher) dispatchBookingConfirmed(bookingID string) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	booking, err := d.bookings.GetByID(ctx, bookingID)
	if err != nil {
		d.logger.Error("dispatch booking confirmed: get booking", "booking_id", bookingID, "err", err)
		return
	}
	if booking.RegistrationStatus != domain.StatusConfirmed {
		return
	}
	event, err := d.events.GetByID(ctx, booking.EventID)
	if err != nil {
		d.logger.Error("dispatch booking confirmed: get event", "event_id", booking.EventID, "err", err)
		return
	}
	to, err := d.resolve(ctx, booking.UserID)
	if err != nil {
		d.logger.Error("dispatch booking confirmed: resolve recipient", "user_id", booking.UserID, "err", err)
		return
	}
	data := &domain.BookingConfirmedEmailData{
		Email:      to,
		EventTitle: event.Title,
	}
	if event.Venue != nil {
		if venue, err := d.venues.GetVenueByID(ctx, event.Venue.VenueID); err == nil {
			data.VenueName = venue.Name
		}
		if slot, err := d.venues.GetTimeslotByID(ctx, event.Venue.TimeslotID); err == nil {
			data.StartTime = slot.StartTime
		}
	}
	if err := d.email.SendBookingConfirmed(ctx, data); err != nil {
		d.logger.Error("dispatch booking confirmed: send", "booking_id", bookingID, "err", err)
	}
}
