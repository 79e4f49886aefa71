package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Every route except the swagger UI requires a valid bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	venueController *controllers.VenueController,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Venues
	mux.HandleFunc("POST /venues", auth(venueController.CreateVenue))
	mux.HandleFunc("GET /venues", auth(venueController.ListVenues))
	mux.HandleFunc("POST /venues/{venueID}/timeslots", auth(venueController.CreateTimeslot))
	mux.HandleFunc("GET /venues/{venueID}/timeslots", auth(venueController.ListAvailableTimeslots))

	// Events (organizer)
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("PUT /events/{eventID}/timeslot", auth(eventController.AssignTimeslot))
	mux.HandleFunc("DELETE /events/{eventID}/venue", auth(eventController.UnassignVenue))
	mux.HandleFunc("GET /events/{eventID}/publishable", auth(eventController.GetPublishable))
	mux.HandleFunc("POST /events/{eventID}/publish", auth(eventController.Publish))
	mux.HandleFunc("POST /events/{eventID}/speakers", auth(eventController.InviteSpeaker))
	mux.HandleFunc("GET /events/{eventID}/bookings", auth(eventController.ListEventBookings))
	mux.HandleFunc("GET /events/{eventID}/roster", auth(eventController.GetEventRoster))
	mux.HandleFunc("DELETE /speakers/{bookingID}", auth(eventController.RemoveSpeaker))
	mux.HandleFunc("PATCH /bookings/{bookingID}/status", auth(eventController.SetAttendeeStatus))
	mux.HandleFunc("POST /bookings/{bookingID}/reset", auth(eventController.ResetBookingStatus))

	// Attendee
	mux.HandleFunc("GET /attendee/events", auth(attendeeController.ListAvailableEvents))
	mux.HandleFunc("POST /attendee/events/{eventID}/bookings", auth(attendeeController.CreateBooking))
	mux.HandleFunc("GET /attendee/bookings", auth(attendeeController.ListMyBookings))
	mux.HandleFunc("DELETE /attendee/bookings/{bookingID}", auth(attendeeController.CancelBooking))
	mux.HandleFunc("POST /attendee/bookings/{bookingID}/response", auth(attendeeController.RespondToInvitation))
	mux.HandleFunc("GET /attendee/calendar", auth(attendeeController.GetCalendar))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
