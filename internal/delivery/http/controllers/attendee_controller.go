package controllers

import (
	"log/slog"
	"net/http"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// AttendeeController serves the attendee-facing surface: discovering active
// events, self-booking, cancellation, the personal booking list, the
// confirmed-bookings calendar, and speaker invitation responses.
type AttendeeController struct {
	Logger   *slog.Logger
	Bookings domain.BookingService
	Views    domain.ViewService
}

func NewAttendeeController(logger *slog.Logger, bookings domain.BookingService, views domain.ViewService) *AttendeeController {
	return &AttendeeController{
		Logger:   logger,
		Bookings: bookings,
		Views:    views,
	}
}

// AvailableEventsResponse is one page of bookable events with pagination metadata.
type AvailableEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListAvailableEvents godoc
// @Summary List events the caller can book
// @Description Returns active events the caller holds no booking for, in any status or role, newest first. Supports page and page_size query parameters.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/events [get]
func (c *AttendeeController) ListAvailableEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)

	page, err := c.Views.AvailableEventsFor(r.Context(), userID, params)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailableEventsResponse{
		Events:     page.Events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, page.Total),
	})
}

// CreateBooking godoc
// @Summary Book a place at an event
// @Description Creates an attendee booking for the caller, starting in pending status until the organizer decides. Fails with 409 when the caller already holds a booking for the event.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/events/{eventID}/bookings [post]
func (c *AttendeeController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Bookings.CreateAttendeeBooking(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary Cancel the caller's attendee booking
// @Description Deletes the booking outright, freeing the caller to book the event again later.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 204 "Cancelled"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/bookings/{bookingID} [delete]
func (c *AttendeeController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "bookingID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Bookings.CancelAttendeeBooking(r.Context(), bookingID, userID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMyBookings godoc
// @Summary List the caller's bookings
// @Description Returns every booking the caller holds, in any status, joined with event and venue detail, newest first.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/bookings [get]
func (c *AttendeeController) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	bookings, err := c.Bookings.ListForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// GetCalendar godoc
// @Summary Get the caller's confirmed-booking calendar
// @Description Returns the caller's confirmed bookings whose events are scheduled, with venue and timeslot detail. Bookings for unscheduled events are omitted from the view but remain in the ledger.
// @Tags attendee
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/calendar [get]
func (c *AttendeeController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	bookings, err := c.Views.ConfirmedBookingsFor(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// SpeakerResponseRequest is the request body for POST /attendee/bookings/{bookingID}/response.
type SpeakerResponseRequest struct {
	Accept *bool `json:"accept"`
}

// Validate implements helpers.Validator.
func (r *SpeakerResponseRequest) Validate() []string {
	if r.Accept == nil {
		return []string{"accept is required"}
	}
	return nil
}

// RespondToInvitation godoc
// @Summary Accept or decline a speaker invitation
// @Description The invited user's answer to a pending speaker booking. Only pending invitations can be answered; answering one already decided fails with 409.
// @Tags attendee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Param body body controllers.SpeakerResponseRequest true "Response"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendee/bookings/{bookingID}/response [post]
func (c *AttendeeController) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "bookingID")
	if !ok {
		return
	}
	var req SpeakerResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Bookings.RespondAsSpeaker(r.Context(), bookingID, userID, *req.Accept)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}
