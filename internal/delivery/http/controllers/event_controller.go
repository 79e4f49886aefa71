package controllers

import (
	"log/slog"
	"net/http"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

// EventController serves the organizer-facing event surface: creation,
// content edits, venue/timeslot assignment, publication, and speaker
// management.
type EventController struct {
	Logger   *slog.Logger
	Events   domain.EventService
	Bookings domain.BookingService
	Views    domain.ViewService
}

func NewEventController(logger *slog.Logger, events domain.EventService, bookings domain.BookingService, views domain.ViewService) *EventController {
	return &EventController{
		Logger:   logger,
		Events:   events,
		Bookings: bookings,
		Views:    views,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	MaxAttendees    int      `json:"max_attendees"`
	Tags            []string `json:"tags"`
}

// Validate implements helpers.Validator. The service re-validates; this keeps
// obviously bad requests from reaching it.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if r.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	if r.MaxAttendees <= 0 {
		errs = append(errs, "max_attendees must be positive")
	}
	return errs
}

// CreateEvent godoc
// @Summary Create a draft event
// @Description Creates an event in inactive status with no venue assignment. Title must be at least 3 characters and description at least 10.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	event, err := c.Events.CreateEvent(r.Context(), userID, req.Title, req.Description, req.DurationMinutes, req.MaxAttendees, req.Tags)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListMyEvents godoc
// @Summary List the caller's events
// @Description Returns events organized by the authenticated user, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	events, err := c.Events.ListMyEvents(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
type UpdateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateEvent godoc
// @Summary Update an event's title and description
// @Description Pure content update; has no effect on lifecycle or venue assignment.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.UpdateEventRequest true "New content"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	event, err := c.Events.UpdateDetails(r.Context(), eventID, userID, req.Title, req.Description)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// AssignTimeslotRequest is the request body for PUT /events/{eventID}/timeslot.
type AssignTimeslotRequest struct {
	TimeslotID string `json:"timeslot_id"`
}

// Validate implements helpers.Validator.
func (r *AssignTimeslotRequest) Validate() []string {
	if !uuidRegex.MatchString(r.TimeslotID) {
		return []string{"timeslot_id must be a UUID"}
	}
	return nil
}

// AssignTimeslot godoc
// @Summary Assign a venue timeslot to an event
// @Description Books the timeslot for the event; the venue reference follows from the timeslot. Any slot the event already holds is released in the same transaction. Fails with 409 when the slot was taken by another event.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.AssignTimeslotRequest true "Timeslot to book"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/timeslot [put]
func (c *EventController) AssignTimeslot(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AssignTimeslotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	event, err := c.Events.AssignTimeslot(r.Context(), eventID, userID, req.TimeslotID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UnassignVenue godoc
// @Summary Remove an event's venue and timeslot assignment
// @Description Releases the event's timeslot back to availability and clears both venue references. A no-op when the event has no assignment.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/venue [delete]
func (c *EventController) UnassignVenue(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	event, err := c.Events.UnassignVenue(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// PublishableResponse reports whether an event currently meets the
// publication requirements.
type PublishableResponse struct {
	Publishable bool `json:"publishable"`
}

// GetPublishable godoc
// @Summary Check whether an event can be published
// @Description True when the event has a venue/timeslot assignment and at least one speaker booking.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/publishable [get]
func (c *EventController) GetPublishable(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}

	publishable, err := c.Events.CanPublish(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublishableResponse{Publishable: publishable})
}

// Publish godoc
// @Summary Publish an event
// @Description Flips the event to active, making it publicly bookable. Fails with 422 when the event lacks a timeslot or a speaker; the message names every unmet condition.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: precondition_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/publish [post]
func (c *EventController) Publish(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	event, err := c.Events.Publish(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// InviteSpeakerRequest is the request body for POST /events/{eventID}/speakers.
type InviteSpeakerRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements helpers.Validator.
func (r *InviteSpeakerRequest) Validate() []string {
	if !uuidRegex.MatchString(r.UserID) {
		return []string{"user_id must be a UUID"}
	}
	return nil
}

// InviteSpeaker godoc
// @Summary Invite a user to speak at an event
// @Description Creates a speaker booking for the user, confirmed immediately. Fails with 409 when the user already holds any booking for the event.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.InviteSpeakerRequest true "User to invite"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers [post]
func (c *EventController) InviteSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req InviteSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Bookings.InviteSpeaker(r.Context(), eventID, userID, req.UserID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// RemoveSpeaker godoc
// @Summary Remove a speaker from an event
// @Description Deletes the speaker booking entirely; this is not a status change.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 204 "Removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{bookingID} [delete]
func (c *EventController) RemoveSpeaker(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "bookingID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := c.Bookings.RemoveSpeaker(r.Context(), bookingID, userID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetBookingStatusRequest is the request body for PATCH /bookings/{bookingID}/status.
type SetBookingStatusRequest struct {
	Status domain.RegistrationStatus `json:"status"`
}

// Validate implements helpers.Validator.
func (r *SetBookingStatusRequest) Validate() []string {
	if r.Status != domain.StatusConfirmed && r.Status != domain.StatusDeclined {
		return []string{"status must be confirmed or declined"}
	}
	return nil
}

// SetAttendeeStatus godoc
// @Summary Accept or decline a pending attendee booking
// @Description Organizer-side decision on a pending attendee booking. Only pending bookings can transition.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Param body body controllers.SetBookingStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID}/status [patch]
func (c *EventController) SetAttendeeStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "bookingID")
	if !ok {
		return
	}
	var req SetBookingStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Bookings.SetAttendeeStatus(r.Context(), bookingID, userID, req.Status)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// ResetBookingStatus godoc
// @Summary Reset a booking back to pending
// @Description Moves a confirmed or declined booking back to pending so it can be reconsidered. Resetting an already-pending booking succeeds without change.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID}/reset [post]
func (c *EventController) ResetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "bookingID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Bookings.ResetToPending(r.Context(), bookingID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// ListEventBookings godoc
// @Summary List an event's bookings
// @Description Returns every booking for the event, oldest first. Organizer only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [get]
func (c *EventController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	bookings, err := c.Bookings.ListForEvent(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// GetEventRoster godoc
// @Summary Get an event's booking roster
// @Description Returns the event's bookings grouped into confirmed and awaiting. Organizer only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/roster [get]
func (c *EventController) GetEventRoster(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	roster, err := c.Views.EventRoster(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, roster)
}
