package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/domain"
)

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueRegistry
}

func NewVenueController(logger *slog.Logger, svc domain.VenueRegistry) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateVenueRequest is the request body for POST /venues.
type CreateVenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// Validate implements helpers.Validator.
func (r *CreateVenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	return errs
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue with a name, address, and attendee capacity.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateVenueRequest true "Venue"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	venue, err := c.Service.CreateVenue(r.Context(), req.Name, req.Address, req.Capacity)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// ListVenues godoc
// @Summary List venues
// @Description Returns all venues ordered by name.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := c.Service.ListVenues(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// CreateTimeslotRequest is the request body for POST /venues/{venueID}/timeslots.
type CreateTimeslotRequest struct {
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Validate implements helpers.Validator.
func (r *CreateTimeslotRequest) Validate() []string {
	var errs []string
	if r.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if r.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	return errs
}

// CreateTimeslot godoc
// @Summary Create a bookable timeslot at a venue
// @Description Creates an available timeslot starting at start_time and lasting duration_minutes.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param body body controllers.CreateTimeslotRequest true "Timeslot"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID}/timeslots [post]
func (c *VenueController) CreateTimeslot(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}
	var req CreateTimeslotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	slot, err := c.Service.CreateTimeslot(r.Context(), venueID, req.StartTime, req.DurationMinutes)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// ListAvailableTimeslots godoc
// @Summary List a venue's available timeslots
// @Description Returns the venue's timeslots that are still bookable, ordered by start time ascending.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID}/timeslots [get]
func (c *VenueController) ListAvailableTimeslots(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}

	slots, err := c.Service.ListAvailableTimeslots(r.Context(), venueID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}
