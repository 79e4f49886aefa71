package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

func TestVenueController_CreateVenue(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "created",
			body:       `{"name":"Main Hall","address":"1 Center St","capacity":200}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "name is required",
			body:        `{"name":"  ","capacity":200}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "negative capacity",
			body:        `{"name":"Main Hall","capacity":-1}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "service error",
			body:        `{"name":"Main Hall","capacity":200}`,
			serviceErr:  domain.ErrInvalidInput,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &fakeVenueRegistry{
				err:   tt.serviceErr,
				venue: &domain.Venue{ID: venueUUID, Name: "Main Hall", Address: "1 Center St", Capacity: 200},
			}
			c := NewVenueController(testLogger, registry)

			req := newAuthedRequest(http.MethodPost, "/venues", tt.body)
			rr := httptest.NewRecorder()
			c.CreateVenue(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantErrCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)

			data, err := json.Marshal(envelope.Data)
			require.NoError(t, err)
			var got domain.Venue
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, venueUUID, got.ID)
		})
	}
}

func TestVenueController_CreateTimeslot(t *testing.T) {
	start := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		registry := &fakeVenueRegistry{slot: &domain.Timeslot{
			ID:              slotUUID,
			VenueID:         venueUUID,
			StartTime:       start,
			EndTime:         start.Add(90 * time.Minute),
			DurationMinutes: 90,
			IsAvailable:     true,
		}}
		c := NewVenueController(testLogger, registry)

		req := newAuthedRequest(http.MethodPost, "/venues/"+venueUUID+"/timeslots", `{"start_time":"2026-10-01T18:00:00Z","duration_minutes":90}`)
		req.SetPathValue("venueID", venueUUID)
		rr := httptest.NewRecorder()
		c.CreateTimeslot(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		assert.Equal(t, venueUUID, registry.lastVenueID)

		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var got domain.Timeslot
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, got.IsAvailable)
		assert.True(t, got.EndTime.Equal(start.Add(90*time.Minute)))
	})

	t.Run("missing start time", func(t *testing.T) {
		c := NewVenueController(testLogger, &fakeVenueRegistry{})

		req := newAuthedRequest(http.MethodPost, "/venues/"+venueUUID+"/timeslots", `{"duration_minutes":90}`)
		req.SetPathValue("venueID", venueUUID)
		rr := httptest.NewRecorder()
		c.CreateTimeslot(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
	})

	t.Run("invalid venue id", func(t *testing.T) {
		c := NewVenueController(testLogger, &fakeVenueRegistry{})

		req := newAuthedRequest(http.MethodPost, "/venues/xyz/timeslots", `{"start_time":"2026-10-01T18:00:00Z","duration_minutes":90}`)
		req.SetPathValue("venueID", "xyz")
		rr := httptest.NewRecorder()
		c.CreateTimeslot(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Contains(t, envelope.Error.Message, "venueID")
	})

	t.Run("unknown venue", func(t *testing.T) {
		c := NewVenueController(testLogger, &fakeVenueRegistry{err: domain.ErrNotFound})

		req := newAuthedRequest(http.MethodPost, "/venues/"+venueUUID+"/timeslots", `{"start_time":"2026-10-01T18:00:00Z","duration_minutes":90}`)
		req.SetPathValue("venueID", venueUUID)
		rr := httptest.NewRecorder()
		c.CreateTimeslot(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestVenueController_ListAvailableTimeslots(t *testing.T) {
	start := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	registry := &fakeVenueRegistry{slots: []*domain.Timeslot{
		{ID: slotUUID, VenueID: venueUUID, StartTime: start, IsAvailable: true},
	}}
	c := NewVenueController(testLogger, registry)

	req := newAuthedRequest(http.MethodGet, "/venues/"+venueUUID+"/timeslots", "")
	req.SetPathValue("venueID", venueUUID)
	rr := httptest.NewRecorder()
	c.ListAvailableTimeslots(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var got []*domain.Timeslot
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, slotUUID, got[0].ID)
}
