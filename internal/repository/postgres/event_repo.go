package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"eventdesk/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, organizer_id, title, description, duration_minutes, max_attendees, status, venue_id, venue_timeslot_id, tags, created_at`

// scanEvent reads one event row. venue_id and venue_timeslot_id are set
// together or not at all; a row where they disagree would violate the
// allocation invariant, so both must be valid for an assignment to surface.
func scanEvent(row interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var venueID, timeslotID sql.NullString
	var tags string
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.DurationMinutes,
		&e.MaxAttendees, &e.Status, &venueID, &timeslotID, &tags, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if venueID.Valid && timeslotID.Valid {
		e.Venue = &domain.VenueAssignment{VenueID: venueID.String, TimeslotID: timeslotID.String}
	}
	e.Tags = splitTags(tags)
	return e, nil
}

// Tags persist as a comma-joined list in a single text column.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, title, description, duration_minutes, max_attendees, status, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizerID, e.Title, e.Description, e.DurationMinutes, e.MaxAttendees,
		e.Status, joinTags(e.Tags), e.CreatedAt).
		Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) UpdateDetails(ctx context.Context, id, title, description string) (*domain.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING ` + eventColumns + `
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, title, description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) SetStatus(ctx context.Context, id string, status domain.EventStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE events SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListActiveNotBookedBy(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM events e
		WHERE e.status = 'active'
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.event_id = e.id AND b.user_id = $1)
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.status = 'active'
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.event_id = e.id AND b.user_id = $1)
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}
