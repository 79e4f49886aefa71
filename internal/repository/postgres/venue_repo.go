package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventdesk/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) CreateVenue(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, capacity, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, v.Name, v.Address, v.Capacity, v.CreatedAt).Scan(&v.ID)
}

func (r *venueRepository) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, name, address, capacity, created_at
		FROM venues
		WHERE id = $1
	`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	query := `
		SELECT id, name, address, capacity, created_at
		FROM venues
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) CreateTimeslot(ctx context.Context, slot *domain.Timeslot) error {
	query := `
		INSERT INTO venue_timeslots (venue_id, start_time, end_time, duration_minutes, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		slot.VenueID, slot.StartTime, slot.EndTime, slot.DurationMinutes, slot.IsAvailable, slot.CreatedAt).
		Scan(&slot.ID)
}

func (r *venueRepository) GetTimeslotByID(ctx context.Context, id string) (*domain.Timeslot, error) {
	query := `
		SELECT id, venue_id, start_time, end_time, duration_minutes, is_available, created_at
		FROM venue_timeslots
		WHERE id = $1
	`
	t := &domain.Timeslot{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.VenueID, &t.StartTime, &t.EndTime, &t.DurationMinutes, &t.IsAvailable, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *venueRepository) ListAvailableTimeslots(ctx context.Context, venueID string) ([]*domain.Timeslot, error) {
	query := `
		SELECT id, venue_id, start_time, end_time, duration_minutes, is_available, created_at
		FROM venue_timeslots
		WHERE venue_id = $1 AND is_available = TRUE
		ORDER BY start_time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]*domain.Timeslot, 0)
	for rows.Next() {
		t := &domain.Timeslot{}
		if err := rows.Scan(&t.ID, &t.VenueID, &t.StartTime, &t.EndTime, &t.DurationMinutes, &t.IsAvailable, &t.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, t)
	}
	return slots, rows.Err()
}

// Allocate claims the timeslot for the event in one transaction. The event
// row is locked first so a concurrent reassignment of the same event
// serializes; the conditional update on is_available is the gate that lets
// exactly one of several concurrent claimants of the same slot win.
func (r *venueRepository) Allocate(ctx context.Context, timeslotID, eventID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin allocate tx: %w", err)
	}
	defer tx.Rollback()

	var currentSlot sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT venue_timeslot_id FROM events WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&currentSlot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if currentSlot.Valid && currentSlot.String == timeslotID {
		// Event already holds this slot.
		return nil
	}

	var venueID string
	err = tx.QueryRowContext(ctx,
		`SELECT venue_id FROM venue_timeslots WHERE id = $1`, timeslotID).
		Scan(&venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	// Free the slot the event currently holds. If claiming the new slot
	// fails below, the rollback restores it.
	if currentSlot.Valid {
		if _, err := tx.ExecContext(ctx,
			`UPDATE venue_timeslots SET is_available = TRUE WHERE id = $1`, currentSlot.String); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE venue_timeslots SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`, timeslotID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrTimeslotTaken
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET venue_id = $2, venue_timeslot_id = $3 WHERE id = $1`,
		eventID, venueID, timeslotID); err != nil {
		return err
	}

	return tx.Commit()
}

// Release frees the timeslot and clears the referencing event's venue fields
// in one transaction, so the flag and the reference never disagree.
func (r *venueRepository) Release(ctx context.Context, timeslotID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin release tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET venue_id = NULL, venue_timeslot_id = NULL WHERE venue_timeslot_id = $1`,
		timeslotID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE venue_timeslots SET is_available = TRUE WHERE id = $1`, timeslotID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
