package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

const bookingColumns = `id, event_id, user_id, type, registration_status, created_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.EventID, &b.UserID, &b.Type, &b.RegistrationStatus, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create relies on the unique index over (event_id, user_id) to enforce the
// one-booking-per-user-per-event rule under concurrency.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (event_id, user_id, type, registration_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		b.EventID, b.UserID, b.Type, b.RegistrationStatus, b.CreatedAt).
		Scan(&b.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1 AND user_id = $2
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *bookingRepository) list(ctx context.Context, query string, arg any) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus is a conditional write: the row must still hold from, so two
// racing transitions cannot both apply.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RegistrationStatus) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET registration_status = $3 WHERE id = $1 AND registration_status = $2`,
		id, from, to)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) CountByEventAndType(ctx context.Context, eventID string, bookingType domain.BookingType) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND type = $2`,
		eventID, bookingType).
		Scan(&count)
	return count, err
}

func (r *bookingRepository) ListDetailedByUserID(ctx context.Context, userID string, status domain.RegistrationStatus, scheduledOnly bool) ([]*domain.BookingDetail, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.type, b.registration_status, b.created_at,
		       e.id, e.organizer_id, e.title, e.description, e.duration_minutes, e.max_attendees, e.status, e.venue_id, e.venue_timeslot_id, e.tags, e.created_at,
		       v.id, v.name, v.address, v.capacity, v.created_at,
		       t.id, t.venue_id, t.start_time, t.end_time, t.duration_minutes, t.is_available, t.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		LEFT JOIN venues v ON v.id = e.venue_id
		LEFT JOIN venue_timeslots t ON t.id = e.venue_timeslot_id
		WHERE b.user_id = $1
	`
	args := []any{userID}
	if status != "" {
		args = append(args, status)
		query += ` AND b.registration_status = $2`
	}
	if scheduledOnly {
		query += ` AND e.venue_timeslot_id IS NOT NULL`
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.BookingDetail, 0)
	for rows.Next() {
		b := &domain.Booking{}
		e := &domain.Event{}
		var venueRef, slotRef sql.NullString
		var tags string
		var vID, vName, vAddress sql.NullString
		var vCapacity sql.NullInt64
		var vCreatedAt sql.NullTime
		var tID, tVenueID sql.NullString
		var tStart, tEnd, tCreatedAt sql.NullTime
		var tDuration sql.NullInt64
		var tAvailable sql.NullBool

		err := rows.Scan(
			&b.ID, &b.EventID, &b.UserID, &b.Type, &b.RegistrationStatus, &b.CreatedAt,
			&e.ID, &e.OrganizerID, &e.Title, &e.Description, &e.DurationMinutes, &e.MaxAttendees, &e.Status, &venueRef, &slotRef, &tags, &e.CreatedAt,
			&vID, &vName, &vAddress, &vCapacity, &vCreatedAt,
			&tID, &tVenueID, &tStart, &tEnd, &tDuration, &tAvailable, &tCreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if venueRef.Valid && slotRef.Valid {
			e.Venue = &domain.VenueAssignment{VenueID: venueRef.String, TimeslotID: slotRef.String}
		}
		e.Tags = splitTags(tags)

		detail := &domain.BookingDetail{Booking: b, Event: e}
		if vID.Valid {
			detail.Venue = &domain.Venue{
				ID:        vID.String,
				Name:      vName.String,
				Address:   vAddress.String,
				Capacity:  int(vCapacity.Int64),
				CreatedAt: vCreatedAt.Time,
			}
		}
		if tID.Valid {
			detail.Timeslot = &domain.Timeslot{
				ID:              tID.String,
				VenueID:         tVenueID.String,
				StartTime:       tStart.Time,
				EndTime:         tEnd.Time,
				DurationMinutes: int(tDuration.Int64),
				IsAvailable:     tAvailable.Bool,
				CreatedAt:       tCreatedAt.Time,
			}
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}
