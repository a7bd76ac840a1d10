package repositories

import (
	"context"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
)

type BookingsRepository interface {
	// ListOverlapping returns every non-cancelled booking that overlaps the
	// half-open interval [start, end). A booking with no end date is
	// treated as extending indefinitely.
	ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.Booking, error)
	HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error)
}

type bookingsRepo struct {
	db Database
}

func NewBookingsRepo(db Database) BookingsRepository {
	return &bookingsRepo{db: db}
}

// Half-open overlap: existing.start < end AND (existing.end IS NULL OR
// existing.end > start). A booking ending exactly at start does not
// conflict, so same-day handoffs are legal.
const bookingOverlapCondition = `start_date < $2 AND (end_date IS NULL OR end_date > $3)`

func (r *bookingsRepo) ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.Booking, error) {
	query := `
		SELECT id, property_id, user_id, start_date, end_date, status, total_price, created_at
		FROM bookings
		WHERE property_id = $1 AND status != $4 AND ` + bookingOverlapCondition + `
		ORDER BY start_date
	`
	rows, err := r.db.Query(ctx, query, propertyID, end, start, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(&booking.ID, &booking.PropertyID, &booking.UserID, &booking.StartDate,
			&booking.EndDate, &booking.Status, &booking.TotalPrice, &booking.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingsRepo) HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1 AND status != $4 AND ` + bookingOverlapCondition + `
		)
	`
	err := r.db.QueryRow(ctx, query, propertyID, end, start, models.BookingStatusCancelled).Scan(&exists)
	return exists, err
}
