package repositories

import (
	"context"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
)

type BlockedPeriodsRepository interface {
	// ListOverlapping returns every blocked period (is_available = false)
	// that overlaps the half-open interval [start, end).
	ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.BlockedPeriod, error)
	HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error)
}

type blockedPeriodsRepo struct {
	db Database
}

func NewBlockedPeriodsRepo(db Database) BlockedPeriodsRepository {
	return &blockedPeriodsRepo{db: db}
}

const blockedOverlapCondition = `start_date < $2 AND (end_date IS NULL OR end_date > $3)`

func (r *blockedPeriodsRepo) ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.BlockedPeriod, error) {
	query := `
		SELECT id, property_id, start_date, end_date, is_available, reason, created_at
		FROM blocked_periods
		WHERE property_id = $1 AND is_available = false AND ` + blockedOverlapCondition + `
		ORDER BY start_date
	`
	rows, err := r.db.Query(ctx, query, propertyID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*models.BlockedPeriod
	for rows.Next() {
		period := &models.BlockedPeriod{}
		if err := rows.Scan(&period.ID, &period.PropertyID, &period.StartDate, &period.EndDate,
			&period.IsAvailable, &period.Reason, &period.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (r *blockedPeriodsRepo) HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocked_periods
			WHERE property_id = $1 AND is_available = false AND ` + blockedOverlapCondition + `
		)
	`
	err := r.db.QueryRow(ctx, query, propertyID, end, start).Scan(&exists)
	return exists, err
}
