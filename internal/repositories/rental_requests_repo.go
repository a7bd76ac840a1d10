package repositories

import (
	"context"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserProperty keys an approved rental request to the tenancy it backs.
type UserProperty struct {
	UserID     uuid.UUID
	PropertyID uuid.UUID
}

type RentalRequestsRepository interface {
	// GetLatestApproved returns the most recently created Approved request
	// for the pair, or nil when none exists.
	GetLatestApproved(ctx context.Context, userID, propertyID uuid.UUID) (*models.RentalRequest, error)
	// BatchLatestApproved resolves the latest Approved request for every
	// pair in one round trip. Pairs with no approved request are absent
	// from the result map.
	BatchLatestApproved(ctx context.Context, pairs []UserProperty) (map[UserProperty]*models.RentalRequest, error)
	ListApprovedOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.RentalRequest, error)
}

type rentalRequestsRepo struct {
	db Database
}

func NewRentalRequestsRepo(db Database) RentalRequestsRepository {
	return &rentalRequestsRepo{db: db}
}

const rentalRequestColumns = `id, user_id, property_id, proposed_start_date, proposed_end_date, lease_duration_months, status, created_at`

func scanRentalRequest(row interface{ Scan(dest ...any) error }) (*models.RentalRequest, error) {
	request := &models.RentalRequest{}
	err := row.Scan(&request.ID, &request.UserID, &request.PropertyID, &request.ProposedStartDate,
		&request.ProposedEndDate, &request.LeaseDurationMonths, &request.Status, &request.CreatedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *rentalRequestsRepo) GetLatestApproved(ctx context.Context, userID, propertyID uuid.UUID) (*models.RentalRequest, error) {
	query := `
		SELECT ` + rentalRequestColumns + `
		FROM rental_requests
		WHERE user_id = $1 AND property_id = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	request, err := scanRentalRequest(r.db.QueryRow(ctx, query, userID, propertyID, models.RentalRequestStatusApproved))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return request, nil
}

func (r *rentalRequestsRepo) BatchLatestApproved(ctx context.Context, pairs []UserProperty) (map[UserProperty]*models.RentalRequest, error) {
	result := make(map[UserProperty]*models.RentalRequest, len(pairs))
	if len(pairs) == 0 {
		return result, nil
	}

	userIDs := make([]uuid.UUID, len(pairs))
	propertyIDs := make([]uuid.UUID, len(pairs))
	for i, pair := range pairs {
		userIDs[i] = pair.UserID
		propertyIDs[i] = pair.PropertyID
	}

	query := `
		SELECT DISTINCT ON (user_id, property_id) ` + rentalRequestColumns + `
		FROM rental_requests
		WHERE status = $1 AND (user_id, property_id) IN (
			SELECT u, p FROM unnest($2::uuid[], $3::uuid[]) AS pairs(u, p)
		)
		ORDER BY user_id, property_id, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, models.RentalRequestStatusApproved, userIDs, propertyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		request, err := scanRentalRequest(rows)
		if err != nil {
			return nil, err
		}
		result[UserProperty{UserID: request.UserID, PropertyID: request.PropertyID}] = request
	}
	return result, rows.Err()
}

func (r *rentalRequestsRepo) ListApprovedOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.RentalRequest, error) {
	query := `
		SELECT ` + rentalRequestColumns + `
		FROM rental_requests
		WHERE property_id = $1 AND status = $2
		  AND proposed_start_date < $3 AND proposed_end_date > $4
	`
	rows, err := r.db.Query(ctx, query, propertyID, models.RentalRequestStatusApproved, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.RentalRequest
	for rows.Next() {
		request, err := scanRentalRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
