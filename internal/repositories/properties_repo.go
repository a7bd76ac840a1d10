package repositories

import (
	"context"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
)

type PropertiesRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type propertiesRepo struct {
	db Database
}

func NewPropertiesRepo(db Database) PropertiesRepository {
	return &propertiesRepo{db: db}
}

func (r *propertiesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, owner_id, name, address, status, rental_type, monthly_rent, daily_rate, created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&property.ID, &property.OwnerID, &property.Name, &property.Address,
		&property.Status, &property.RentalType, &property.MonthlyRent, &property.DailyRate, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertiesRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, address = $2, status = $3, rental_type = $4, monthly_rent = $5, daily_rate = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, property.Name, property.Address, property.Status, property.RentalType,
		property.MonthlyRent, property.DailyRate, property.ID)
	return err
}

func (r *propertiesRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE properties
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *propertiesRepo) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM properties WHERE owner_id = $1`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
