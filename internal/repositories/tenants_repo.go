package repositories

import (
	"context"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
)

type TenantsRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	// ListActive returns every Active tenancy that has a lease start date.
	ListActive(ctx context.Context) ([]*models.Tenant, error)
	ListActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error)
	ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error)
	ExistsActiveByProperty(ctx context.Context, propertyID uuid.UUID) (bool, error)
}

type tenantsRepo struct {
	db Database
}

func NewTenantsRepo(db Database) TenantsRepository {
	return &tenantsRepo{db: db}
}

const tenantColumns = `id, user_id, property_id, lease_start_date, lease_end_date, status, created_at, updated_at`

func scanTenant(row interface{ Scan(dest ...any) error }) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.UserID, &tenant.PropertyID, &tenant.LeaseStartDate,
		&tenant.LeaseEndDate, &tenant.Status, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.db.QueryRow(ctx, query, id))
}

func (r *tenantsRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET lease_start_date = $1, lease_end_date = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, tenant.LeaseStartDate, tenant.LeaseEndDate, tenant.Status, tenant.ID)
	return err
}

func (r *tenantsRepo) ListActive(ctx context.Context) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE status = $1 AND lease_start_date IS NOT NULL
		ORDER BY lease_start_date
	`
	return r.queryTenants(ctx, query, models.TenantStatusActive)
}

func (r *tenantsRepo) ListActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE property_id = $1 AND status = $2
	`
	return r.queryTenants(ctx, query, propertyID, models.TenantStatusActive)
}

func (r *tenantsRepo) ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT t.id, t.user_id, t.property_id, t.lease_start_date, t.lease_end_date, t.status, t.created_at, t.updated_at
		FROM tenants t
		JOIN properties p ON p.id = t.property_id
		WHERE p.owner_id = $1 AND t.status = $2
	`
	return r.queryTenants(ctx, query, ownerID, models.TenantStatusActive)
}

func (r *tenantsRepo) ExistsActiveByProperty(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tenants WHERE property_id = $1 AND status = $2)`
	err := r.db.QueryRow(ctx, query, propertyID, models.TenantStatusActive).Scan(&exists)
	return exists, err
}

func (r *tenantsRepo) queryTenants(ctx context.Context, query string, args ...interface{}) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
