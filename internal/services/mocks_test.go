package services

import (
	"context"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"
	"github.com/kenancosic/eRents-sub000/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories shared by the service test suites.

type MockTenantsRepository struct {
	mock.Mock
}

func (m *MockTenantsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantsRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantsRepository) ListActive(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantsRepository) ListActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantsRepository) ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Tenant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantsRepository) ExistsActiveByProperty(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, propertyID)
	return args.Bool(0), args.Error(1)
}

type MockPropertiesRepository struct {
	mock.Mock
}

func (m *MockPropertiesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertiesRepository) Update(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertiesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPropertiesRepository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockRentalRequestsRepository struct {
	mock.Mock
}

func (m *MockRentalRequestsRepository) GetLatestApproved(ctx context.Context, userID, propertyID uuid.UUID) (*models.RentalRequest, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentalRequest), args.Error(1)
}

func (m *MockRentalRequestsRepository) BatchLatestApproved(ctx context.Context, pairs []repositories.UserProperty) (map[repositories.UserProperty]*models.RentalRequest, error) {
	args := m.Called(ctx, pairs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[repositories.UserProperty]*models.RentalRequest), args.Error(1)
}

func (m *MockRentalRequestsRepository) ListApprovedOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.RentalRequest, error) {
	args := m.Called(ctx, propertyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentalRequest), args.Error(1)
}

type MockBookingsRepository struct {
	mock.Mock
}

func (m *MockBookingsRepository) ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, propertyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingsRepository) HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, propertyID, start, end)
	return args.Bool(0), args.Error(1)
}

type MockBlockedPeriodsRepository struct {
	mock.Mock
}

func (m *MockBlockedPeriodsRepository) ListOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) ([]*models.BlockedPeriod, error) {
	args := m.Called(ctx, propertyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlockedPeriod), args.Error(1)
}

func (m *MockBlockedPeriodsRepository) HasOverlapping(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, propertyID, start, end)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, referenceID *uuid.UUID) error {
	args := m.Called(ctx, userID, title, message, notificationType, referenceID)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetExpirationSummary(ctx context.Context) (*models.ExpirationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExpirationSummary), args.Error(1)
}

func (m *MockCacheService) SetExpirationSummary(ctx context.Context, summary *models.ExpirationSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteExpirationSummary(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetLeaseStatistics(ctx context.Context, ownerID uuid.UUID) (*models.LeaseStatistics, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaseStatistics), args.Error(1)
}

func (m *MockCacheService) SetLeaseStatistics(ctx context.Context, ownerID uuid.UUID, stats *models.LeaseStatistics, ttl time.Duration) error {
	args := m.Called(ctx, ownerID, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteLeaseStatistics(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Helpers for building pointer-typed fixtures.

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}
