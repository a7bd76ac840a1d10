package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AvailabilityServiceTestSuite struct {
	suite.Suite
	propertiesRepo     *MockPropertiesRepository
	tenantsRepo        *MockTenantsRepository
	rentalRequestsRepo *MockRentalRequestsRepository
	bookingsRepo       *MockBookingsRepository
	blockedPeriodsRepo *MockBlockedPeriodsRepository
	svc                *availabilityService
	ctx                context.Context

	propertyID uuid.UUID
	start      time.Time
	end        time.Time
}

func (suite *AvailabilityServiceTestSuite) SetupTest() {
	suite.propertiesRepo = new(MockPropertiesRepository)
	suite.tenantsRepo = new(MockTenantsRepository)
	suite.rentalRequestsRepo = new(MockRentalRequestsRepository)
	suite.bookingsRepo = new(MockBookingsRepository)
	suite.blockedPeriodsRepo = new(MockBlockedPeriodsRepository)
	suite.ctx = context.Background()

	calculator := &leaseCalculator{
		tenantsRepo:        suite.tenantsRepo,
		rentalRequestsRepo: suite.rentalRequestsRepo,
		propertiesRepo:     suite.propertiesRepo,
		now:                func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) },
	}
	suite.svc = &availabilityService{
		calculator:         calculator,
		propertiesRepo:     suite.propertiesRepo,
		tenantsRepo:        suite.tenantsRepo,
		rentalRequestsRepo: suite.rentalRequestsRepo,
		bookingsRepo:       suite.bookingsRepo,
		blockedPeriodsRepo: suite.blockedPeriodsRepo,
	}

	suite.propertyID = uuid.New()
	suite.start = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
}

func TestAvailabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityServiceTestSuite))
}

func (suite *AvailabilityServiceTestSuite) property(rentalType string) *models.Property {
	return &models.Property{
		ID:         suite.propertyID,
		OwnerID:    uuid.New(),
		Name:       "Seafront studio",
		Status:     models.PropertyStatusAvailable,
		RentalType: rentalType,
	}
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_Available() {
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeDaily), nil)
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{}, nil)
	suite.rentalRequestsRepo.On("ListApprovedOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.RentalRequest{}, nil)
	suite.bookingsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)

	assert.True(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_WrongRentalType() {
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeMonthly), nil)

	assert.False(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
	suite.bookingsRepo.AssertNotCalled(suite.T(), "HasOverlapping")
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_LeaseEndingAtStartDoesNotConflict() {
	// Half-open intervals: a lease ending exactly on the requested start day
	// leaves that day free.
	tenant := &models.Tenant{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		PropertyID:     suite.propertyID,
		LeaseStartDate: datePtr(2024, time.March, 5),
		LeaseEndDate:   datePtr(2025, time.March, 5),
		Status:         models.TenantStatusActive,
	}
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeDaily), nil)
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{tenant}, nil)
	suite.rentalRequestsRepo.On("ListApprovedOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.RentalRequest{}, nil)
	suite.bookingsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)

	assert.True(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_OverlappingLeaseBlocks() {
	tenant := &models.Tenant{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		PropertyID:     suite.propertyID,
		LeaseStartDate: datePtr(2024, time.June, 1),
		LeaseEndDate:   datePtr(2025, time.June, 1),
		Status:         models.TenantStatusActive,
	}
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeDaily), nil)
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{tenant}, nil)

	assert.False(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
	suite.bookingsRepo.AssertNotCalled(suite.T(), "HasOverlapping")
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_FallbackTermStillBlocks() {
	// No explicit end, no approved request: the 12-month fallback applies
	// from the lease start, which still covers the requested window.
	tenant := &models.Tenant{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		PropertyID:     suite.propertyID,
		LeaseStartDate: datePtr(2024, time.September, 1),
		Status:         models.TenantStatusActive,
	}
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeDaily), nil)
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{tenant}, nil)
	suite.rentalRequestsRepo.On("GetLatestApproved", suite.ctx, tenant.UserID, suite.propertyID).Return(nil, nil)

	assert.False(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestDailyRental_FailsClosedOnRepositoryError() {
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(nil, errors.New("connection refused"))

	assert.False(suite.T(), suite.svc.IsAvailableForDailyRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestAnnualRental_OccupancyBlocksRegardlessOfWindow() {
	// The requested window is far in the future, but any active tenant
	// blocks an annual slot.
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeMonthly), nil)
	suite.tenantsRepo.On("ExistsActiveByProperty", suite.ctx, suite.propertyID).Return(true, nil)

	futureStart := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	futureEnd := time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.False(suite.T(), suite.svc.IsAvailableForAnnualRental(suite.ctx, suite.propertyID, futureStart, futureEnd))
	suite.bookingsRepo.AssertNotCalled(suite.T(), "HasOverlapping")
}

func (suite *AvailabilityServiceTestSuite) TestAnnualRental_Available() {
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeMonthly), nil)
	suite.tenantsRepo.On("ExistsActiveByProperty", suite.ctx, suite.propertyID).Return(false, nil)
	suite.bookingsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)

	assert.True(suite.T(), suite.svc.IsAvailableForAnnualRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestAnnualRental_BlockedPeriodDenies() {
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeMonthly), nil)
	suite.tenantsRepo.On("ExistsActiveByProperty", suite.ctx, suite.propertyID).Return(false, nil)
	suite.bookingsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(true, nil)

	assert.False(suite.T(), suite.svc.IsAvailableForAnnualRental(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestCheckAvailability_NormalizesRentalType() {
	// "annual" routes through the monthly occupancy check.
	suite.propertiesRepo.On("GetByID", suite.ctx, suite.propertyID).Return(suite.property(models.RentalTypeMonthly), nil)
	suite.tenantsRepo.On("ExistsActiveByProperty", suite.ctx, suite.propertyID).Return(false, nil)
	suite.bookingsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).Return(false, nil)

	result := suite.svc.CheckAvailability(suite.ctx, suite.propertyID, suite.start, suite.end, "annual")
	assert.True(suite.T(), result.IsAvailable)
	assert.Empty(suite.T(), result.Conflicts)
}

func (suite *AvailabilityServiceTestSuite) TestGetConflicts_BestEffortAcrossSources() {
	// The bookings query fails; conflicts from the other sources are still
	// reported.
	suite.bookingsRepo.On("ListOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return(nil, errors.New("connection refused"))
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{}, nil)

	reason := "renovation"
	suite.blockedPeriodsRepo.On("ListOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.BlockedPeriod{{
			ID:         uuid.New(),
			PropertyID: suite.propertyID,
			StartDate:  suite.start,
			EndDate:    &suite.end,
			Reason:     &reason,
		}}, nil)
	suite.rentalRequestsRepo.On("ListApprovedOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.RentalRequest{}, nil)

	conflicts := suite.svc.GetConflicts(suite.ctx, suite.propertyID, suite.start, suite.end)
	assert.Len(suite.T(), conflicts, 1)
	assert.Equal(suite.T(), models.ConflictTypeBlockedPeriod, conflicts[0].Type)
	assert.Contains(suite.T(), conflicts[0].Description, "renovation")
}

func (suite *AvailabilityServiceTestSuite) TestGetConflicts_AllSources() {
	booking := &models.Booking{
		ID:         uuid.New(),
		PropertyID: suite.propertyID,
		StartDate:  suite.start,
		EndDate:    &suite.end,
		Status:     models.BookingStatusConfirmed,
	}
	tenant := &models.Tenant{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		PropertyID:     suite.propertyID,
		LeaseStartDate: datePtr(2024, time.June, 1),
		LeaseEndDate:   datePtr(2025, time.June, 1),
		Status:         models.TenantStatusActive,
	}
	request := &models.RentalRequest{
		ID:                uuid.New(),
		PropertyID:        suite.propertyID,
		ProposedStartDate: suite.start,
		ProposedEndDate:   suite.end,
		Status:            models.RentalRequestStatusApproved,
	}

	suite.bookingsRepo.On("ListOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.Booking{booking}, nil)
	suite.tenantsRepo.On("ListActiveByProperty", suite.ctx, suite.propertyID).Return([]*models.Tenant{tenant}, nil)
	suite.blockedPeriodsRepo.On("ListOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.BlockedPeriod{}, nil)
	suite.rentalRequestsRepo.On("ListApprovedOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return([]*models.RentalRequest{request}, nil)

	conflicts := suite.svc.GetConflicts(suite.ctx, suite.propertyID, suite.start, suite.end)
	assert.Len(suite.T(), conflicts, 3)

	types := make(map[models.ConflictType]int)
	for _, conflict := range conflicts {
		types[conflict.Type]++
	}
	assert.Equal(suite.T(), 1, types[models.ConflictTypeBooking])
	assert.Equal(suite.T(), 1, types[models.ConflictTypeLease])
	assert.Equal(suite.T(), 1, types[models.ConflictTypeRentalRequest])
}

func (suite *AvailabilityServiceTestSuite) TestHasBlockedPeriods_FailsClosed() {
	suite.blockedPeriodsRepo.On("HasOverlapping", suite.ctx, suite.propertyID, suite.start, suite.end).
		Return(false, errors.New("connection refused"))

	assert.True(suite.T(), suite.svc.HasBlockedPeriods(suite.ctx, suite.propertyID, suite.start, suite.end))
}

func (suite *AvailabilityServiceTestSuite) TestOverlaps() {
	start := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

	// Ends exactly at the query start: no conflict.
	assert.False(suite.T(), overlaps(start.AddDate(0, 0, -10), &start, start, end))
	// Starts exactly at the query end: no conflict.
	assert.False(suite.T(), overlaps(end, nil, start, end))
	// Open-ended record starting before the query end: conflict.
	assert.True(suite.T(), overlaps(start.AddDate(0, 0, -10), nil, start, end))
	// Strictly inside: conflict.
	assert.True(suite.T(), overlaps(start.AddDate(0, 0, 1), datePtr(2025, time.March, 11), start, end))
}
