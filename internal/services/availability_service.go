package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"
	"github.com/kenancosic/eRents-sub000/internal/repositories"

	"github.com/google/uuid"
)

// AvailabilityService answers whether a property is free for a half-open
// interval [start, end) under a given rental mode, and enumerates the
// records in the way. Every boolean check fails closed: on any unexpected
// error the property is reported unavailable, because a missed booking is
// far cheaper than a double-booking.
type AvailabilityService interface {
	// IsAvailableForDailyRental requires daily capability and denies on
	// overlapping active leases, approved rental requests, bookings or
	// blocked periods.
	IsAvailableForDailyRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool
	// IsAvailableForAnnualRental requires monthly capability and denies
	// while any active tenant occupies the property, regardless of the
	// requested window, then on conflicting bookings and blocked periods.
	IsAvailableForAnnualRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool
	// IsPropertyAvailable is the base check: no overlapping non-cancelled
	// bookings and no overlapping blocked periods.
	IsPropertyAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool
	// CheckAvailability wraps the mode-specific checks with full conflict
	// detail for diagnostics.
	CheckAvailability(ctx context.Context, propertyID uuid.UUID, start, end time.Time, rentalType string) *models.AvailabilityResult
	// GetConflicts aggregates conflicts from all four sources. Each source
	// is queried independently; a failure in one is logged and does not
	// discard conflicts gathered from the others.
	GetConflicts(ctx context.Context, propertyID uuid.UUID, start, end time.Time) []models.ConflictInfo
	SupportsRentalType(ctx context.Context, propertyID uuid.UUID, rentalType string) bool
	HasBlockedPeriods(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool
}

type availabilityService struct {
	calculator         LeaseCalculator
	propertiesRepo     repositories.PropertiesRepository
	tenantsRepo        repositories.TenantsRepository
	rentalRequestsRepo repositories.RentalRequestsRepository
	bookingsRepo       repositories.BookingsRepository
	blockedPeriodsRepo repositories.BlockedPeriodsRepository
}

func NewAvailabilityService(calculator LeaseCalculator, propertiesRepo repositories.PropertiesRepository,
	tenantsRepo repositories.TenantsRepository, rentalRequestsRepo repositories.RentalRequestsRepository,
	bookingsRepo repositories.BookingsRepository, blockedPeriodsRepo repositories.BlockedPeriodsRepository) AvailabilityService {
	return &availabilityService{
		calculator:         calculator,
		propertiesRepo:     propertiesRepo,
		tenantsRepo:        tenantsRepo,
		rentalRequestsRepo: rentalRequestsRepo,
		bookingsRepo:       bookingsRepo,
		blockedPeriodsRepo: blockedPeriodsRepo,
	}
}

func (s *availabilityService) IsAvailableForDailyRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool {
	available, err := s.checkDailyRental(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("daily availability check failed for property %s, denying: %v", propertyID, err)
		return false
	}
	return available
}

func (s *availabilityService) checkDailyRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	supported, err := s.supportsRentalType(ctx, propertyID, models.RentalTypeDaily)
	if err != nil {
		return false, err
	}
	if !supported {
		return false, nil
	}

	conflict, err := s.hasLeaseConflict(ctx, propertyID, start, end)
	if err != nil {
		return false, err
	}
	if conflict {
		return false, nil
	}

	requests, err := s.rentalRequestsRepo.ListApprovedOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, fmt.Errorf("list approved rental requests: %w", err)
	}
	if len(requests) > 0 {
		return false, nil
	}

	return s.checkPropertyAvailable(ctx, propertyID, start, end)
}

func (s *availabilityService) IsAvailableForAnnualRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool {
	available, err := s.checkAnnualRental(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("annual availability check failed for property %s, denying: %v", propertyID, err)
		return false
	}
	return available
}

func (s *availabilityService) checkAnnualRental(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	supported, err := s.supportsRentalType(ctx, propertyID, models.RentalTypeMonthly)
	if err != nil {
		return false, err
	}
	if !supported {
		return false, nil
	}

	// Occupancy, not interval overlap: an annual slot cannot be granted
	// while any tenant holds the property, no matter the requested window.
	occupied, err := s.tenantsRepo.ExistsActiveByProperty(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("check active tenants: %w", err)
	}
	if occupied {
		return false, nil
	}

	booked, err := s.bookingsRepo.HasOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, fmt.Errorf("check overlapping bookings: %w", err)
	}
	if booked {
		return false, nil
	}

	blocked, err := s.blockedPeriodsRepo.HasOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, fmt.Errorf("check blocked periods: %w", err)
	}
	return !blocked, nil
}

func (s *availabilityService) IsPropertyAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool {
	available, err := s.checkPropertyAvailable(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("base availability check failed for property %s, denying: %v", propertyID, err)
		return false
	}
	return available
}

func (s *availabilityService) checkPropertyAvailable(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	booked, err := s.bookingsRepo.HasOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, fmt.Errorf("check overlapping bookings: %w", err)
	}
	if booked {
		return false, nil
	}

	blocked, err := s.blockedPeriodsRepo.HasOverlapping(ctx, propertyID, start, end)
	if err != nil {
		return false, fmt.Errorf("check blocked periods: %w", err)
	}
	return !blocked, nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, propertyID uuid.UUID, start, end time.Time, rentalType string) *models.AvailabilityResult {
	var available bool
	switch normalizeRentalType(rentalType) {
	case models.RentalTypeDaily:
		available = s.IsAvailableForDailyRental(ctx, propertyID, start, end)
	case models.RentalTypeMonthly:
		available = s.IsAvailableForAnnualRental(ctx, propertyID, start, end)
	default:
		available = s.IsPropertyAvailable(ctx, propertyID, start, end)
	}

	result := &models.AvailabilityResult{IsAvailable: available}
	if !available {
		result.Conflicts = s.GetConflicts(ctx, propertyID, start, end)
		result.Reason = availabilityReason(result.Conflicts)
	}
	return result
}

func (s *availabilityService) GetConflicts(ctx context.Context, propertyID uuid.UUID, start, end time.Time) []models.ConflictInfo {
	var conflicts []models.ConflictInfo

	bookings, err := s.bookingsRepo.ListOverlapping(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("conflict scan: bookings query failed for property %s: %v", propertyID, err)
	}
	for _, booking := range bookings {
		conflicts = append(conflicts, models.ConflictInfo{
			Type:          models.ConflictTypeBooking,
			ConflictStart: booking.StartDate,
			ConflictEnd:   booking.EndDate,
			Description:   fmt.Sprintf("booking in status %s", booking.Status),
			SourceID:      booking.ID,
		})
	}

	tenants, err := s.tenantsRepo.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		log.Printf("conflict scan: tenants query failed for property %s: %v", propertyID, err)
	}
	for _, tenant := range tenants {
		if tenant.LeaseStartDate == nil {
			continue
		}
		leaseEnd, err := s.calculator.CalculateLeaseEndDateForTenant(ctx, tenant)
		if err != nil {
			log.Printf("conflict scan: lease end resolution failed for tenant %s: %v", tenant.ID, err)
			continue
		}
		if overlaps(*tenant.LeaseStartDate, leaseEnd, start, end) {
			conflicts = append(conflicts, models.ConflictInfo{
				Type:          models.ConflictTypeLease,
				ConflictStart: *tenant.LeaseStartDate,
				ConflictEnd:   leaseEnd,
				Description:   "active lease",
				SourceID:      tenant.ID,
			})
		}
	}

	periods, err := s.blockedPeriodsRepo.ListOverlapping(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("conflict scan: blocked periods query failed for property %s: %v", propertyID, err)
	}
	for _, period := range periods {
		description := "blocked by owner"
		if period.Reason != nil && *period.Reason != "" {
			description = fmt.Sprintf("blocked by owner: %s", *period.Reason)
		}
		conflicts = append(conflicts, models.ConflictInfo{
			Type:          models.ConflictTypeBlockedPeriod,
			ConflictStart: period.StartDate,
			ConflictEnd:   period.EndDate,
			Description:   description,
			SourceID:      period.ID,
		})
	}

	requests, err := s.rentalRequestsRepo.ListApprovedOverlapping(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("conflict scan: rental requests query failed for property %s: %v", propertyID, err)
	}
	for _, request := range requests {
		proposedEnd := request.ProposedEndDate
		conflicts = append(conflicts, models.ConflictInfo{
			Type:          models.ConflictTypeRentalRequest,
			ConflictStart: request.ProposedStartDate,
			ConflictEnd:   &proposedEnd,
			Description:   "approved rental request",
			SourceID:      request.ID,
		})
	}

	return conflicts
}

func (s *availabilityService) SupportsRentalType(ctx context.Context, propertyID uuid.UUID, rentalType string) bool {
	supported, err := s.supportsRentalType(ctx, propertyID, rentalType)
	if err != nil {
		log.Printf("rental type check failed for property %s, denying: %v", propertyID, err)
		return false
	}
	return supported
}

func (s *availabilityService) supportsRentalType(ctx context.Context, propertyID uuid.UUID, rentalType string) (bool, error) {
	property, err := s.propertiesRepo.GetByID(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("load property: %w", err)
	}
	return strings.EqualFold(property.RentalType, normalizeRentalType(rentalType)), nil
}

func (s *availabilityService) HasBlockedPeriods(ctx context.Context, propertyID uuid.UUID, start, end time.Time) bool {
	blocked, err := s.blockedPeriodsRepo.HasOverlapping(ctx, propertyID, start, end)
	if err != nil {
		log.Printf("blocked period check failed for property %s, denying: %v", propertyID, err)
		return true
	}
	return blocked
}

// hasLeaseConflict reports whether any active lease interval overlaps the
// requested window. A lease whose end cannot be resolved is treated as
// open-ended.
func (s *availabilityService) hasLeaseConflict(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (bool, error) {
	tenants, err := s.tenantsRepo.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return false, fmt.Errorf("list active tenants: %w", err)
	}
	for _, tenant := range tenants {
		if tenant.LeaseStartDate == nil {
			continue
		}
		leaseEnd, err := s.calculator.CalculateLeaseEndDateForTenant(ctx, tenant)
		if err != nil {
			return false, err
		}
		if overlaps(*tenant.LeaseStartDate, leaseEnd, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// overlaps applies the half-open interval rule: an existing record
// [existingStart, existingEnd) conflicts with the query [start, end) iff
// existingStart < end and existingEnd is either open or after start. A
// record ending exactly at start does not conflict.
func overlaps(existingStart time.Time, existingEnd *time.Time, start, end time.Time) bool {
	if !existingStart.Before(end) {
		return false
	}
	return existingEnd == nil || existingEnd.After(start)
}

func normalizeRentalType(rentalType string) string {
	switch strings.ToLower(strings.TrimSpace(rentalType)) {
	case "daily":
		return models.RentalTypeDaily
	case "monthly", "annual":
		return models.RentalTypeMonthly
	default:
		return rentalType
	}
}

func availabilityReason(conflicts []models.ConflictInfo) string {
	if len(conflicts) == 0 {
		return "property not available for the requested rental type"
	}
	counts := make(map[models.ConflictType]int)
	for _, conflict := range conflicts {
		counts[conflict.Type]++
	}
	var parts []string
	for _, t := range []models.ConflictType{models.ConflictTypeBooking, models.ConflictTypeLease, models.ConflictTypeBlockedPeriod, models.ConflictTypeRentalRequest} {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s conflict(s)", n, t))
		}
	}
	return strings.Join(parts, ", ")
}
