package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"
	"github.com/kenancosic/eRents-sub000/internal/repositories"

	"github.com/google/uuid"
)

// defaultLeaseTermMonths is the fallback annual term applied when a tenancy
// has neither an explicit end date nor an approved rental request to infer
// one from.
const defaultLeaseTermMonths = 12

// minLeaseDurationDays is the minimum viable annual-rental term.
const minLeaseDurationDays = 180

// expiringSoonDays marks a lease as "expiring soon" in lease info views.
const expiringSoonDays = 30

// LeaseCalculator resolves effective lease end dates and derives lease
// statistics. End-date resolution never fails on missing data: an
// unresolvable boundary is reported as nil, and callers treat nil as
// "not expired".
type LeaseCalculator interface {
	// CalculateLeaseEndDateForTenant resolves the effective end date of a
	// tenancy. An explicit LeaseEndDate always wins. Otherwise the end is
	// inferred from the lease start plus the duration of the most recent
	// approved rental request, falling back to a 12-month term. Returns
	// nil when the lease start or property reference is missing.
	CalculateLeaseEndDateForTenant(ctx context.Context, tenant *models.Tenant) (*time.Time, error)
	// IsLeaseExpired reports whether the tenancy's resolved end date is
	// strictly before today. Unresolvable end dates count as not expired.
	IsLeaseExpired(ctx context.Context, tenantID uuid.UUID) (bool, error)
	// GetRemainingDaysUntilExpiration returns the whole days from today to
	// the resolved end date; negative when already past. Nil when the end
	// date cannot be resolved.
	GetRemainingDaysUntilExpiration(ctx context.Context, tenantID uuid.UUID) (*int, error)
	// GetLeaseDurationMonths returns the lease duration of the matching
	// approved rental request, or nil when none exists.
	GetLeaseDurationMonths(ctx context.Context, tenantID, propertyID uuid.UUID) (*int, error)
	// IsValidLeaseDuration reports whether the span covers at least the
	// minimum viable annual-rental term of 180 days.
	IsValidLeaseDuration(start, end time.Time) bool
	// GetExpiringTenants returns active tenants whose resolved end date
	// falls within [today, today+daysAhead], both bounds inclusive.
	GetExpiringTenants(ctx context.Context, daysAhead int) ([]*models.Tenant, error)
	// GetExpiredTenants returns active tenants whose resolved end date is
	// strictly before today.
	GetExpiredTenants(ctx context.Context) ([]*models.Tenant, error)
	GetActiveTenantsWithLeaseInfo(ctx context.Context) ([]*models.TenantLeaseInfo, error)
	// GetOwnerLeaseInfo is GetActiveTenantsWithLeaseInfo scoped to the
	// tenancies on one owner's properties.
	GetOwnerLeaseInfo(ctx context.Context, ownerID uuid.UUID) ([]*models.TenantLeaseInfo, error)
	GetLeaseStatistics(ctx context.Context, ownerID uuid.UUID) (*models.LeaseStatistics, error)
	// GetTenantsRequiringAttention returns the owner's active leases that
	// are expired or within warningDays of expiry, most urgent first.
	GetTenantsRequiringAttention(ctx context.Context, ownerID uuid.UUID, warningDays int) ([]*models.TenantLeaseInfo, error)
}

type leaseCalculator struct {
	tenantsRepo        repositories.TenantsRepository
	rentalRequestsRepo repositories.RentalRequestsRepository
	propertiesRepo     repositories.PropertiesRepository

	// now is swappable so tests can pin "today".
	now func() time.Time
}

func NewLeaseCalculator(tenantsRepo repositories.TenantsRepository, rentalRequestsRepo repositories.RentalRequestsRepository,
	propertiesRepo repositories.PropertiesRepository) LeaseCalculator {
	return &leaseCalculator{
		tenantsRepo:        tenantsRepo,
		rentalRequestsRepo: rentalRequestsRepo,
		propertiesRepo:     propertiesRepo,
		now:                time.Now,
	}
}

func (s *leaseCalculator) CalculateLeaseEndDateForTenant(ctx context.Context, tenant *models.Tenant) (*time.Time, error) {
	if tenant == nil {
		return nil, nil
	}
	if tenant.LeaseEndDate != nil {
		end := *tenant.LeaseEndDate
		return &end, nil
	}
	if tenant.LeaseStartDate == nil || tenant.PropertyID == uuid.Nil {
		return nil, nil
	}

	request, err := s.rentalRequestsRepo.GetLatestApproved(ctx, tenant.UserID, tenant.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("lookup approved rental request for tenant %s: %w", tenant.ID, err)
	}

	months := defaultLeaseTermMonths
	if request != nil {
		months = request.LeaseDurationMonths
	}
	end := addMonthsClamped(*tenant.LeaseStartDate, months)
	return &end, nil
}

// resolveEndDate mirrors CalculateLeaseEndDateForTenant but takes the
// already-batched approved request, so scans avoid a query per tenant.
func (s *leaseCalculator) resolveEndDate(tenant *models.Tenant, request *models.RentalRequest) *time.Time {
	if tenant.LeaseEndDate != nil {
		end := *tenant.LeaseEndDate
		return &end
	}
	if tenant.LeaseStartDate == nil || tenant.PropertyID == uuid.Nil {
		return nil
	}
	months := defaultLeaseTermMonths
	if request != nil {
		months = request.LeaseDurationMonths
	}
	end := addMonthsClamped(*tenant.LeaseStartDate, months)
	return &end
}

func (s *leaseCalculator) IsLeaseExpired(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	tenant, err := s.tenantsRepo.GetByID(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	end, err := s.CalculateLeaseEndDateForTenant(ctx, tenant)
	if err != nil {
		return false, err
	}
	if end == nil {
		// Never expire a lease whose boundary we cannot resolve.
		return false, nil
	}
	return dateOnly(*end).Before(s.today()), nil
}

func (s *leaseCalculator) GetRemainingDaysUntilExpiration(ctx context.Context, tenantID uuid.UUID) (*int, error) {
	tenant, err := s.tenantsRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	end, err := s.CalculateLeaseEndDateForTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if end == nil {
		return nil, nil
	}
	days := daysBetween(s.today(), dateOnly(*end))
	return &days, nil
}

func (s *leaseCalculator) GetLeaseDurationMonths(ctx context.Context, tenantID, propertyID uuid.UUID) (*int, error) {
	tenant, err := s.tenantsRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	request, err := s.rentalRequestsRepo.GetLatestApproved(ctx, tenant.UserID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("lookup approved rental request for tenant %s: %w", tenantID, err)
	}
	if request == nil {
		return nil, nil
	}
	months := request.LeaseDurationMonths
	return &months, nil
}

func (s *leaseCalculator) IsValidLeaseDuration(start, end time.Time) bool {
	return daysBetween(dateOnly(start), dateOnly(end)) >= minLeaseDurationDays
}

func (s *leaseCalculator) GetExpiringTenants(ctx context.Context, daysAhead int) ([]*models.Tenant, error) {
	tenants, requests, err := s.activeTenantsWithRequests(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	horizon := today.AddDate(0, 0, daysAhead)

	var expiring []*models.Tenant
	for _, tenant := range tenants {
		end := s.resolveEndDate(tenant, requests[pairKey(tenant)])
		if end == nil {
			continue
		}
		d := dateOnly(*end)
		if !d.Before(today) && !d.After(horizon) {
			expiring = append(expiring, tenant)
		}
	}
	return expiring, nil
}

func (s *leaseCalculator) GetExpiredTenants(ctx context.Context) ([]*models.Tenant, error) {
	tenants, requests, err := s.activeTenantsWithRequests(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	var expired []*models.Tenant
	for _, tenant := range tenants {
		end := s.resolveEndDate(tenant, requests[pairKey(tenant)])
		if end != nil && dateOnly(*end).Before(today) {
			expired = append(expired, tenant)
		}
	}
	return expired, nil
}

func (s *leaseCalculator) GetActiveTenantsWithLeaseInfo(ctx context.Context) ([]*models.TenantLeaseInfo, error) {
	tenants, err := s.tenantsRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	return s.buildLeaseInfos(ctx, tenants)
}

func (s *leaseCalculator) GetOwnerLeaseInfo(ctx context.Context, ownerID uuid.UUID) ([]*models.TenantLeaseInfo, error) {
	tenants, err := s.tenantsRepo.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active tenants for owner %s: %w", ownerID, err)
	}
	return s.buildLeaseInfos(ctx, tenants)
}

func (s *leaseCalculator) GetLeaseStatistics(ctx context.Context, ownerID uuid.UUID) (*models.LeaseStatistics, error) {
	tenants, err := s.tenantsRepo.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active tenants for owner %s: %w", ownerID, err)
	}
	requests, err := s.batchRequests(ctx, tenants)
	if err != nil {
		return nil, err
	}

	today := s.today()
	endOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	next30 := today.AddDate(0, 0, 30)

	stats := &models.LeaseStatistics{TotalActive: len(tenants)}
	var durationSum, durationCount int

	for _, tenant := range tenants {
		request := requests[pairKey(tenant)]
		end := s.resolveEndDate(tenant, request)

		// Buckets are mutually exclusive: expired wins, then end-of-
		// calendar-month, then the rolling 30-day window.
		if end != nil {
			d := dateOnly(*end)
			switch {
			case d.Before(today):
				stats.ExpiredCount++
			case !d.After(endOfMonth):
				stats.ExpiringThisMonth++
			case !d.After(next30):
				stats.ExpiringNext30Days++
			}
		}

		if months, ok := s.effectiveDurationMonths(tenant, request, end); ok {
			durationSum += months
			durationCount++
		}

		property, err := s.propertiesRepo.GetByID(ctx, tenant.PropertyID)
		if err != nil {
			log.Printf("lease statistics: failed to load property %s: %v", tenant.PropertyID, err)
			continue
		}
		if property.MonthlyRent != nil {
			stats.TotalMonthlyRevenue += *property.MonthlyRent
		}
	}

	if durationCount > 0 {
		stats.AverageLeaseDurationMonths = float64(durationSum) / float64(durationCount)
	}
	return stats, nil
}

func (s *leaseCalculator) GetTenantsRequiringAttention(ctx context.Context, ownerID uuid.UUID, warningDays int) ([]*models.TenantLeaseInfo, error) {
	if warningDays <= 0 {
		warningDays = expiringSoonDays
	}
	infos, err := s.GetOwnerLeaseInfo(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var attention []*models.TenantLeaseInfo
	for _, info := range infos {
		if info.IsExpired || info.RemainingDays == nil || *info.RemainingDays <= warningDays {
			attention = append(attention, info)
		}
	}

	// Unresolvable leases sort as most urgent.
	sortKey := func(info *models.TenantLeaseInfo) int {
		if info.RemainingDays == nil {
			return -999
		}
		return *info.RemainingDays
	}
	sort.SliceStable(attention, func(i, j int) bool {
		return sortKey(attention[i]) < sortKey(attention[j])
	})
	return attention, nil
}

func (s *leaseCalculator) buildLeaseInfos(ctx context.Context, tenants []*models.Tenant) ([]*models.TenantLeaseInfo, error) {
	requests, err := s.batchRequests(ctx, tenants)
	if err != nil {
		return nil, err
	}

	today := s.today()
	infos := make([]*models.TenantLeaseInfo, 0, len(tenants))
	for _, tenant := range tenants {
		request := requests[pairKey(tenant)]
		end := s.resolveEndDate(tenant, request)

		info := &models.TenantLeaseInfo{
			TenantID:       tenant.ID,
			UserID:         tenant.UserID,
			PropertyID:     tenant.PropertyID,
			LeaseStartDate: tenant.LeaseStartDate,
			LeaseEndDate:   end,
		}
		if request != nil {
			months := request.LeaseDurationMonths
			info.DurationMonths = &months
		}
		if end != nil {
			days := daysBetween(today, dateOnly(*end))
			info.RemainingDays = &days
			info.IsExpired = days < 0
			info.IsExpiringSoon = days >= 0 && days <= expiringSoonDays
		}

		property, err := s.propertiesRepo.GetByID(ctx, tenant.PropertyID)
		if err != nil {
			log.Printf("lease info: failed to load property %s: %v", tenant.PropertyID, err)
		} else {
			info.PropertyName = property.Name
			info.MonthlyRent = property.MonthlyRent
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *leaseCalculator) activeTenantsWithRequests(ctx context.Context) ([]*models.Tenant, map[repositories.UserProperty]*models.RentalRequest, error) {
	tenants, err := s.tenantsRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list active tenants: %w", err)
	}
	requests, err := s.batchRequests(ctx, tenants)
	if err != nil {
		return nil, nil, err
	}
	return tenants, requests, nil
}

// batchRequests loads the latest approved request for every tenancy in one
// query instead of one lookup per tenant inside the scan loop.
func (s *leaseCalculator) batchRequests(ctx context.Context, tenants []*models.Tenant) (map[repositories.UserProperty]*models.RentalRequest, error) {
	pairs := make([]repositories.UserProperty, 0, len(tenants))
	seen := make(map[repositories.UserProperty]bool, len(tenants))
	for _, tenant := range tenants {
		if tenant.LeaseEndDate != nil {
			// Explicit end date wins; no inference needed.
			continue
		}
		pair := pairKey(tenant)
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	requests, err := s.rentalRequestsRepo.BatchLatestApproved(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("batch approved rental requests: %w", err)
	}
	return requests, nil
}

func (s *leaseCalculator) effectiveDurationMonths(tenant *models.Tenant, request *models.RentalRequest, end *time.Time) (int, bool) {
	if request != nil {
		return request.LeaseDurationMonths, true
	}
	if tenant.LeaseEndDate != nil && tenant.LeaseStartDate != nil {
		return monthsBetween(*tenant.LeaseStartDate, *tenant.LeaseEndDate), true
	}
	if tenant.LeaseStartDate != nil && end != nil {
		return defaultLeaseTermMonths, true
	}
	return 0, false
}

func (s *leaseCalculator) today() time.Time {
	return dateOnly(s.now())
}

func pairKey(tenant *models.Tenant) repositories.UserProperty {
	return repositories.UserProperty{UserID: tenant.UserID, PropertyID: tenant.PropertyID}
}

// addMonthsClamped adds calendar months preserving the day of month,
// clipping to the last valid day of the target month (Jan 31 + 1 month is
// Feb 28, or Feb 29 in a leap year). time.AddDate would normalize the
// overflow into March instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// dateOnly truncates to midnight UTC so comparisons are date-granular.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from one date to another; negative when to
// precedes from. Both arguments must already be date-only.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
