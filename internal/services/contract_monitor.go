package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/caching"
	"github.com/kenancosic/eRents-sub000/internal/models"
	"github.com/kenancosic/eRents-sub000/internal/repositories"

	"github.com/google/uuid"
)

// Sweep horizons, in days. Every sweep checks all three, so a tenant inside
// the 7-day window is also inside the 30- and 60-day windows and receives a
// warning for each. No sent-flag is persisted; duplicate warnings across
// horizons and across sweeps are accepted behavior.
var expirationWarningHorizons = []int{60, 30, 7}

const expirationSummaryTTL = 10 * time.Minute

// ContractMonitor drives the lease lifecycle: it warns tenants and owners
// about upcoming expirations and releases properties once a lease has run
// out. Only Property.Status transitions on expiry; the tenant row stays
// Active so the historical occupancy record survives for billing.
type ContractMonitor interface {
	// CheckContractsExpiring notifies tenant and owner for every lease
	// ending within daysAhead days. Tenants are processed independently; a
	// failure on one is logged and the sweep continues.
	CheckContractsExpiring(ctx context.Context, daysAhead int) error
	// ProcessExpiredContracts releases the property of every expired lease
	// and notifies both parties. Re-running it is idempotent for the store
	// mutation; notifications may repeat.
	ProcessExpiredContracts(ctx context.Context) error
	// RunContractExpirationCheck is one full scheduled sweep: warning
	// passes at 60, 30 and 7 days, then the expired pass.
	RunContractExpirationCheck(ctx context.Context) error

	GetExpirationSummary(ctx context.Context) (*models.ExpirationSummary, error)
	GetExpiringContractsForOwner(ctx context.Context, ownerID uuid.UUID, daysAhead int) ([]*models.TenantLeaseInfo, error)
	GetExpiredContractsForOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.TenantLeaseInfo, error)

	// ProcessSpecificContractExpiration force-processes one tenancy after
	// verifying it is actually expired.
	ProcessSpecificContractExpiration(ctx context.Context, tenantID uuid.UUID) error
	// SendExpirationReminder sends an ad hoc reminder outside the sweep.
	SendExpirationReminder(ctx context.Context, tenantID uuid.UUID, daysUntilExpiration int) error
}

type contractMonitor struct {
	calculator     LeaseCalculator
	tenantsRepo    repositories.TenantsRepository
	propertiesRepo repositories.PropertiesRepository
	notifier       Notifier
	cacheSvc       caching.CacheService

	now func() time.Time
}

func NewContractMonitor(calculator LeaseCalculator, tenantsRepo repositories.TenantsRepository,
	propertiesRepo repositories.PropertiesRepository, notifier Notifier, cacheSvc caching.CacheService) ContractMonitor {
	return &contractMonitor{
		calculator:     calculator,
		tenantsRepo:    tenantsRepo,
		propertiesRepo: propertiesRepo,
		notifier:       notifier,
		cacheSvc:       cacheSvc,
		now:            time.Now,
	}
}

func (m *contractMonitor) CheckContractsExpiring(ctx context.Context, daysAhead int) error {
	tenants, err := m.calculator.GetExpiringTenants(ctx, daysAhead)
	if err != nil {
		// Candidate-set failures abort the pass; the scheduler retries.
		return fmt.Errorf("query expiring tenants (%d days): %w", daysAhead, err)
	}

	log.Printf("contract sweep: %d lease(s) expiring within %d days", len(tenants), daysAhead)
	for _, tenant := range tenants {
		if err := m.notifyExpiring(ctx, tenant); err != nil {
			log.Printf("contract sweep: tenant %s skipped: %v", tenant.ID, err)
		}
	}
	return nil
}

func (m *contractMonitor) notifyExpiring(ctx context.Context, tenant *models.Tenant) error {
	end, err := m.calculator.CalculateLeaseEndDateForTenant(ctx, tenant)
	if err != nil {
		return err
	}
	if end == nil {
		return fmt.Errorf("lease end unresolved")
	}
	property, err := m.propertiesRepo.GetByID(ctx, tenant.PropertyID)
	if err != nil {
		return fmt.Errorf("load property %s: %w", tenant.PropertyID, err)
	}

	daysLeft := daysBetween(dateOnly(m.now()), dateOnly(*end))
	tenantID := tenant.ID

	tenantMsg := fmt.Sprintf("Your lease for %s ends on %s (%d day(s) remaining).",
		property.Name, end.Format("2006-01-02"), daysLeft)
	if err := m.notifier.Notify(ctx, tenant.UserID, "Lease expiring soon", tenantMsg,
		models.NotificationTypeLeaseExpiring, &tenantID); err != nil {
		return err
	}

	ownerMsg := fmt.Sprintf("The lease on %s ends on %s (%d day(s) remaining).",
		property.Name, end.Format("2006-01-02"), daysLeft)
	if err := m.notifier.Notify(ctx, property.OwnerID, "Lease expiring soon", ownerMsg,
		models.NotificationTypeLeaseExpiring, &tenantID); err != nil {
		return err
	}
	return nil
}

func (m *contractMonitor) ProcessExpiredContracts(ctx context.Context) error {
	tenants, err := m.calculator.GetExpiredTenants(ctx)
	if err != nil {
		return fmt.Errorf("query expired tenants: %w", err)
	}

	log.Printf("contract sweep: %d expired lease(s) to process", len(tenants))
	for _, tenant := range tenants {
		if err := m.processExpired(ctx, tenant); err != nil {
			log.Printf("contract sweep: tenant %s skipped: %v", tenant.ID, err)
		}
	}
	return nil
}

func (m *contractMonitor) processExpired(ctx context.Context, tenant *models.Tenant) error {
	property, err := m.propertiesRepo.GetByID(ctx, tenant.PropertyID)
	if err != nil {
		return fmt.Errorf("load property %s: %w", tenant.PropertyID, err)
	}

	// Releasing an already-available property is a no-op, which is what
	// makes re-running the sweep safe.
	if property.Status != models.PropertyStatusAvailable {
		if err := m.propertiesRepo.UpdateStatus(ctx, property.ID, models.PropertyStatusAvailable); err != nil {
			return fmt.Errorf("release property %s: %w", property.ID, err)
		}
		log.Printf("contract sweep: property %s released", property.ID)
	}

	end, err := m.calculator.CalculateLeaseEndDateForTenant(ctx, tenant)
	if err != nil {
		return err
	}
	daysOverdue := 0
	if end != nil {
		daysOverdue = -daysBetween(dateOnly(m.now()), dateOnly(*end))
	}
	tenantID := tenant.ID

	tenantMsg := fmt.Sprintf("Your lease for %s has ended (%d day(s) overdue). The property has been released.",
		property.Name, daysOverdue)
	if err := m.notifier.Notify(ctx, tenant.UserID, "Lease expired", tenantMsg,
		models.NotificationTypeLeaseExpired, &tenantID); err != nil {
		return err
	}

	ownerMsg := fmt.Sprintf("The lease on %s has ended (%d day(s) overdue). The property is available again.",
		property.Name, daysOverdue)
	return m.notifier.Notify(ctx, property.OwnerID, "Lease expired", ownerMsg,
		models.NotificationTypeLeaseExpired, &tenantID)
}

func (m *contractMonitor) RunContractExpirationCheck(ctx context.Context) error {
	log.Printf("contract sweep: starting full expiration check")
	for _, horizon := range expirationWarningHorizons {
		if err := m.CheckContractsExpiring(ctx, horizon); err != nil {
			return err
		}
	}
	if err := m.ProcessExpiredContracts(ctx); err != nil {
		return err
	}

	if m.cacheSvc != nil {
		if err := m.cacheSvc.DeleteExpirationSummary(ctx); err != nil {
			log.Printf("contract sweep: summary cache invalidation failed: %v", err)
		}
	}
	log.Printf("contract sweep: completed")
	return nil
}

func (m *contractMonitor) GetExpirationSummary(ctx context.Context) (*models.ExpirationSummary, error) {
	if m.cacheSvc != nil {
		if cached, err := m.cacheSvc.GetExpirationSummary(ctx); err != nil {
			log.Printf("expiration summary: cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	summary := &models.ExpirationSummary{GeneratedAt: m.now()}
	for _, entry := range []struct {
		days  int
		field *int
	}{
		{60, &summary.ExpiringNext60Days},
		{30, &summary.ExpiringNext30Days},
		{7, &summary.ExpiringNext7Days},
	} {
		tenants, err := m.calculator.GetExpiringTenants(ctx, entry.days)
		if err != nil {
			return nil, err
		}
		*entry.field = len(tenants)
	}

	expired, err := m.calculator.GetExpiredTenants(ctx)
	if err != nil {
		return nil, err
	}
	summary.ExpiredCount = len(expired)

	if m.cacheSvc != nil {
		if err := m.cacheSvc.SetExpirationSummary(ctx, summary, expirationSummaryTTL); err != nil {
			log.Printf("expiration summary: cache write failed: %v", err)
		}
	}
	return summary, nil
}

func (m *contractMonitor) GetExpiringContractsForOwner(ctx context.Context, ownerID uuid.UUID, daysAhead int) ([]*models.TenantLeaseInfo, error) {
	infos, err := m.calculator.GetOwnerLeaseInfo(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var expiring []*models.TenantLeaseInfo
	for _, info := range infos {
		if info.IsExpired || info.RemainingDays == nil {
			continue
		}
		if *info.RemainingDays <= daysAhead {
			expiring = append(expiring, info)
		}
	}
	return expiring, nil
}

func (m *contractMonitor) GetExpiredContractsForOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.TenantLeaseInfo, error) {
	infos, err := m.calculator.GetOwnerLeaseInfo(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var expired []*models.TenantLeaseInfo
	for _, info := range infos {
		if info.IsExpired {
			expired = append(expired, info)
		}
	}
	return expired, nil
}

func (m *contractMonitor) ProcessSpecificContractExpiration(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := m.tenantsRepo.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	expired, err := m.calculator.IsLeaseExpired(ctx, tenantID)
	if err != nil {
		return err
	}
	if !expired {
		return fmt.Errorf("tenant %s lease is not expired", tenantID)
	}
	return m.processExpired(ctx, tenant)
}

func (m *contractMonitor) SendExpirationReminder(ctx context.Context, tenantID uuid.UUID, daysUntilExpiration int) error {
	tenant, err := m.tenantsRepo.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant %s: %w", tenantID, err)
	}
	property, err := m.propertiesRepo.GetByID(ctx, tenant.PropertyID)
	if err != nil {
		return fmt.Errorf("load property %s: %w", tenant.PropertyID, err)
	}

	message := fmt.Sprintf("Reminder: your lease for %s expires in %d day(s).", property.Name, daysUntilExpiration)
	return m.notifier.Notify(ctx, tenant.UserID, "Lease reminder", message,
		models.NotificationTypeReminder, &tenantID)
}
