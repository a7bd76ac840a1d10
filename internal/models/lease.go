package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantLeaseInfo is a resolved view over a tenancy: the effective lease
// boundaries plus derived expiry fields. LeaseEndDate, DurationMonths and
// RemainingDays are nil when the underlying data is insufficient to resolve
// them.
type TenantLeaseInfo struct {
	TenantID       uuid.UUID  `json:"tenant_id"`
	UserID         uuid.UUID  `json:"user_id"`
	PropertyID     uuid.UUID  `json:"property_id"`
	PropertyName   string     `json:"property_name"`
	MonthlyRent    *float64   `json:"monthly_rent,omitempty"`
	LeaseStartDate *time.Time `json:"lease_start_date,omitempty"`
	LeaseEndDate   *time.Time `json:"lease_end_date,omitempty"`
	DurationMonths *int       `json:"duration_months,omitempty"`
	RemainingDays  *int       `json:"remaining_days,omitempty"`
	IsExpired      bool       `json:"is_expired"`
	IsExpiringSoon bool       `json:"is_expiring_soon"`
}

// LeaseStatistics aggregates an owner's active leases. The three expiration
// buckets are mutually exclusive: a lease counts as expired, else as
// expiring within the current calendar month, else as expiring within the
// next 30 days.
type LeaseStatistics struct {
	TotalActive               int     `json:"total_active"`
	ExpiringThisMonth         int     `json:"expiring_this_month"`
	ExpiringNext30Days        int     `json:"expiring_next_30_days"`
	ExpiredCount              int     `json:"expired_count"`
	TotalMonthlyRevenue       float64 `json:"total_monthly_revenue"`
	AverageLeaseDurationMonths float64 `json:"average_lease_duration_months"`
}

// ExpirationSummary is the read-only dashboard view produced by the
// contract monitor.
type ExpirationSummary struct {
	ExpiringNext60Days int       `json:"expiring_next_60_days"`
	ExpiringNext30Days int       `json:"expiring_next_30_days"`
	ExpiringNext7Days  int       `json:"expiring_next_7_days"`
	ExpiredCount       int       `json:"expired_count"`
	GeneratedAt        time.Time `json:"generated_at"`
}
