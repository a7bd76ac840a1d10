package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant statuses. A tenant row stays "Active" even after the property is
// released on contract expiry; the historical record is kept for billing.
const (
	TenantStatusActive     = "Active"
	TenantStatusPending    = "Pending"
	TenantStatusTerminated = "Terminated"
)

// Tenant is a long-term occupancy record linking a user to a property.
// LeaseEndDate is an explicit override; when nil the effective end date is
// inferred from the approved rental request (see services.LeaseCalculator).
// Invariant: Status == Active implies LeaseStartDate is set.
type Tenant struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	PropertyID     uuid.UUID  `json:"property_id" db:"property_id"`
	LeaseStartDate *time.Time `json:"lease_start_date,omitempty" db:"lease_start_date"`
	LeaseEndDate   *time.Time `json:"lease_end_date,omitempty" db:"lease_end_date"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
