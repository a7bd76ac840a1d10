package models

import (
	"time"

	"github.com/google/uuid"
)

// Rental request statuses.
const (
	RentalRequestStatusPending  = "Pending"
	RentalRequestStatusApproved = "Approved"
	RentalRequestStatusRejected = "Rejected"
)

// RentalRequest is a long-term rental application. The approved request is
// the historical record from which an implicit lease end date is inferred
// when the tenancy carries no explicit one.
type RentalRequest struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	UserID              uuid.UUID `json:"user_id" db:"user_id"`
	PropertyID          uuid.UUID `json:"property_id" db:"property_id"`
	ProposedStartDate   time.Time `json:"proposed_start_date" db:"proposed_start_date"`
	ProposedEndDate     time.Time `json:"proposed_end_date" db:"proposed_end_date"`
	LeaseDurationMonths int       `json:"lease_duration_months" db:"lease_duration_months"`
	Status              string    `json:"status" db:"status"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
