package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses. Everything except Cancelled participates in conflict
// checks.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// Booking is a short-term (daily) reservation. A nil EndDate means the stay
// is open-ended and blocks the property indefinitely.
type Booking struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	PropertyID uuid.UUID  `json:"property_id" db:"property_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty" db:"end_date"`
	Status     string     `json:"status" db:"status"`
	TotalPrice *float64   `json:"total_price,omitempty" db:"total_price"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
