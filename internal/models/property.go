package models

import (
	"time"

	"github.com/google/uuid"
)

// Rental types a property can be configured for. Compared
// case-insensitively wherever user input is involved.
const (
	RentalTypeDaily   = "Daily"
	RentalTypeMonthly = "Monthly"
)

// Property statuses.
const (
	PropertyStatusAvailable = "Available"
	PropertyStatusRented    = "Rented"
	PropertyStatusInactive  = "Inactive"
)

type Property struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Status      string    `json:"status" db:"status"`
	RentalType  string    `json:"rental_type" db:"rental_type"`
	MonthlyRent *float64  `json:"monthly_rent,omitempty" db:"monthly_rent"`
	DailyRate   *float64  `json:"daily_rate,omitempty" db:"daily_rate"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
