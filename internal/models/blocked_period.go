package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedPeriod is an owner-declared interval during which a property is
// deliberately unbookable (IsAvailable == false). A nil EndDate blocks the
// property indefinitely.
type BlockedPeriod struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PropertyID  uuid.UUID  `json:"property_id" db:"property_id"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsAvailable bool       `json:"is_available" db:"is_available"`
	Reason      *string    `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
