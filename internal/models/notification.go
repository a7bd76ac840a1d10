package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types dispatched by the occupancy core.
const (
	NotificationTypeLeaseExpiring = "lease_expiring"
	NotificationTypeLeaseExpired  = "lease_expired"
	NotificationTypeReminder      = "lease_reminder"
)

// Notification is a message queued for a user. Transport (push, email,
// in-app feed) is upstream's concern; this core only records the dispatch.
type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Message     string     `json:"message" db:"message"`
	Type        string     `json:"type" db:"type"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty" db:"reference_id"`
	IsRead      bool       `json:"is_read" db:"is_read"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
