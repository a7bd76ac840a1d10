package models

import (
	"time"

	"github.com/google/uuid"
)

// ConflictType identifies the source of an availability conflict.
type ConflictType string

const (
	ConflictTypeBooking       ConflictType = "booking"
	ConflictTypeLease         ConflictType = "lease"
	ConflictTypeBlockedPeriod ConflictType = "blocked_period"
	ConflictTypeRentalRequest ConflictType = "rental_request"
)

// ConflictInfo describes one existing record whose interval overlaps a
// requested interval. ConflictEnd is nil for open-ended records.
type ConflictInfo struct {
	Type          ConflictType `json:"type"`
	ConflictStart time.Time    `json:"conflict_start"`
	ConflictEnd   *time.Time   `json:"conflict_end,omitempty"`
	Description   string       `json:"description"`
	SourceID      uuid.UUID    `json:"source_id"`
}

// AvailabilityResult is the full diagnostic answer to an availability
// query: the verdict, a human-readable reason when denied, and every
// conflict found.
type AvailabilityResult struct {
	IsAvailable bool           `json:"is_available"`
	Reason      string         `json:"reason,omitempty"`
	Conflicts   []ConflictInfo `json:"conflicts,omitempty"`
}
