package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	// UserIDKey carries the authenticated caller through the request
	// context. Authentication itself happens upstream; by the time a
	// request reaches the occupancy core the identity is already resolved.
	UserIDKey contextKey = "user_id"
)

// GetUserIDFromContext extracts the caller's user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// ParseDate parses a YYYY-MM-DD query parameter.
func ParseDate(value, fieldName string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("%s is required", fieldName)
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}

// ValidateDateRange rejects inverted or empty intervals. Ranges are
// half-open, so start == end denotes an empty range.
func ValidateDateRange(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("start date must be before end date")
	}
	return nil
}

// SafeString dereferences an optional string.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
