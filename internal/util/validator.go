package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date into a UTC midnight instant.
// Dates carry no time-of-day anywhere in the system.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidateDescription checks a free-text description: non-empty after
// trimming, bounded length.
func ValidateDescription(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("description is required")
	}
	if len(s) > 255 {
		return fmt.Errorf("description too long, max 255 characters")
	}
	return nil
}
