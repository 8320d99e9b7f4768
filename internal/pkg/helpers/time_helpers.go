package helpers

import (
	"fmt"
	"time"
)

// ParseDuration parses a duration string, returning a fallback on failure
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// CurrentWeekYear formats t as an ISO week identifier like "2025-W35".
// Weekly portfolio submissions are bucketed by this key.
func CurrentWeekYear(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
