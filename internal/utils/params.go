package utils

import (
	"fmt"
	"time"
)

// ParseTimeParam parses a query-string timestamp, accepting RFC 3339 or a
// bare date. Bare dates map to midnight UTC.
func ParseTimeParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing value")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
