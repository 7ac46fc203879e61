package utils

import (
	"fmt"
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate parses an ISO 8601 date or date-time. Values without an offset are read as UTC.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date", value)
}

// DaysAgo returns the same wall-clock instant n calendar days before now
func DaysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// FormatTimestamp renders t as an ISO string with millisecond precision in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
