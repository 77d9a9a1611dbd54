package utils

import "time"

// FormatRFC3339 renders a timestamp in UTC RFC3339, the canonical string
// form for persisted times
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
