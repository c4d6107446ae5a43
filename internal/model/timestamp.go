package model

import (
	"strings"
	"time"
)

// TimestampLayout is the layout used to persist timestamps.
const TimestampLayout = time.RFC3339

var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatTimestamp formats a timestamp with second precision.
func FormatTimestamp(t time.Time) string {
	return t.Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp. Timestamps without zone are
// interpreted in local time. Returns false if it can't be parsed.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Truncate(time.Second), true
	}

	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Truncate(time.Second), true
		}
	}

	return time.Time{}, false
}
