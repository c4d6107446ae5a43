package printer

import (
	"fmt"
	"strconv"
	"time"
)

// TimeAgo returns a human-readable relative time string in UTC.
// Examples: "5 seconds ago (UTC)", "2 minutes ago (UTC)", "3 hours ago (UTC)".
func TimeAgo(t time.Time) string {
	return timeAgo(time.Now(), t)
}

func timeAgo(now, t time.Time) string {
	diff := now.UTC().Sub(t.UTC())

	// Handle future times
	if diff < 0 {
		return "in the future (UTC)"
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago (UTC)", unit)
		}
		return fmt.Sprintf("%d %ss ago (UTC)", n, unit)
	}

	switch {
	case diff < time.Minute:
		return plural(int(diff.Seconds()), "second")
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	}

	return plural(int(diff.Hours()/24), "day")
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatFinished returns the finish time of a task, "-" when it is not finished.
func FormatFinished(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatTimestamp(*t)
}

// FormatHours returns hours without trailing zeros, e.g. "1.5h", "-" for nil.
func FormatHours(h *float64) string {
	if h == nil {
		return "-"
	}
	return strconv.FormatFloat(*h, 'f', -1, 64) + "h"
}
