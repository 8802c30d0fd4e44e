package utils

import (
	"strings"
	"time"
)

const (
	layoutDate    = "2006-01-02"
	layoutDisplay = "02 Jan 2006 15:04"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	layoutDate,
}

var yearlessLayouts = []string{
	"2 Jan",
	"Jan 2",
	"2 January",
	"January 2",
}

// ParseDate parses YYYY-MM-DD in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// ParseTimestamp tries the timestamp layouts the provider is known to emit.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplay renders a provider timestamp for human-facing output.
// Unparseable values fall back to the original string rather than erroring.
func FormatDisplay(s string) string {
	if t, ok := ParseTimestamp(s); ok {
		return t.Format(layoutDisplay)
	}
	return strings.TrimSpace(s)
}

// ResolveYearlessDate parses activity dates the provider returns without a
// year ("16 Nov"). The year is inferred from proximity to the request's date
// window instead of wall-clock now, which would mislabel records near a
// year boundary. Returns false when the text is not a yearless date.
func ResolveYearlessDate(s string, start, end time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	var base time.Time
	ok := false
	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			base = t
			ok = true
			break
		}
	}
	if !ok {
		return time.Time{}, false
	}

	var best time.Time
	bestDist := time.Duration(-1)
	for year := start.Year(); year <= end.Year(); year++ {
		candidate := time.Date(year, base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
		if !candidate.Before(start) && !candidate.After(end) {
			return candidate, true
		}
		dist := absDuration(candidate.Sub(start))
		if d := absDuration(candidate.Sub(end)); d < dist {
			dist = d
		}
		if bestDist < 0 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
