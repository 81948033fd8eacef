package normalize

import (
	"strings"
	"time"
)

// Registry dates are month/day/year. Unpadded variants appear in hand-edited
// extracts and are accepted as well.
var dateFormats = []string{
	"01/02/2006",
	"1/2/2006",
}

// Time-of-day formats found in registry extracts.
var timeFormats = []string{
	"15:04:05",
	"15:04",
	"15.04.05",
	"15.04",
}

// ParseDate parses a month/day/year date string.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	return parseFirst(s, dateFormats)
}

// ParseTimeOfDay parses a time-of-day string. The returned value carries the
// zero date (January 1, year 0) and only its clock fields are meaningful.
// Returns nil if the input is empty or unparseable.
func ParseTimeOfDay(s string) *time.Time {
	return parseFirst(s, timeFormats)
}

func parseFirst(s string, formats []string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Combine joins a calendar date with a time of day into one UTC timestamp.
// Returns nil if either side is nil.
func Combine(date, clock *time.Time) *time.Time {
	if date == nil || clock == nil {
		return nil
	}
	ts := time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), time.UTC)
	return &ts
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
