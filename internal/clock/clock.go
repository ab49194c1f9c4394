// Package clock implements the date and time handling for the tracker.
//
// All calendar derivations are fixed to India Standard Time regardless of
// the host zone. Persisted dates exist in two textual dialects that
// accumulated over the product's lifetime ("Jan 6, 2026" and "06 Jan 2026");
// both are parsed here and new records carry a tagged DateString so the
// dialect is explicit at write time.
package clock

import (
	"strings"
	"sync"
	"time"

	internalstrings "github.com/tasktrack/tasktrack/internal/strings"
)

const (
	// ShortLayout is the "Jan 6, 2026" date dialect.
	ShortLayout = "Jan 2, 2006"

	// LongLayout is the "06 Jan 2026" date dialect.
	LongLayout = "02 Jan 2006"

	// ClockLayout is the 12-hour clock format used for session times.
	ClockLayout = "3:04 PM"
)

// UnknownDuration is returned by DurationMinutes when either endpoint is a
// placeholder rather than a clock time.
const UnknownDuration = -1

var (
	locationOnce sync.Once
	location     *time.Location
)

// Location returns the reporting timezone (Asia/Kolkata). When the host has
// no zone database it falls back to a fixed +05:30 offset.
func Location() *time.Location {
	locationOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			loc = time.FixedZone("IST", 5*60*60+30*60)
		}
		location = loc
	})
	return location
}

var dateLayouts = []string{
	ShortLayout,
	"January 2, 2006",
	LongLayout,
	"2 Jan 2006",
	"2 January 2006",
}

// ParseDate parses a date string in any known dialect. It never fails loudly:
// unparsable input returns ok=false and callers exclude the record from
// aggregation.
func ParseDate(value string) (time.Time, bool) {
	value = normalizeSpaces(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, Location()); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

var clockLayouts = []string{
	ClockLayout,
	"3:04PM",
	"3:04:05 PM",
	"15:04",
	"15:04:05",
}

// ParseClockTime parses a wall-clock string into minutes since midnight.
// Accepts 12-hour ("9:00 AM") and 24-hour ("09:00") forms, including the
// narrow and no-break space variants some locales emit before AM/PM.
// Returns 0 when the input cannot be parsed.
func ParseClockTime(value string) int {
	value = strings.ToUpper(normalizeSpaces(value))
	if value == "" {
		return 0
	}
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Hour()*60 + parsed.Minute()
		}
	}
	return 0
}

// DurationMinutes returns the minutes between two clock-time strings,
// wrapping by a day when the interval crosses midnight. Placeholder
// endpoints ("-", "Active", empty) yield UnknownDuration.
func DurationMinutes(start, end string) int {
	if IsPlaceholderTime(start) || IsPlaceholderTime(end) {
		return UnknownDuration
	}
	diff := ParseClockTime(end) - ParseClockTime(start)
	if diff < 0 {
		diff += 24 * 60
	}
	return diff
}

// IsPlaceholderTime reports whether value stands in for a missing or still
// open clock time.
func IsPlaceholderTime(value string) bool {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "", "-", "n/a", "active":
		return true
	}
	return false
}

// FormatShort renders t in the "Jan 6, 2026" dialect.
func FormatShort(t time.Time) string {
	return t.In(Location()).Format(ShortLayout)
}

// FormatLong renders t in the "06 Jan 2026" dialect.
func FormatLong(t time.Time) string {
	return t.In(Location()).Format(LongLayout)
}

// FormatClock renders t as a 12-hour clock string.
func FormatClock(t time.Time) string {
	return t.In(Location()).Format(ClockLayout)
}

// WeekdayName returns the full weekday name for t.
func WeekdayName(t time.Time) string {
	return t.In(Location()).Weekday().String()
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, Location()).Day()
}

// SameCalendarDay reports whether a and b fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(Location()).Date()
	by, bm, bd := b.In(Location()).Date()
	return ay == by && am == bm && ad == bd
}

func normalizeSpaces(value string) string {
	value = strings.ReplaceAll(value, "\u202f", " ")
	value = strings.ReplaceAll(value, "\u00a0", " ")
	return internalstrings.NormalizeWhitespace(value)
}
