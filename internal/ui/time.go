package ui

import (
	"fmt"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
)

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration.Truncate(time.Second).Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	return fmt.Sprintf("%dd", hours/24)
}

// FormatElapsedSeconds formats a task's accumulated timer seconds.
func FormatElapsedSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return FormatDurationShort(time.Duration(seconds) * time.Second)
}

// FormatSessionMinutes formats a session length in minutes, rendering the
// unknown-duration sentinel as a dash.
func FormatSessionMinutes(minutes int) string {
	if minutes == clock.UnknownDuration {
		return "-"
	}
	return FormatDurationShort(time.Duration(minutes) * time.Minute)
}
