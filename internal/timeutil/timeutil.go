// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// Clock formats a duration as HH:MM:SS. Fractions of a second are truncated
// and negative durations are treated as zero. Hours are not wrapped at 24.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)

	hrs := total / (minutesInAnHour * secondsInAMinute)
	mins := (total / secondsInAMinute) % minutesInAnHour
	secs := total % secondsInAMinute

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// Hours expresses a duration in hours rounded to two decimal places.
func Hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// ToMillis converts a time value to milliseconds since the Unix epoch. The
// zero time maps to 0.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

// FromMillis is the inverse of ToMillis.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DayKey formats t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// MillisToDuration converts a count of milliseconds into a time.Duration.
func MillisToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// DurationToMillis converts a duration into whole milliseconds.
func DurationToMillis(d time.Duration) int64 {
	return int64(d / time.Millisecond)
}
