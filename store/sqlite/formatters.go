package sqlite

import (
	"time"
)

// timeLayout sorts lexically in chronological order for UTC values.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// formatTime formats t in UTC so that string comparison in SQL matches time
// order.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullTime maps the zero time to NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}

	return formatTime(t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
