package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"five seconds", 5 * time.Second, "00:00:05"},
		{"truncates fractions", 5*time.Second + 999*time.Millisecond, "00:00:05"},
		{"minutes and seconds", 2*time.Minute + 7*time.Second, "00:02:07"},
		{"hours", 3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		{"more than a day", 26 * time.Hour, "26:00:00"},
		{"negative", -time.Minute, "00:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clock(tc.in))
		})
	}
}

func TestMillisRoundTrip(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)

	assert.Equal(t, int64(1_700_000_000_123), ToMillis(now))
	assert.True(t, FromMillis(ToMillis(now)).Equal(now))

	assert.Equal(t, int64(0), ToMillis(time.Time{}))
	assert.True(t, FromMillis(0).IsZero())
}

func TestHours(t *testing.T) {
	assert.InDelta(t, 1.5, Hours(90*time.Minute), 0.0001)
	assert.InDelta(t, 0.33, Hours(20*time.Minute), 0.0001)
}

func TestMinsToHoursAndMins(t *testing.T) {
	hrs, mins := MinsToHoursAndMins(135)

	assert.Equal(t, 2, hrs)
	assert.Equal(t, 15, mins)
}

func TestRoundToStart(t *testing.T) {
	in := time.Date(2024, 3, 9, 17, 45, 3, 10, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), RoundToStart(in))
	assert.Equal(t, "2024-03-09", DayKey(in))
}
