package timer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tasktimer/timer"
)

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t)

	opts := t1
	opts.Reminder = 2 * time.Second

	require.NoError(t, h.engine.Start(context.Background(), opts))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var seen []timer.Status

	h.engine.Run(ctx, time.Millisecond, func(st timer.Status) {
		seen = append(seen, st)
		h.clock.Advance(time.Second)

		if len(seen) == 3 {
			cancel()
		}
	})

	require.Len(t, seen, 3)
	assert.Equal(t, time.Duration(0), seen[0].Elapsed)
	assert.Equal(t, 2*time.Second, seen[2].Elapsed)
	assert.True(t, seen[2].ReminderFired)
	assert.Equal(t, 1, h.notifier.count(timer.TitleReminder))
}
