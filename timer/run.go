package timer

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTickPeriod is the presentation refresh interval.
const DefaultTickPeriod = time.Second

// Run ticks the engine every period until ctx is cancelled, passing each
// status to observe. The first tick happens immediately. Run blocks, so the
// engine must not be used from other goroutines while it is running; act on
// the engine from within observe instead.
func (e *Engine) Run(
	ctx context.Context,
	period time.Duration,
	observe func(Status),
) {
	if period <= 0 {
		period = DefaultTickPeriod
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		st, err := e.Tick(ctx)
		if err != nil {
			e.log.WarnContext(ctx, "tick failed", slog.Any("error", err))
		}

		if observe != nil {
			observe(st)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
