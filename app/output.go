package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	dps "github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/tasktimer/internal/timeutil"
	"github.com/ayoisaiah/tasktimer/timer"
)

var errInvalidSince = errors.New("unable to understand --since value")

func printWarning(err error) {
	pterm.Warning.Println(err)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

// parseSince interprets natural language such as "yesterday" or "3 days
// ago" relative to now. An empty string means no lower bound.
func parseSince(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errInvalidSince, s)
	}

	return dt.Time, nil
}

// timeLayout returns the clock layout selected by settings.24hr_clock.
func timeLayout(twentyFourHour bool) string {
	if twentyFourHour {
		return "2006-01-02 15:04"
	}

	return "2006-01-02 03:04 PM"
}

func formatTime(t time.Time, twentyFourHour bool) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format(timeLayout(twentyFourHour))
}

// formatHours renders a duration as "2h 05m".
func formatHours(d time.Duration) string {
	hrs, mins := timeutil.MinsToHoursAndMins(timeutil.Round(d.Minutes()))

	return fmt.Sprintf("%dh %02dm", hrs, mins)
}

// describeStatus renders a one-line summary of a timer.
func describeStatus(st timer.Status) string {
	label := st.TaskTitle
	if label == "" {
		label = st.TaskID
	}

	if st.OnBreak {
		return fmt.Sprintf(
			"%s: on a break, %s left",
			label,
			timeutil.Clock(st.BreakRemaining),
		)
	}

	if st.State == timer.Idle {
		return fmt.Sprintf("%s: no timer running", label)
	}

	return fmt.Sprintf(
		"%s: %s %s (started %s)",
		label,
		st.State,
		timeutil.Clock(st.Elapsed),
		humanize.Time(st.StartTime),
	)
}
