package timer

import (
	"time"

	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/timeutil"
)

// State is the lifecycle state of a timer.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func parseState(s string) (State, bool) {
	switch s {
	case "running":
		return Running, true
	case "paused":
		return Paused, true
	case "idle", "":
		return Idle, true
	}

	return Idle, false
}

// Session is the in-memory record of one task's current timer run.
type Session struct {
	// StartTime is when the session was first started. It does not move on
	// resume and becomes the start time of the time entry.
	StartTime time.Time
	// StartedAt marks the start of the current running interval. It is zero
	// while paused.
	StartedAt    time.Time
	TaskID       string
	ProjectID    string
	TaskTitle    string
	ProjectTitle string
	// EntryID identifies the running time entry. It is empty when the entry
	// could not be created.
	EntryID string
	// Accumulated is the time already elapsed in previous intervals.
	Accumulated time.Duration
	// Reminder is the elapsed time after which a reminder fires (0 = off).
	Reminder      time.Duration
	State         State
	ReminderFired bool

	// peak is the largest elapsed value observed so far.
	peak time.Duration
}

// elapsed derives the elapsed time from timestamps. It never decreases even
// if the wall clock is set backwards.
func (s *Session) elapsed(now time.Time) time.Duration {
	d := s.Accumulated

	if s.State == Running {
		if running := now.Sub(s.StartedAt); running > 0 {
			d += running
		}
	}

	if d < s.peak {
		return s.peak
	}

	s.peak = d

	return d
}

// label is how the session is referred to in notifications.
func (s *Session) label() string {
	if s.TaskTitle != "" {
		return s.TaskTitle
	}

	return s.TaskID
}

// Break is an open break window.
type Break struct {
	EndsAt   time.Time
	Duration time.Duration
}

// Remaining returns the time left until the break is over.
func (b *Break) Remaining(now time.Time) time.Duration {
	if r := b.EndsAt.Sub(now); r > 0 {
		return r
	}

	return 0
}

// toSnapshot converts the engine state into its persisted form.
func toSnapshot(
	taskID string,
	sess *Session,
	brk *Break,
	now time.Time,
) *models.Snapshot {
	snap := &models.Snapshot{
		TaskID:  taskID,
		State:   Idle.String(),
		SavedAt: timeutil.ToMillis(now),
	}

	if sess != nil {
		snap.ProjectID = sess.ProjectID
		snap.TaskTitle = sess.TaskTitle
		snap.ProjectTitle = sess.ProjectTitle
		snap.EntryID = sess.EntryID
		snap.State = sess.State.String()
		snap.SessionStart = timeutil.ToMillis(sess.StartTime)
		snap.StartedAt = timeutil.ToMillis(sess.StartedAt)
		snap.AccumulatedMs = timeutil.DurationToMillis(sess.Accumulated)
		snap.ReminderMs = timeutil.DurationToMillis(sess.Reminder)
		snap.ReminderFired = sess.ReminderFired
	}

	if brk != nil {
		snap.BreakEndsAt = timeutil.ToMillis(brk.EndsAt)
		snap.BreakMs = timeutil.DurationToMillis(brk.Duration)
	}

	return snap
}

// fromSnapshot rebuilds the session and break held in snap.
func fromSnapshot(snap *models.Snapshot) (*Session, *Break, error) {
	state, ok := parseState(snap.State)
	if !ok {
		return nil, nil, errCorruptSnapshot.Fmt(snap.TaskID)
	}

	var brk *Break

	if snap.OnBreak() {
		brk = &Break{
			EndsAt:   timeutil.FromMillis(snap.BreakEndsAt),
			Duration: timeutil.MillisToDuration(snap.BreakMs),
		}
	}

	if state == Idle {
		return nil, brk, nil
	}

	if state == Running && snap.StartedAt == 0 {
		return nil, nil, errCorruptSnapshot.Fmt(snap.TaskID)
	}

	sess := &Session{
		TaskID:        snap.TaskID,
		ProjectID:     snap.ProjectID,
		TaskTitle:     snap.TaskTitle,
		ProjectTitle:  snap.ProjectTitle,
		EntryID:       snap.EntryID,
		State:         state,
		StartTime:     timeutil.FromMillis(snap.SessionStart),
		StartedAt:     timeutil.FromMillis(snap.StartedAt),
		Accumulated:   timeutil.MillisToDuration(snap.AccumulatedMs),
		Reminder:      timeutil.MillisToDuration(snap.ReminderMs),
		ReminderFired: snap.ReminderFired,
	}

	if sess.StartTime.IsZero() {
		sess.StartTime = sess.StartedAt
	}

	return sess, brk, nil
}
