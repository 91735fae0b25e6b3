// Package timer implements the task timer: a start/pause/resume/stop state
// machine whose elapsed time is always derived from wall-clock timestamps,
// together with one-shot reminders and break windows.
//
// An Engine is not safe for concurrent use. All calls, including Tick, must
// come from the goroutine that owns it.
package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ayoisaiah/tasktimer/internal/logger"
	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/timeutil"
)

// Notification titles emitted by the engine.
const (
	TitleStarted    = "Timer Started"
	TitleStopped    = "Timer Stopped"
	TitleReminder   = "Time Reminder"
	TitleBreakStart = "Break Started"
	TitleBreakOver  = "Break Time Over"
	TitleBreakEnded = "Break Ended"
)

// StartOptions describes the work item being timed.
type StartOptions struct {
	TaskID       string
	ProjectID    string
	TaskTitle    string
	ProjectTitle string
	// Reminder fires a single notification once the elapsed time reaches
	// this value. Zero disables the reminder.
	Reminder time.Duration
}

// Status is a point-in-time view of the engine for presentation.
type Status struct {
	TaskID         string        `json:"task_id"`
	ProjectID      string        `json:"project_id"`
	TaskTitle      string        `json:"task_title"`
	ProjectTitle   string        `json:"project_title"`
	State          State         `json:"state"`
	Elapsed        time.Duration `json:"elapsed"`
	BreakRemaining time.Duration `json:"break_remaining"`
	BreakDuration  time.Duration `json:"break_duration"`
	BreakEndsAt    time.Time     `json:"break_ends_at"`
	StartTime      time.Time     `json:"start_time"`
	OnBreak        bool          `json:"on_break"`
	ReminderFired  bool          `json:"reminder_fired"`
}

// Engine owns the timer state for a single task.
type Engine struct {
	clock     Clock
	persister Persister
	repo      Repository
	notifier  Notifier
	log       *slog.Logger
	sess      *Session
	brk       *Break
	// taskID is the key under which state is persisted. It is set by Start
	// and Restore.
	taskID string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithPersister sets the local state store.
func WithPersister(p Persister) Option {
	return func(e *Engine) {
		e.persister = p
	}
}

// WithRepository sets the time entry store.
func WithRepository(r Repository) Option {
	return func(e *Engine) {
		e.repo = r
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an idle engine. Collaborators that are not supplied default to
// no-op implementations.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:     SystemClock,
		persister: nopPersister{},
		repo:      nopRepository{},
		notifier:  NotifierFunc(func(string, string) {}),
		log:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// State returns the current timer state.
func (e *Engine) State() State {
	if e.sess == nil {
		return Idle
	}

	return e.sess.State
}

// Session returns a copy of the active session, or nil when idle.
func (e *Engine) Session() *Session {
	if e.sess == nil {
		return nil
	}

	s := *e.sess

	return &s
}

// OnBreak reports whether a break window is open.
func (e *Engine) OnBreak() bool {
	return e.brk != nil
}

// TaskID returns the task the engine is bound to.
func (e *Engine) TaskID() string {
	return e.taskID
}

// Elapsed returns the elapsed time of the active session. It can be called
// at any time and does not depend on Tick.
func (e *Engine) Elapsed() time.Duration {
	if e.sess == nil {
		return 0
	}

	return e.sess.elapsed(e.clock.Now())
}

// Status returns a presentation snapshot of the engine.
func (e *Engine) Status() Status {
	now := e.clock.Now()

	st := Status{
		TaskID: e.taskID,
		State:  Idle,
	}

	if e.sess != nil {
		st.TaskID = e.sess.TaskID
		st.ProjectID = e.sess.ProjectID
		st.TaskTitle = e.sess.TaskTitle
		st.ProjectTitle = e.sess.ProjectTitle
		st.State = e.sess.State
		st.StartTime = e.sess.StartTime
		st.Elapsed = e.sess.elapsed(now)
		st.ReminderFired = e.sess.ReminderFired
	}

	if e.brk != nil {
		st.OnBreak = true
		st.BreakRemaining = e.brk.Remaining(now)
		st.BreakDuration = e.brk.Duration
		st.BreakEndsAt = e.brk.EndsAt
	}

	return st
}

// Start begins timing a task and records a running time entry.
//
// A repository or persistence failure does not prevent the timer from
// starting; it is reported through the returned error, which then matches
// ErrRepository or ErrPersistence.
func (e *Engine) Start(ctx context.Context, opts StartOptions) error {
	if e.brk != nil {
		return ErrOnBreak
	}

	if e.sess != nil {
		return ErrAlreadyRunning.Fmt(e.sess.State)
	}

	opts.TaskID = strings.TrimSpace(opts.TaskID)
	opts.ProjectID = strings.TrimSpace(opts.ProjectID)

	if opts.TaskID == "" {
		return ErrInvalidSession.Fmt("task id")
	}

	if opts.ProjectID == "" {
		return ErrInvalidSession.Fmt("project id")
	}

	if opts.Reminder < 0 {
		opts.Reminder = 0
	}

	now := e.clock.Now()

	entry := &models.TimeEntry{
		TaskID:       opts.TaskID,
		ProjectID:    opts.ProjectID,
		TaskTitle:    opts.TaskTitle,
		ProjectTitle: opts.ProjectTitle,
		StartTime:    now,
		Status:       models.StatusRunning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var repoErr error

	id, err := e.repo.Create(ctx, entry)
	if err != nil {
		repoErr = ErrRepository.Wrap(err)

		e.log.ErrorContext(ctx, "creating time entry failed",
			slog.String("task_id", opts.TaskID),
			slog.Any("error", err),
		)
	}

	e.taskID = opts.TaskID
	e.sess = &Session{
		TaskID:       opts.TaskID,
		ProjectID:    opts.ProjectID,
		TaskTitle:    opts.TaskTitle,
		ProjectTitle: opts.ProjectTitle,
		EntryID:      id,
		State:        Running,
		StartTime:    now,
		StartedAt:    now,
		Reminder:     opts.Reminder,
	}

	persistErr := e.persist(ctx, now)

	e.log.InfoContext(ctx, "timer started",
		slog.String("task_id", opts.TaskID),
		slog.String("project_id", opts.ProjectID),
		slog.String("entry_id", id),
		slog.Duration("reminder", opts.Reminder),
	)

	e.notifier.Notify(
		TitleStarted,
		fmt.Sprintf("Started tracking time for %q", e.sess.label()),
	)

	return errors.Join(repoErr, persistErr)
}

// Pause folds the current running interval into the accumulated time.
func (e *Engine) Pause(ctx context.Context) error {
	if e.sess == nil || e.sess.State != Running {
		return ErrNotRunning
	}

	now := e.clock.Now()

	e.sess.Accumulated = e.sess.elapsed(now)
	e.sess.StartedAt = time.Time{}
	e.sess.State = Paused

	e.log.InfoContext(ctx, "timer paused",
		slog.String("task_id", e.sess.TaskID),
		slog.Duration("elapsed", e.sess.Accumulated),
	)

	return e.persist(ctx, now)
}

// Resume restarts a paused timer. The clock is restarted offset by the time
// already accumulated so that the elapsed time continues where it left off.
func (e *Engine) Resume(ctx context.Context) error {
	if e.sess == nil {
		return ErrNotRunning
	}

	if e.sess.State == Running {
		return ErrAlreadyRunning.Fmt(e.sess.State)
	}

	now := e.clock.Now()

	e.sess.StartedAt = now.Add(-e.sess.Accumulated)
	e.sess.Accumulated = 0
	e.sess.State = Running

	e.log.InfoContext(ctx, "timer resumed",
		slog.String("task_id", e.sess.TaskID),
	)

	return e.persist(ctx, now)
}

// Stop ends the session and completes its time entry. The completed entry is
// returned even when the error reports a repository or persistence failure.
//
// Before Stop returns, the entry update has been issued and the persisted
// state cleared, so a later Restore cannot bring the session back.
func (e *Engine) Stop(ctx context.Context) (*models.TimeEntry, error) {
	if e.sess == nil {
		return nil, ErrNotRunning
	}

	sess := e.sess
	now := e.clock.Now()
	duration := sess.elapsed(now)

	entry := &models.TimeEntry{
		ID:           sess.EntryID,
		TaskID:       sess.TaskID,
		ProjectID:    sess.ProjectID,
		TaskTitle:    sess.TaskTitle,
		ProjectTitle: sess.ProjectTitle,
		StartTime:    sess.StartTime,
		CreatedAt:    sess.StartTime,
	}

	update := models.EntryUpdate{
		EndTime:  now,
		Status:   models.StatusCompleted,
		Duration: duration,
	}

	update.Apply(entry, now)

	repoErr := e.recordStop(ctx, entry, update)

	e.sess = nil

	persistErr := e.persist(ctx, now)

	e.log.InfoContext(ctx, "timer stopped",
		slog.String("task_id", sess.TaskID),
		slog.String("entry_id", entry.ID),
		slog.Duration("duration", duration),
	)

	e.notifier.Notify(
		TitleStopped,
		fmt.Sprintf(
			"Tracked %s for %q",
			timeutil.Clock(duration),
			sess.label(),
		),
	)

	return entry, errors.Join(repoErr, persistErr)
}

// recordStop completes the running entry. If the entry was never created,
// a completed entry is created instead so the tracked time is not lost.
func (e *Engine) recordStop(
	ctx context.Context,
	entry *models.TimeEntry,
	update models.EntryUpdate,
) error {
	var err error

	if entry.ID != "" {
		err = e.repo.Update(ctx, entry.ID, update)
	} else {
		entry.ID, err = e.repo.Create(ctx, entry)
	}

	if err != nil {
		e.log.ErrorContext(ctx, "completing time entry failed",
			slog.String("task_id", entry.TaskID),
			slog.String("entry_id", entry.ID),
			slog.Any("error", err),
		)

		return ErrRepository.Wrap(err)
	}

	return nil
}

// Reset discards the session and any open break without touching the time
// entry store. Confirmation is the caller's concern.
func (e *Engine) Reset(ctx context.Context) error {
	e.sess = nil
	e.brk = nil

	if e.taskID == "" {
		return nil
	}

	e.log.InfoContext(ctx, "timer reset", slog.String("task_id", e.taskID))

	return e.clear(ctx)
}

// StartBreak opens a break window of duration d. A running or paused timer is
// stopped first, and its completed entry is returned.
func (e *Engine) StartBreak(
	ctx context.Context,
	d time.Duration,
) (*models.TimeEntry, error) {
	if d <= 0 {
		return nil, ErrInvalidBreak.Fmt(d)
	}

	if e.brk != nil {
		return nil, ErrAlreadyRunning.Fmt("on break")
	}

	var (
		entry   *models.TimeEntry
		stopErr error
	)

	if e.sess != nil {
		entry, stopErr = e.Stop(ctx)
	}

	now := e.clock.Now()

	e.brk = &Break{
		Duration: d,
		EndsAt:   now.Add(d),
	}

	persistErr := e.persist(ctx, now)

	e.log.InfoContext(ctx, "break started",
		slog.String("task_id", e.taskID),
		slog.Duration("duration", d),
	)

	e.notifier.Notify(
		TitleBreakStart,
		fmt.Sprintf("Taking a %s break", describeBreak(d)),
	)

	return entry, errors.Join(stopErr, persistErr)
}

// EndBreak closes the break window before its deadline.
func (e *Engine) EndBreak(ctx context.Context) error {
	if e.brk == nil {
		return ErrNotOnBreak
	}

	e.brk = nil

	e.log.InfoContext(ctx, "break ended early", slog.String("task_id", e.taskID))

	e.notifier.Notify(TitleBreakEnded, "Back to work")

	return e.persist(ctx, e.clock.Now())
}

// Tick checks the reminder threshold and the break deadline and returns the
// current status. It drives presentation only: skipping or delaying ticks
// never changes the elapsed time.
func (e *Engine) Tick(ctx context.Context) (Status, error) {
	now := e.clock.Now()

	var err error

	if s := e.sess; s != nil && s.State == Running && s.Reminder > 0 &&
		!s.ReminderFired && s.elapsed(now) >= s.Reminder {
		s.ReminderFired = true

		err = errors.Join(err, e.persist(ctx, now))

		e.log.InfoContext(ctx, "reminder fired",
			slog.String("task_id", s.TaskID),
			slog.Duration("threshold", s.Reminder),
		)

		e.notifier.Notify(
			TitleReminder,
			fmt.Sprintf(
				"You've been working on %q for %s!",
				s.label(),
				describeMinutes(s.Reminder),
			),
		)
	}

	if e.brk != nil && !now.Before(e.brk.EndsAt) {
		e.brk = nil

		err = errors.Join(err, e.persist(ctx, now))

		e.log.InfoContext(ctx, "break over", slog.String("task_id", e.taskID))

		e.notifier.Notify(TitleBreakOver, "Time to get back to work!")
	}

	return e.Status(), err
}

// Restore loads the persisted state for taskID into an idle engine. A
// restored running timer keeps accruing time from its original start.
func (e *Engine) Restore(ctx context.Context, taskID string) error {
	if e.sess != nil || e.brk != nil {
		return ErrAlreadyRunning.Fmt(e.State())
	}

	e.taskID = strings.TrimSpace(taskID)

	snap, err := e.persister.Restore(ctx, e.taskID)
	if err != nil {
		return ErrPersistence.Wrap(err)
	}

	if snap == nil {
		return nil
	}

	sess, brk, err := fromSnapshot(snap)
	if err != nil {
		return ErrPersistence.Wrap(err)
	}

	if sess != nil {
		sess.TaskID = e.taskID
	}

	e.sess = sess
	e.brk = brk

	e.log.InfoContext(ctx, "timer restored",
		slog.String("task_id", e.taskID),
		slog.String("state", e.State().String()),
		slog.Bool("on_break", brk != nil),
	)

	return nil
}

// persist saves the current state, or clears it when nothing is active.
func (e *Engine) persist(ctx context.Context, now time.Time) error {
	if e.taskID == "" {
		return nil
	}

	if e.sess == nil && e.brk == nil {
		return e.clear(ctx)
	}

	err := e.persister.Save(ctx, e.taskID, toSnapshot(e.taskID, e.sess, e.brk, now))
	if err != nil {
		e.log.WarnContext(ctx, "saving timer state failed",
			slog.String("task_id", e.taskID),
			slog.Any("error", err),
		)

		return ErrPersistence.Wrap(err)
	}

	return nil
}

func (e *Engine) clear(ctx context.Context) error {
	err := e.persister.Clear(ctx, e.taskID)
	if err != nil {
		e.log.WarnContext(ctx, "clearing timer state failed",
			slog.String("task_id", e.taskID),
			slog.Any("error", err),
		)

		return ErrPersistence.Wrap(err)
	}

	return nil
}

// describeMinutes renders whole-minute durations as "N minute(s)" and falls
// back to the duration string otherwise.
func describeMinutes(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}

	mins := int(d / time.Minute)
	if mins == 1 {
		return "1 minute"
	}

	return fmt.Sprintf("%d minutes", mins)
}

// describeBreak renders a break length as used before a noun ("5 minute").
func describeBreak(d time.Duration) string {
	if d%time.Minute != 0 {
		return d.String()
	}

	return fmt.Sprintf("%d minute", int(d/time.Minute))
}
