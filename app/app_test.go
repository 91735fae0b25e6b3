package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tasktimer/internal/config"
	"github.com/ayoisaiah/tasktimer/internal/logger"
	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/testutil"
	"github.com/ayoisaiah/tasktimer/store"
	"github.com/ayoisaiah/tasktimer/timer"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testEnv(t *testing.T) *env {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "tasktimer.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Default()
	cfg.Notifications.Enabled = false

	return &env{
		cfg:     cfg,
		log:     logger.Discard(),
		db:      db,
		entries: db,
	}
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Empty(t, firstNonEmptyString("", ""))
}

func TestNonFatal(t *testing.T) {
	assert.True(t, nonFatal(timer.ErrRepository))
	assert.True(t, nonFatal(errors.Join(timer.ErrPersistence, errors.New("disk full"))))
	assert.False(t, nonFatal(timer.ErrNotRunning))
	assert.False(t, nonFatal(errors.New("boom")))
}

func TestParseSince(t *testing.T) {
	now := testutil.Epoch

	got, err := parseSince("", now)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = parseSince("2 days ago", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(-48*time.Hour), got, 24*time.Hour)
	assert.True(t, got.Before(now))

	_, err = parseSince("@@@", now)
	assert.ErrorIs(t, err, errInvalidSince)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2h 05m", formatHours(125*time.Minute))
	assert.Equal(t, "0h 00m", formatHours(0))
}

func TestDescribeStatus(t *testing.T) {
	st := timer.Status{
		TaskID:  "t1",
		State:   timer.Idle,
		OnBreak: true,
		// 4m30s left
		BreakRemaining: 270 * time.Second,
	}

	assert.Equal(t, "t1: on a break, 00:04:30 left", describeStatus(st))

	st = timer.Status{TaskID: "t1", TaskTitle: "Write docs", State: timer.Idle}
	assert.Equal(t, "Write docs: no timer running", describeStatus(st))

	st = timer.Status{
		TaskID:    "t1",
		State:     timer.Paused,
		Elapsed:   90 * time.Second,
		StartTime: time.Now().Add(-time.Hour),
	}
	assert.Contains(t, describeStatus(st), "t1: paused 00:01:30")
}

func TestResolveTask(t *testing.T) {
	e := testEnv(t)
	ctx := context.Background()

	_, err := e.resolveTask(ctx, "")
	assert.ErrorIs(t, err, errNoActiveTimer)

	id, err := e.resolveTask(ctx, "  explicit ")
	require.NoError(t, err)
	assert.Equal(t, "explicit", id)

	require.NoError(t, e.db.Save(ctx, "task-10", &models.Snapshot{TaskID: "task-10"}))

	id, err = e.resolveTask(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "task-10", id)

	require.NoError(t, e.db.Save(ctx, "task-9", &models.Snapshot{TaskID: "task-9"}))

	_, err = e.resolveTask(ctx, "")
	assert.ErrorIs(t, err, errAmbiguousTask)

	snaps, err := e.activeTimers(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "task-9", snaps[0].TaskID)
	assert.Equal(t, "task-10", snaps[1].TaskID)
}

func TestCheck(t *testing.T) {
	e := testEnv(t)

	assert.NoError(t, e.check(nil))
	assert.NoError(t, e.check(timer.ErrPersistence))
	assert.ErrorIs(t, e.check(timer.ErrNotRunning), timer.ErrNotRunning)
}

func TestLoadRestoresPersistedTimer(t *testing.T) {
	e := testEnv(t)
	ctx := context.Background()

	eng := e.engine(nil)
	require.NoError(t, eng.Start(ctx, timer.StartOptions{
		TaskID:    "t1",
		ProjectID: "p1",
	}))

	restored, err := e.load(ctx, "t1", nil)
	require.NoError(t, err)
	assert.Equal(t, timer.Running, restored.State())

	entry, err := restored.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, models.StatusCompleted, entry.Status)

	entries, err := e.entries.List(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestWatchModelKeys(t *testing.T) {
	e := testEnv(t)
	ctx := context.Background()
	clock := &stepClock{now: testutil.Epoch}
	notices := &viewNotifier{}

	eng := timer.New(
		timer.WithClock(clock),
		timer.WithNotifier(notices),
		timer.WithLogger(e.log),
	)

	require.NoError(t, eng.Start(ctx, timer.StartOptions{
		TaskID:    "t1",
		ProjectID: "p1",
		TaskTitle: "Write docs",
	}))

	m := newWatchModel(ctx, e, eng, notices)
	assert.Contains(t, m.View(), "Write docs")

	clock.Advance(10 * time.Second)

	_, cmd := m.Update(tickMsg(clock.now))
	assert.NotNil(t, cmd)
	assert.Equal(t, 10*time.Second, m.status.Elapsed)

	m.Update(keyPress('p'))
	assert.Equal(t, timer.Paused, eng.State())

	m.Update(keyPress('p'))
	assert.Equal(t, timer.Running, eng.State())

	clock.Advance(5 * time.Second)

	m.Update(keyPress('s'))
	assert.Equal(t, timer.Idle, eng.State())
	assert.Equal(t, "00:00:15", m.tracked)
	assert.Contains(t, notices.last(), timer.TitleStopped)

	m.Update(keyPress('b'))
	assert.True(t, eng.OnBreak())
	assert.True(t, clock.now.Add(e.cfg.Break.Duration).Equal(eng.Status().BreakEndsAt))
	assert.Contains(t, m.View(), "[Break]")

	m.Update(keyPress('e'))
	assert.False(t, eng.OnBreak())
	assert.NoError(t, m.err)

	m.Update(keyPress('e'))
	assert.ErrorIs(t, m.err, timer.ErrNotOnBreak)

	_, cmd = m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewNotifierKeepsLatest(t *testing.T) {
	v := &viewNotifier{}
	assert.Empty(t, v.last())

	v.Notify("a", "one")
	v.Notify("b", "two")
	assert.Equal(t, "b: two", v.last())
}
