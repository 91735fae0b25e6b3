package notify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tasktimer/internal/logger"
	"github.com/ayoisaiah/tasktimer/internal/osutil"
)

type recorder struct {
	titles []string
}

func (r *recorder) Notify(title, _ string) {
	r.titles = append(r.titles, title)
}

func TestMultiAndFilter(t *testing.T) {
	a, b := &recorder{}, &recorder{}

	n := Multi{
		a,
		nil,
		Filter{Next: b, Drop: map[string]bool{"Timer Started": true}},
	}

	n.Notify("Timer Started", "")
	n.Notify("Timer Stopped", "")

	assert.Equal(t, []string{"Timer Started", "Timer Stopped"}, a.titles)
	assert.Equal(t, []string{"Timer Stopped"}, b.titles)

	Nop{}.Notify("x", "y")
	Filter{}.Notify("x", "y")
}

func TestDesktop(t *testing.T) {
	var logs bytes.Buffer

	d := NewDesktop("icon.png", logger.FromWriter(&logs, -4))

	var got []string

	d.send = func(title, msg, icon string) error {
		got = append(got, title, msg, icon)
		return nil
	}

	d.Notify("Timer Started", "Started tracking time")
	assert.Equal(t, []string{"Timer Started", "Started tracking time", "icon.png"}, got)
	assert.Empty(t, logs.String())

	d.send = func(string, string, string) error {
		return errors.New("no dbus")
	}

	d.Notify("Timer Stopped", "")
	assert.Contains(t, logs.String(), "no dbus")
}

func TestConsole(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	var buf bytes.Buffer

	NewConsole(&buf).Notify("Break Started", "Taking a 5 minute break")

	assert.Contains(t, buf.String(), "Break Started: Taking a 5 minute break")
}

func TestValidateSoundFile(t *testing.T) {
	for _, p := range []string{"a.ogg", "b.MP3", "c.flac", "/x/d.wav"} {
		assert.NoError(t, ValidateSoundFile(p), p)
	}

	for _, p := range []string{"a.aac", "noext", ""} {
		assert.ErrorIs(t, ValidateSoundFile(p), errInvalidSoundFormat, p)
	}
}

func TestSoundPlaysSelectedTitles(t *testing.T) {
	s := NewSound("alert.ogg", nil, "Time Reminder", "Break Time Over")

	var played []string

	s.play = func(path string) error {
		played = append(played, path)
		return nil
	}

	s.Notify("Timer Started", "")
	s.Notify("Time Reminder", "")
	s.Notify("Break Time Over", "")

	assert.Equal(t, []string{"alert.ogg", "alert.ogg"}, played)
}

func TestSoundMissingFileIsLogged(t *testing.T) {
	var logs bytes.Buffer

	s := NewSound(
		filepath.Join(t.TempDir(), "missing.wav"),
		logger.FromWriter(&logs, 0),
		"Time Reminder",
	)

	s.Notify("Time Reminder", "")

	assert.Contains(t, logs.String(), "unable to play sound")
}

func TestCommand(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("requires a POSIX shell")
	}

	out := filepath.Join(t.TempDir(), "out.txt")

	c, err := NewCommand(
		`sh -c 'printf "%s|%s" "$TASKTIMER_TITLE" "$TASKTIMER_BODY" > "$0"' `+out,
		nil,
		"Timer Stopped",
	)
	require.NoError(t, err)

	c.Notify("Timer Started", "ignored")

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	c.Notify("Timer Stopped", `Tracked 00:00:05 for "t1"`)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `Timer Stopped|Tracked 00:00:05 for "t1"`, string(b))
}

func TestCommandParseError(t *testing.T) {
	_, err := NewCommand(`echo "unterminated`, nil)
	assert.Error(t, err)

	c, err := NewCommand("", nil, "Timer Stopped")
	require.NoError(t, err)

	c.Notify("Timer Stopped", "")
}
