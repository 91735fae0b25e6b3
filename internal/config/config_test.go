package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tasktimer/internal/config"
)

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	want := config.Default()
	want.System.ConfigPath = configPath

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("default config mismatch (-want +got):\n%s", diff)
	}

	b, err := os.ReadFile(configPath)
	require.NoError(t, err)

	content := string(b)
	assert.Contains(t, content, "duration: 5m0s")
	assert.Contains(t, content, "driver: bolt")
	assert.Contains(t, content, "24hr_clock: false")
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	yml := `timer:
  reminder: 45
break:
  duration: 10m
notifications:
  enabled: false
settings:
  cmd: notify-send done
storage:
  driver: sqlite
log:
  level: debug
`

	require.NoError(t, os.WriteFile(configPath, []byte(yml), 0o600))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, cfg.Timer.Reminder)
	assert.Equal(t, 10*time.Minute, cfg.Break.Duration)
	assert.False(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Notifications.Desktop)
	assert.Equal(t, "notify-send done", cfg.Settings.Cmd)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestViperInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		yml  string
	}{
		{"negative reminder", "timer:\n  reminder: -5m\n"},
		{"short break", "break:\n  duration: 30s\n"},
		{"long break", "break:\n  duration: 13h\n"},
		{"bad duration", "break:\n  duration: soon\n"},
		{"unknown driver", "storage:\n  driver: postgres\n"},
		{"unknown level", "log:\n  level: loud\n"},
		{"bad sound", "notifications:\n  sound: alert.aac\n"},
		{"missing sound", "notifications:\n  sound: /nonexistent/alert.ogg\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.yml), 0o600))

			_, err := config.New(config.WithViperConfig(configPath))
			assert.Error(t, err)
		})
	}
}

func TestCLIOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	set := flag.NewFlagSet("start", flag.ContinueOnError)
	set.String("reminder", "", "")
	set.String("duration", "", "")
	set.Bool("disable-notification", false, "")
	set.Bool("no-color", false, "")

	require.NoError(t, set.Parse([]string{
		"--reminder", "30",
		"--duration", "15m",
		"--disable-notification",
		"--no-color",
	}))

	ctx := cli.NewContext(cli.NewApp(), set, nil)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Timer.Reminder)
	assert.Equal(t, 15*time.Minute, cfg.Break.Duration)
	assert.False(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Display.NoColor)

	// flags do not leak into the file
	cfg, err = config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Timer.Reminder)
}

func TestCLIInvalidDuration(t *testing.T) {
	set := flag.NewFlagSet("break", flag.ContinueOnError)
	set.String("duration", "", "")
	require.NoError(t, set.Parse([]string{"--duration", "later"}))

	ctx := cli.NewContext(cli.NewApp(), set, nil)

	_, err := config.New(config.WithCLIConfig(ctx))
	assert.ErrorContains(t, err, "--duration")
}
