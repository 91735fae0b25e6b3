// Package config loads tasktimer settings from the config file and the
// command line.
package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Timer         TimerConfig        `mapstructure:"timer"`
		Break         BreakConfig        `mapstructure:"break"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Display       DisplayConfig      `mapstructure:"display"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Log           LogConfig          `mapstructure:"log"`
		System        SystemConfig       `mapstructure:"-"`
	}

	// TimerConfig holds timer settings.
	TimerConfig struct {
		// Reminder is the elapsed time after which a reminder is sent. Zero
		// disables it.
		Reminder time.Duration `mapstructure:"reminder"`
	}

	// BreakConfig holds break settings.
	BreakConfig struct {
		Duration time.Duration `mapstructure:"duration"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		// Sound is the path to an audio file played for reminders and when a
		// break is over. Empty disables sound.
		Sound   string `mapstructure:"sound"`
		Enabled bool   `mapstructure:"enabled"`
		Desktop bool   `mapstructure:"desktop"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		// Cmd runs after a timer is stopped.
		Cmd            string `mapstructure:"cmd"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
		NoColor   bool `mapstructure:"-"`
	}

	// StorageConfig selects the time entry store.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		// Path overrides the default database location.
		Path string `mapstructure:"path"`
	}

	// LogConfig controls the application log.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// SystemConfig holds resolved paths.
	SystemConfig struct {
		ConfigPath string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

// Storage drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Break: BreakConfig{
			Duration: 5 * time.Minute,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Desktop: true,
		},
		Display: DisplayConfig{
			DarkTheme: true,
		},
		Storage: StorageConfig{
			Driver: DriverBolt,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// New creates a new Config with default values, applies opts in order and
// validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := Default()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// parseDuration accepts duration strings and bare numbers of minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as minutes in case duration unit is absent
	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
