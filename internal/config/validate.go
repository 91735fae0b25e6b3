package config

import (
	"errors"
	"os"
	"time"

	"github.com/ayoisaiah/tasktimer/internal/logger"
	"github.com/ayoisaiah/tasktimer/notify"
)

var (
	// Minimum and maximum break duration constraints.
	minBreakDuration = 1 * time.Minute
	maxBreakDuration = 720 * time.Minute // 12 hours
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Timer.Reminder < 0 {
		return errNegativeReminder.Fmt(c.Timer.Reminder)
	}

	if c.Break.Duration < minBreakDuration ||
		c.Break.Duration > maxBreakDuration {
		return errInvalidBreakDuration.Fmt(
			minBreakDuration,
			maxBreakDuration,
			c.Break.Duration,
		)
	}

	switch c.Storage.Driver {
	case DriverBolt, DriverSQLite:
	default:
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errUnknownLogLevel.Fmt(c.Log.Level)
	}

	return c.validateSound()
}

func (c *Config) validateSound() error {
	sound := c.Notifications.Sound
	if sound == "" {
		return nil
	}

	if err := notify.ValidateSoundFile(sound); err != nil {
		return errInvalidSound.Wrap(err)
	}

	_, err := os.Stat(sound)
	if errors.Is(err, os.ErrNotExist) {
		return errInvalidSound.Wrap(err)
	}

	return nil
}
