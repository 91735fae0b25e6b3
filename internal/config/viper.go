package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyReminder             = "timer.reminder"
	keyBreakDuration        = "break.duration"
	keyNotificationsEnabled = "notifications.enabled"
	keyNotificationsDesktop = "notifications.desktop"
	keyNotificationsSound   = "notifications.sound"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyDarkTheme            = "display.dark_theme"
	keyStorageDriver        = "storage.driver"
	keyStoragePath          = "storage.path"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with the current values if it
// does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		c.System.ConfigPath = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper uses the values already in c as the defaults.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyReminder, c.Timer.Reminder.String())
	v.SetDefault(keyBreakDuration, c.Break.Duration.String())
	v.SetDefault(keyNotificationsEnabled, c.Notifications.Enabled)
	v.SetDefault(keyNotificationsDesktop, c.Notifications.Desktop)
	v.SetDefault(keyNotificationsSound, c.Notifications.Sound)
	v.SetDefault(keySessionCmd, c.Settings.Cmd)
	v.SetDefault(keyTwentyFourHour, c.Settings.TwentyFourHour)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
	v.SetDefault(keyStorageDriver, c.Storage.Driver)
	v.SetDefault(keyStoragePath, c.Storage.Path)
	v.SetDefault(keyLogLevel, c.Log.Level)
	v.SetDefault(keyLogMaxSize, c.Log.MaxSizeMB)
	v.SetDefault(keyLogMaxBackups, c.Log.MaxBackups)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&c.Timer.Reminder, keyReminder},
		{&c.Break.Duration, keyBreakDuration},
	}

	for _, d := range durations {
		dur, err := parseDuration(v.GetString(d.key))
		if err != nil {
			return errInvalidFileDuration.Fmt(d.key, err)
		}

		*d.dst = dur
	}

	c.Notifications.Enabled = v.GetBool(keyNotificationsEnabled)
	c.Notifications.Desktop = v.GetBool(keyNotificationsDesktop)
	c.Notifications.Sound = v.GetString(keyNotificationsSound)
	c.Settings.Cmd = v.GetString(keySessionCmd)
	c.Settings.TwentyFourHour = v.GetBool(keyTwentyFourHour)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.Storage.Driver = v.GetString(keyStorageDriver)
	c.Storage.Path = v.GetString(keyStoragePath)
	c.Log.Level = v.GetString(keyLogLevel)
	c.Log.MaxSizeMB = v.GetInt(keyLogMaxSize)
	c.Log.MaxBackups = v.GetInt(keyLogMaxBackups)

	return nil
}

// String renders a one-line summary for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf(
		"reminder=%v break=%v driver=%s notifications=%t",
		c.Timer.Reminder,
		c.Break.Duration,
		c.Storage.Driver,
		c.Notifications.Enabled,
	)
}
