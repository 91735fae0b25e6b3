package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Reminder      string
	BreakDuration string
	Sound         string
	SessionCmd    string
	DisableNotify bool
	NoColor       bool
}

// WithCLIConfig returns an Option that applies command-line flags on top of
// the file configuration. Flags that are not set leave the value untouched.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Reminder:      ctx.String("reminder"),
			BreakDuration: ctx.String("duration"),
			Sound:         ctx.String("sound"),
			SessionCmd:    ctx.String("cmd"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoColor:       ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	durations := []struct {
		dst  *time.Duration
		val  string
		name string
	}{
		{&c.Timer.Reminder, opts.Reminder, "reminder"},
		{&c.Break.Duration, opts.BreakDuration, "duration"},
	}

	for _, d := range durations {
		if d.val == "" {
			continue
		}

		dur, err := parseDuration(d.val)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.name, err)
		}

		*d.dst = dur
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.NoColor {
		c.Display.NoColor = true
	}

	if opts.Sound != "" {
		if opts.Sound == "off" {
			c.Notifications.Sound = ""
		} else {
			c.Notifications.Sound = opts.Sound
		}
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	return nil
}
