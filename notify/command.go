package notify

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/tasktimer/internal/logger"
)

// Environment variables passed to user commands.
const (
	EnvTitle = "TASKTIMER_TITLE"
	EnvBody  = "TASKTIMER_BODY"
)

// Command runs a user-supplied shell command for selected notification
// titles. The notification is exposed to the command through EnvTitle and
// EnvBody.
type Command struct {
	log    *slog.Logger
	titles map[string]bool
	name   string
	args   []string
}

// NewCommand parses cmdline with shell quoting rules. An empty command line
// yields a notifier that does nothing.
func NewCommand(
	cmdline string,
	log *slog.Logger,
	titles ...string,
) (*Command, error) {
	if log == nil {
		log = logger.Discard()
	}

	c := &Command{
		log:    log,
		titles: titleSet(titles),
	}

	if cmdline == "" {
		return c, nil
	}

	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("unable to parse settings.cmd option: %w", err)
	}

	if len(cmdSlice) > 0 {
		c.name = cmdSlice[0]
		c.args = cmdSlice[1:]
	}

	return c, nil
}

func (c *Command) Notify(title, body string) {
	if c.name == "" || !c.titles[title] {
		return
	}

	cmd := exec.Command(c.name, c.args...)
	cmd.Env = append(os.Environ(),
		EnvTitle+"="+title,
		EnvBody+"="+body,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		c.log.Warn("settings.cmd failed",
			slog.String("cmd", c.name),
			slog.String("output", string(out)),
			slog.Any("error", err),
		)

		return
	}

	c.log.Info("settings.cmd executed", slog.String("cmd", c.name))
}
