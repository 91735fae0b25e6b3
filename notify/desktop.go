package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/ayoisaiah/tasktimer/internal/logger"
)

// Desktop shows system notifications.
type Desktop struct {
	log  *slog.Logger
	send func(title, msg, icon string) error
	// Icon is the path to the notification icon. It may be empty.
	Icon string
}

// NewDesktop returns a desktop notifier with the given icon.
func NewDesktop(icon string, log *slog.Logger) *Desktop {
	if log == nil {
		log = logger.Discard()
	}

	return &Desktop{
		Icon: icon,
		log:  log,
		send: func(title, msg, icon string) error {
			return beeep.Notify(title, msg, icon)
		},
	}
}

func (d *Desktop) Notify(title, body string) {
	err := d.send(title, body, d.Icon)
	if err != nil {
		d.log.Warn("unable to display notification",
			slog.String("title", title),
			slog.Any("error", err),
		)
	}
}
