package notify

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Console prints notifications to the terminal.
type Console struct {
	printer *pterm.PrefixPrinter
}

// NewConsole returns a notifier writing to w, or stdout if w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}

	return &Console{
		printer: pterm.Info.WithPrefix(pterm.Prefix{
			Text:  "NOTICE",
			Style: pterm.Info.Prefix.Style,
		}).WithWriter(w),
	}
}

func (c *Console) Notify(title, body string) {
	c.printer.Printfln("%s: %s", title, body)
}
