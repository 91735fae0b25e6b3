// Package notify delivers timer notifications to the desktop, the terminal,
// the speaker and user-defined commands.
//
// Delivery is best-effort: failures are logged and never reach the caller.
package notify

// Notifier receives a notification title and body.
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) {
	f(title, body)
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(title, body string) {
	for _, n := range m {
		if n != nil {
			n.Notify(title, body)
		}
	}
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, string) {}

// Filter forwards only the notifications whose title is not dropped.
type Filter struct {
	Next Notifier
	Drop map[string]bool
}

func (f Filter) Notify(title, body string) {
	if f.Next == nil || f.Drop[title] {
		return
	}

	f.Next.Notify(title, body)
}

// titleSet builds a lookup from a list of titles.
func titleSet(titles []string) map[string]bool {
	set := make(map[string]bool, len(titles))

	for _, t := range titles {
		set[t] = true
	}

	return set
}
