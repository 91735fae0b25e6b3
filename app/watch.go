package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tasktimer/internal/timeutil"
	"github.com/ayoisaiah/tasktimer/internal/ui"
	"github.com/ayoisaiah/tasktimer/timer"
)

const (
	padding  = 2
	maxWidth = 60
)

var (
	baseStyle   = lipgloss.NewStyle().Padding(1, padding)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	clockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// viewNotifier keeps the latest notification for the live view.
type viewNotifier struct {
	mu    sync.Mutex
	title string
	body  string
}

func (v *viewNotifier) Notify(title, body string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.title, v.body = title, body
}

func (v *viewNotifier) last() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.title == "" {
		return ""
	}

	return v.title + ": " + v.body
}

type keymap struct {
	toggle   key.Binding
	stop     key.Binding
	brk      key.Binding
	endBreak key.Binding
	quit     key.Binding
}

var defaultKeymap = keymap{
	toggle: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	stop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop"),
	),
	brk: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break"),
	),
	endBreak: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end break"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(timer.DefaultTickPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchModel is the live view of a single timer.
type watchModel struct {
	ctx           context.Context
	eng           *timer.Engine
	notices       *viewNotifier
	log           *slog.Logger
	help          help.Model
	progress      progress.Model
	status        timer.Status
	err           error
	tracked       string
	breakDuration time.Duration
	is24          bool
}

func newWatchModel(
	ctx context.Context,
	e *env,
	eng *timer.Engine,
	notices *viewNotifier,
) *watchModel {
	m := &watchModel{
		ctx:           ctx,
		eng:           eng,
		notices:       notices,
		log:           e.log,
		help:          help.New(),
		progress:      progress.New(progress.WithDefaultGradient()),
		breakDuration: e.cfg.Break.Duration,
		is24:          e.cfg.Settings.TwentyFourHour,
	}

	m.progress.Width = maxWidth
	m.status = eng.Status()

	return m
}

func (m *watchModel) Init() tea.Cmd {
	return tick()
}

func (m *watchModel) refresh() {
	st, err := m.eng.Tick(m.ctx)
	m.status = st

	if err != nil {
		m.err = err
	}
}

func (m *watchModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	var err error

	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return tea.Quit

	case key.Matches(msg, defaultKeymap.toggle):
		switch m.eng.State() {
		case timer.Running:
			err = m.eng.Pause(m.ctx)
		case timer.Paused:
			err = m.eng.Resume(m.ctx)
		case timer.Idle:
		}

	case key.Matches(msg, defaultKeymap.stop):
		entry, stopErr := m.eng.Stop(m.ctx)
		if entry != nil {
			m.tracked = timeutil.Clock(entry.Duration)
		}

		err = stopErr

	case key.Matches(msg, defaultKeymap.brk):
		entry, brkErr := m.eng.StartBreak(m.ctx, m.breakDuration)
		if entry != nil {
			m.tracked = timeutil.Clock(entry.Duration)
		}

		err = brkErr

	case key.Matches(msg, defaultKeymap.endBreak):
		err = m.eng.EndBreak(m.ctx)

	default:
		return nil
	}

	m.err = err
	m.status = m.eng.Status()

	return nil
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.log.Debug("watch update", slog.String("msg", spew.Sdump(msg)))

	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m *watchModel) helpView() string {
	bindings := []key.Binding{defaultKeymap.quit}

	switch {
	case m.status.OnBreak:
		bindings = append([]key.Binding{defaultKeymap.endBreak}, bindings...)
	case m.status.State == timer.Idle:
		bindings = append([]key.Binding{defaultKeymap.brk}, bindings...)
	default:
		bindings = append([]key.Binding{
			defaultKeymap.toggle,
			defaultKeymap.stop,
			defaultKeymap.brk,
		}, bindings...)
	}

	return m.help.ShortHelpView(bindings)
}

func (m *watchModel) timerView() string {
	var s strings.Builder

	st := m.status

	s.WriteString(titleStyle.Render(firstNonEmptyString(st.TaskTitle, st.TaskID)))

	if project := firstNonEmptyString(st.ProjectTitle, st.ProjectID); project != "" {
		s.WriteString(hintStyle.Render(" (" + project + ")"))
	}

	s.WriteString("\n\n")

	switch {
	case st.OnBreak:
		s.WriteString(ui.Yellow("[Break]") + " ")
		s.WriteString(clockStyle.Render(timeutil.Clock(st.BreakRemaining)))
		s.WriteString(hintStyle.Render(" left"))

		if st.BreakDuration > 0 {
			done := 1 - float64(st.BreakRemaining)/float64(st.BreakDuration)
			s.WriteString("\n\n" + m.progress.ViewAs(done))
		}

	case st.State == timer.Idle:
		s.WriteString(hintStyle.Render("No timer running"))

	default:
		s.WriteString(ui.State(st.State.String()) + " ")
		s.WriteString(clockStyle.Render(timeutil.Clock(st.Elapsed)))
		s.WriteString(hintStyle.Render(
			" since " + st.StartTime.Local().Format(clockLayout(m.is24)),
		))

		if sess := m.eng.Session(); sess != nil && sess.Reminder > 0 {
			done := float64(st.Elapsed) / float64(sess.Reminder)
			if done > 1 {
				done = 1
			}

			s.WriteString("\n\n" + m.progress.ViewAs(done))
		}
	}

	if m.tracked != "" {
		s.WriteString("\n\n" + hintStyle.Render("Last tracked: "+m.tracked))
	}

	if notice := m.notices.last(); notice != "" {
		s.WriteString("\n\n" + noticeStyle.Render(notice))
	}

	if m.err != nil {
		s.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}

	s.WriteString("\n\n" + m.helpView())

	return s.String()
}

func (m *watchModel) View() string {
	return baseStyle.Render(m.timerView())
}

func clockLayout(twentyFourHour bool) string {
	if twentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

// runWatch shows the live view until the user quits. A plain status line is
// printed instead when plain is set or stdout is not a terminal.
func runWatch(
	ctx context.Context,
	e *env,
	eng *timer.Engine,
	notices *viewNotifier,
	plain bool,
) error {
	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return runPlain(ctx, eng, notices)
	}

	p := tea.NewProgram(newWatchModel(ctx, e, eng, notices), tea.WithContext(ctx))

	_, err := p.Run()

	return err
}

// runPlain prints the timer status in place until interrupted. It is used
// when the output is not an interactive terminal.
func runPlain(ctx context.Context, eng *timer.Engine, notices *viewNotifier) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return err
	}

	eng.Run(ctx, timer.DefaultTickPeriod, func(st timer.Status) {
		text := describeStatus(st)

		if notice := notices.last(); notice != "" {
			text = fmt.Sprintf("%s\n%s", text, notice)
		}

		area.Update(text)
	})

	return area.Stop()
}
