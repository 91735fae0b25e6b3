package app

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tasktimer/internal/config"
	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/pathutil"
	"github.com/ayoisaiah/tasktimer/internal/timeutil"
	"github.com/ayoisaiah/tasktimer/internal/ui"
	"github.com/ayoisaiah/tasktimer/notify"
	"github.com/ayoisaiah/tasktimer/report"
	"github.com/ayoisaiah/tasktimer/timer"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// nonFatal reports whether err only describes a failed side effect, leaving
// the timer itself in the requested state.
func nonFatal(err error) bool {
	return errors.Is(err, timer.ErrRepository) ||
		errors.Is(err, timer.ErrPersistence)
}

// check returns err unless it is non-fatal, in which case it is printed as a
// warning.
func (e *env) check(err error) error {
	if err == nil {
		return nil
	}

	if nonFatal(err) {
		e.warn(err)
		return nil
	}

	return err
}

func (e *env) printTracked(ctx *cli.Context, entry *models.TimeEntry) {
	if entry == nil {
		return
	}

	pterm.Success.Printfln(
		"Tracked %s on %s",
		ui.Highlight(timeutil.Clock(entry.Duration)),
		firstNonEmptyString(entry.TaskTitle, entry.TaskID),
	)

	total, err := e.entries.TaskTotal(ctx.Context, entry.TaskID)
	if err != nil {
		e.warn(err)
		return
	}

	pterm.Info.Printfln("Total for this task: %s", formatHours(total))
}

// withTimer resolves the target task, restores its timer and hands it to fn.
func withTimer(
	ctx *cli.Context,
	fn func(e *env, eng *timer.Engine) error,
) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	taskID, err := e.resolveTask(ctx.Context, ctx.String("task"))
	if err != nil {
		return err
	}

	eng, err := e.load(ctx.Context, taskID, e.consoleNotifier())
	if err != nil {
		return err
	}

	return fn(e, eng)
}

// startAction handles the start command.
func startAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	taskID := ctx.String("task")

	var (
		local notify.Notifier = e.consoleNotifier()
		view  *viewNotifier
	)

	if ctx.Bool("watch") {
		view = &viewNotifier{}
		local = view
	}

	eng, err := e.load(ctx.Context, taskID, local)
	if err != nil {
		return err
	}

	err = eng.Start(ctx.Context, timer.StartOptions{
		TaskID:       taskID,
		ProjectID:    ctx.String("project"),
		TaskTitle:    ctx.String("task-title"),
		ProjectTitle: ctx.String("project-title"),
		Reminder:     e.cfg.Timer.Reminder,
	})
	if err = e.check(err); err != nil {
		return err
	}

	if view != nil {
		return runWatch(ctx.Context, e, eng, view, ctx.Bool("plain"))
	}

	pterm.Success.Printfln(
		"Started tracking %s",
		ui.Highlight(firstNonEmptyString(ctx.String("task-title"), taskID)),
	)

	if e.cfg.Timer.Reminder > 0 {
		pterm.Info.Printfln(
			"You will be reminded after %s",
			timeutil.Clock(e.cfg.Timer.Reminder),
		)
	}

	return nil
}

// pauseAction handles the pause command.
func pauseAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		if err := e.check(eng.Pause(ctx.Context)); err != nil {
			return err
		}

		pterm.Success.Println(describeStatus(eng.Status()))

		return nil
	})
}

// resumeAction handles the resume command.
func resumeAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		if err := e.check(eng.Resume(ctx.Context)); err != nil {
			return err
		}

		pterm.Success.Println(describeStatus(eng.Status()))

		return nil
	})
}

// stopAction handles the stop command.
func stopAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		entry, err := eng.Stop(ctx.Context)
		if err = e.check(err); err != nil {
			return err
		}

		e.printTracked(ctx, entry)

		return nil
	})
}

// resetAction handles the reset command which discards the timer without
// recording a time entry.
func resetAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		if !ctx.Bool("yes") {
			var confirm bool

			err := huh.NewConfirm().
				Title("Discard the timer for " + eng.TaskID() + "?").
				Description("The elapsed time will not be recorded").
				Affirmative("Discard").
				Negative("Keep").
				Value(&confirm).
				Run()
			if err != nil {
				return err
			}

			if !confirm {
				return nil
			}
		}

		if err := e.check(eng.Reset(ctx.Context)); err != nil {
			return err
		}

		pterm.Success.Println("Timer discarded")

		return nil
	})
}

// breakAction handles the break command. A running timer is stopped and
// recorded before the break begins.
func breakAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		entry, err := eng.StartBreak(ctx.Context, e.cfg.Break.Duration)
		if err = e.check(err); err != nil {
			return err
		}

		e.printTracked(ctx, entry)

		pterm.Success.Printfln(
			"Break started. Back to work at %s",
			ui.Highlight(formatTime(
				eng.Status().BreakEndsAt,
				e.cfg.Settings.TwentyFourHour,
			)),
		)

		return nil
	})
}

// endBreakAction handles the end-break command.
func endBreakAction(ctx *cli.Context) error {
	return withTimer(ctx, func(e *env, eng *timer.Engine) error {
		if err := e.check(eng.EndBreak(ctx.Context)); err != nil {
			return err
		}

		pterm.Success.Println("Break ended")

		return nil
	})
}

// watchAction opens the live view for a timer.
func watchAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	taskID, err := e.resolveTask(ctx.Context, ctx.String("task"))
	if err != nil {
		return err
	}

	view := &viewNotifier{}

	eng, err := e.load(ctx.Context, taskID, view)
	if err != nil {
		return err
	}

	return runWatch(ctx.Context, e, eng, view, ctx.Bool("plain"))
}

// statusAction prints one or every active timer.
func statusAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	var ids []string

	id, err := e.resolveTask(ctx.Context, ctx.String("task"))

	switch {
	case ctx.Bool("all"), errors.Is(err, errAmbiguousTask):
		snaps, err := e.activeTimers(ctx.Context)
		if err != nil {
			return err
		}

		for i := range snaps {
			ids = append(ids, snaps[i].TaskID)
		}
	case errors.Is(err, errNoActiveTimer):
	case err != nil:
		return err
	default:
		ids = append(ids, id)
	}

	statuses := make([]timer.Status, 0, len(ids))

	for _, id := range ids {
		eng, err := e.load(ctx.Context, id, e.consoleNotifier())
		if err != nil {
			e.warn(err)
			continue
		}

		statuses = append(statuses, eng.Status())
	}

	if ctx.Bool("json") {
		return printJSON(e.out, statuses)
	}

	if len(statuses) == 0 {
		pterm.Info.Println("No active timers")
		return nil
	}

	rows := make([][]string, 0, len(statuses))

	for i := range statuses {
		st := &statuses[i]

		started := "-"
		if !st.StartTime.IsZero() {
			started = humanize.Time(st.StartTime)
		}

		state := ui.State(st.State.String())
		if st.OnBreak {
			state = ui.Yellow("break " + timeutil.Clock(st.BreakRemaining))
		}

		rows = append(rows, []string{
			st.TaskID,
			firstNonEmptyString(st.TaskTitle, "-"),
			firstNonEmptyString(st.ProjectTitle, st.ProjectID, "-"),
			state,
			timeutil.Clock(st.Elapsed),
			started,
		})
	}

	return ui.PrintTable(
		[]string{"TASK", "TITLE", "PROJECT", "STATE", "ELAPSED", "STARTED"},
		rows,
		e.out,
	)
}

// listAction prints the recorded time entries.
func listAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	since, err := parseSince(ctx.String("since"), time.Now())
	if err != nil {
		return err
	}

	var entries []models.TimeEntry

	if taskID := ctx.String("task"); taskID != "" {
		all, err := e.entries.List(ctx.Context, taskID)
		if err != nil {
			return err
		}

		for i := range all {
			if !all[i].StartTime.Before(since) {
				entries = append(entries, all[i])
			}
		}
	} else {
		entries, err = e.entries.ListRange(ctx.Context, since, time.Time{})
		if err != nil {
			return err
		}
	}

	switch {
	case ctx.Bool("json"):
		return printJSON(e.out, entries)
	case ctx.Bool("yaml"):
		return printYAML(e.out, entries)
	}

	if len(entries) == 0 {
		pterm.Info.Println("No time entries found")
		return nil
	}

	is24 := e.cfg.Settings.TwentyFourHour
	rows := make([][]string, 0, len(entries))

	for i := range entries {
		en := &entries[i]

		rows = append(rows, []string{
			firstNonEmptyString(en.TaskTitle, en.TaskID),
			firstNonEmptyString(en.ProjectTitle, en.ProjectID),
			formatTime(en.StartTime, is24),
			formatTime(en.EndTime, is24),
			timeutil.Clock(en.Duration),
			ui.State(string(en.Status)),
		})
	}

	return ui.PrintTable(
		[]string{"TASK", "PROJECT", "START", "END", "DURATION", "STATUS"},
		rows,
		e.out,
	)
}

// reportAction prints the daily and per-task totals.
func reportAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	since, err := parseSince(ctx.String("since"), time.Now())
	if err != nil {
		return err
	}

	entries, err := e.entries.ListRange(ctx.Context, since, time.Time{})
	if err != nil {
		return err
	}

	summary := report.Build(entries, time.Local)

	if path := ctx.String("pdf"); path != "" {
		if err := summary.WritePDF(path, since, time.Now()); err != nil {
			return err
		}

		pterm.Success.Printfln("Report written to %s", path)
	}

	if ctx.Bool("json") {
		return printJSON(e.out, summary)
	}

	days := make([][]string, 0, len(summary.Days))
	for _, d := range summary.Days {
		days = append(days, []string{d.Date, formatHours(d.Duration)})
	}

	if err := ui.PrintTable([]string{"DATE", "TRACKED"}, days, e.out); err != nil {
		return err
	}

	tasks := make([][]string, 0, len(summary.Tasks))
	for _, t := range summary.Tasks {
		tasks = append(tasks, []string{
			firstNonEmptyString(t.TaskTitle, t.TaskID),
			firstNonEmptyString(t.ProjectTitle, "-"),
			humanize.Comma(int64(t.Entries)),
			formatHours(t.Duration),
		})
	}

	pterm.Println()

	err = ui.PrintTable(
		[]string{"TASK", "PROJECT", "ENTRIES", "TRACKED"},
		tasks,
		e.out,
	)
	if err != nil {
		return err
	}

	pterm.Println()

	return ui.KeyValue([][2]string{
		{"Total", formatHours(summary.Total)},
		{"Hours", humanize.FtoaWithDigits(summary.Hours, 2)},
	}, e.out)
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// make sure a file with the defaults exists before it is opened
	_, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath()))
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}
