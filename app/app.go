package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tasktimer/internal/config"
	"github.com/ayoisaiah/tasktimer/internal/pathutil"
	"github.com/ayoisaiah/tasktimer/internal/ui"
)

const (
	envNoColor          = "NO_COLOR"
	envTasktimerNoColor = "TASKTIMER_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func beforeAction(ctx *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	cli.AppHelpTemplate = helpText()

	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/tasktimer/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envTasktimerNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting tasktimer")

	return nil
}

// applyTheme applies display settings that depend on the loaded config.
func applyTheme(cfg *config.Config) {
	ui.DarkTheme = cfg.Display.DarkTheme

	if cfg.Display.NoColor {
		disableStyling()
	}
}

// Get retrieves the tasktimer app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "tasktimer",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Tasktimer tracks the time you spend on tasks from the command-line.
		Start a timer for a task, pause and resume it, take breaks, and review
		how your hours were spent.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start a timer for a task",
				Flags: []cli.Flag{
					requiredTaskFlag,
					projectFlag,
					taskTitleFlag,
					projectTitleFlag,
					reminderFlag,
					soundFlag,
					sessionCmdFlag,
					watchFlag,
					plainFlag,
				},
				Action: startAction,
			},
			{
				Name:   "pause",
				Usage:  "Pause a running timer",
				Flags:  []cli.Flag{taskFlag},
				Action: pauseAction,
			},
			{
				Name:   "resume",
				Usage:  "Resume a paused timer",
				Flags:  []cli.Flag{taskFlag, soundFlag},
				Action: resumeAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop a timer and record the time entry",
				Flags:  []cli.Flag{taskFlag, sessionCmdFlag},
				Action: stopAction,
			},
			{
				Name:   "reset",
				Usage:  "Discard a timer without recording it",
				Flags:  []cli.Flag{taskFlag, yesFlag},
				Action: resetAction,
			},
			{
				Name:   "break",
				Usage:  "Stop the current timer and take a break",
				Flags:  []cli.Flag{taskFlag, breakDurationFlag, soundFlag},
				Action: breakAction,
			},
			{
				Name:   "end-break",
				Usage:  "End a break early",
				Flags:  []cli.Flag{taskFlag},
				Action: endBreakAction,
			},
			{
				Name:   "watch",
				Usage:  "Show a live view of a timer",
				Flags:  []cli.Flag{taskFlag, breakDurationFlag, soundFlag, plainFlag},
				Action: watchAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of active timers",
				Flags:  []cli.Flag{taskFlag, allFlag, jsonFlag},
				Action: statusAction,
			},
			{
				Name:   "list",
				Usage:  "List recorded time entries. Defaults to the last 7 days",
				Flags:  []cli.Flag{taskFlag, sinceFlag, jsonFlag, yamlFlag},
				Action: listAction,
			},
			{
				Name:   "report",
				Usage:  "Summarise tracked time per day and per task",
				Flags:  []cli.Flag{sinceFlag, jsonFlag, pdfFlag},
				Action: reportAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			disableNotificationFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}
}
