package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable desktop, sound and command notifications",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Task ID. May be omitted when exactly one timer is active",
	}

	requiredTaskFlag = &cli.StringFlag{
		Name:     "task",
		Aliases:  []string{"t"},
		Usage:    "Task ID",
		Required: true,
	}

	projectFlag = &cli.StringFlag{
		Name:     "project",
		Aliases:  []string{"p"},
		Usage:    "Project ID",
		Required: true,
	}

	taskTitleFlag = &cli.StringFlag{
		Name:  "task-title",
		Usage: "Human-readable task title used in notifications",
	}

	projectTitleFlag = &cli.StringFlag{
		Name:  "project-title",
		Usage: "Human-readable project title",
	}

	reminderFlag = &cli.StringFlag{
		Name:    "reminder",
		Aliases: []string{"r"},
		Usage:   "Send a reminder after this much work (e.g. 45m, or 45 for minutes). 0 disables it",
	}

	breakDurationFlag = &cli.StringFlag{
		Name:  "duration",
		Usage: "Break duration (default: break.duration from the config file)",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Sound file played for reminders and when a break is over. Disable with 'off'",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:  "cmd",
		Usage: "Execute an arbitrary command after a timer is stopped",
	}

	watchFlag = &cli.BoolFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Open the live timer view after starting",
	}

	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Print a status line instead of the interactive view",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Show every active timer",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	yamlFlag = &cli.BoolFlag{
		Name:  "yaml",
		Usage: "Print the output as YAML",
	}

	pdfFlag = &cli.StringFlag{
		Name:  "pdf",
		Usage: "Also write the report to this PDF file",
	}

	sinceFlag = &cli.StringFlag{
		Name:    "since",
		Aliases: []string{"s"},
		Usage:   "Only include entries started after this time (e.g. 'yesterday', '2 weeks ago')",
		Value:   "7 days ago",
	}
)
