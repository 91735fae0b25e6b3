// Package ui renders terminal output for the CLI.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the lighter colour variants.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// State colours a timer state name: running is green, paused is yellow and
// everything else is left plain.
func State(state string) string {
	switch state {
	case "running":
		return Green(state)
	case "paused":
		return Yellow(state)
	case "break":
		return Cyan(state)
	}

	return state
}
