package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders rows below header as a boxed table.
func PrintTable(header []string, rows [][]string, w io.Writer) error {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	_, err = fmt.Fprintln(w, str)

	return err
}

// KeyValue renders a two-column table without a header.
func KeyValue(pairs [][2]string, w io.Writer) error {
	data := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		data = append(data, []string{Highlight(p[0]), p[1]})
	}

	str, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	_, err = fmt.Fprintln(w, str)

	return err
}
