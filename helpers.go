package main

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// CellStyle colors a padded cell; nil leaves it plain.
type CellStyle func(row, col int, cell string) string

// PrintTable writes tab separated, left aligned columns. Widths are measured
// on the plain text so styling does not break alignment.
func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string, style CellStyle) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len([]rune(header))
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); i < len(colWidths) && n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	// print header
	for i, header := range headers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], header)
	}
	fmt.Fprintln(w)

	// print rows
	for r, row := range rows {
		for i, cell := range row {
			padded := fmt.Sprintf("%-*s", colWidths[i], cell)
			if style != nil {
				padded = style(r, i, padded)
			}
			fmt.Fprintf(w, "%s\t", padded)
		}
		fmt.Fprintln(w)
	}

	// print footer
	if len(footers) == 0 {
		return
	}
	for i, footer := range footers {
		fmt.Fprintf(w, "%-*s\t", colWidths[i], footer)
	}
	fmt.Fprintln(w)
}

// moodCellStyle paints the mood column of an entry table with the gradient.
func moodCellStyle(entries []Entry, moodCol int) CellStyle {
	return func(row, col int, cell string) string {
		if col != moodCol || row >= len(entries) {
			return cell
		}
		hex, err := MoodColor(entries[row].Mood)
		if err != nil {
			return cell
		}
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(cell)
	}
}

// FormatSleep renders hours as h:mm.
func FormatSleep(hours float64) string {
	total := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
