// Package ascii provides width-aware text layout for terminal output
package ascii

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of a string, accounting for
// multi-width Unicode characters (emoji, CJK, etc.).
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Box builds a box containing the provided lines and returns it as a string.
// Lines are left-aligned with single-space padding on each side.
func Box(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	innerWidth := maxWidth + 2
	border := strings.Repeat("─", innerWidth)

	var sb strings.Builder
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range trimmed {
		sb.WriteString("│ " + PadRight(line, maxWidth) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}

// PadRight pads s with spaces to the given display width
func PadRight(s string, width int) string {
	fill := width - StringWidth(s)
	if fill <= 0 {
		return s
	}
	return s + strings.Repeat(" ", fill)
}

// Truncate shortens value to fit width, appending "..." when there is room.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// Table lays out rows in aligned columns separated by two spaces. The
// header row is underlined. Cells wider than maxCell are truncated when
// maxCell is positive.
func Table(header []string, rows [][]string, maxCell int) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, append([]string{}, header...))
	for _, row := range rows {
		all = append(all, append([]string{}, row...))
	}

	widths := make([]int, len(header))
	for r, row := range all {
		for c := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if maxCell > 0 {
				all[r][c] = Truncate(row[c], maxCell)
			}
			if w := StringWidth(all[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		var line strings.Builder
		for c, w := range widths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c > 0 {
				line.WriteString("  ")
			}
			line.WriteString(PadRight(cell, w))
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	writeRow(all[0])
	rule := make([]string, len(widths))
	for c, w := range widths {
		rule[c] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range all[1:] {
		writeRow(row)
	}
	return sb.String()
}
