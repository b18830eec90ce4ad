package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableColGap = 2

// RenderTable renders rows under a styled header and a rule. Columns are
// sized by visible width, so styled and CJK cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = padCell(StyleHeader.Render(h), widths[i])
	}
	writeRow(&b, styled)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = Dim(strings.Repeat("─", w))
	}
	writeRow(&b, rule)

	for _, row := range rows {
		cells := make([]string, len(widths))
		for i := range widths {
			if i < len(row) {
				cells[i] = padCell(row[i], widths[i])
			} else {
				cells[i] = strings.Repeat(" ", widths[i])
			}
		}
		writeRow(&b, cells)
	}

	return b.String()
}

// padCell right-pads a possibly styled cell to width visible columns.
func padCell(cell string, width int) string {
	return cell + strings.Repeat(" ", max(width-lipgloss.Width(cell), 0))
}

// writeRow joins cells with the column gap, trimming trailing padding.
func writeRow(b *strings.Builder, cells []string) {
	line := strings.Join(cells, strings.Repeat(" ", tableColGap))
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")
}
