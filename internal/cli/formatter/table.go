package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Columns are padded to the widest visible cell, measured with lipgloss so
// ANSI styling does not skew alignment.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
