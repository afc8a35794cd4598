package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table lays out rows in left-aligned columns separated by two spaces. Column widths
// are measured with lipgloss.Width, so styled cells do not skew them. A non-nil header
// is padded first and styled with HeaderStyle afterwards. The last column is not padded.
func Table(header []string, rows [][]string) string {
	all := rows
	if header != nil {
		all = append([][]string{header}, rows...)
	}

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string, style func(string) string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i < len(row)-1 {
				cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			b.WriteString(style(cell))
		}
		b.WriteByte('\n')
	}

	if header != nil {
		writeRow(header, FormatHeader)
	}
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
