package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap separates columns in both the listing tables and the day grid.
const colGap = 2

// RenderTable renders an aligned listing with a header separator line. Cells
// are measured by visible width, so ANSI-styled cells line up with plain
// ones.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	writeRow(&b, widths, headers, StyleHeader.Render)

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	writeRow(&b, widths, rules, StyleDim.Render)

	for _, row := range rows {
		writeRow(&b, widths, row, nil)
	}

	return b.String()
}

// columnWidths measures the widest visible cell per column across both
// headers and rows. Short rows simply leave their trailing columns at header
// width.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeRow pads each cell to its column width before the optional style is
// applied, so styling never skews the measurement. The last column is left
// unpadded.
func writeRow(b *strings.Builder, widths []int, cells []string, style func(...string) string) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := w - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}
