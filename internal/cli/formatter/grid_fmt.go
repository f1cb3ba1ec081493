package formatter

import (
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/grid"
	"github.com/alexanderramin/rota/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

// RenderDayGrid renders one materialized day as a slot-by-staff grid. Each
// merged run shows its label on the first slot row; the rest of the run keeps
// the role's block color so merged spans read as one cell. Milestones are
// appended to the right of the slot row they snap to.
func RenderDayGrid(p *domain.Project, g *grid.DayGrid) string {
	var b strings.Builder

	b.WriteString(Header(g.Day.Label))
	if g.Day.Date != "" {
		b.WriteString("\n" + Dim(g.Day.Date))
	}
	b.WriteString("\n\n")

	if len(g.Slots) == 0 {
		b.WriteString(Dim("Grid window is empty.") + "\n")
		return b.String()
	}

	// Plain-text labels first, so column widths can be measured before any
	// styling is applied.
	labels := make([][]string, len(g.Columns))
	starts := make([]map[int]grid.Run, len(g.Columns))
	for j, col := range g.Columns {
		labels[j] = make([]string, len(g.Slots))
		starts[j] = make(map[int]grid.Run, len(col.Runs))
		for _, r := range col.Runs {
			starts[j][r.SlotIdx] = r
			labels[j][r.SlotIdx] = cellLabel(p, r.Cell)
		}
	}

	bandStarts := make(map[int]grid.Band, len(g.Band))
	bandWidth := lipgloss.Width("SESSION")
	for _, band := range g.Band {
		bandStarts[band.SlotIdx] = band
		if w := lipgloss.Width(band.Title); w > bandWidth {
			bandWidth = w
		}
	}

	timeWidth := lipgloss.Width("TIME")
	if w := lipgloss.Width(g.Slots[0].Clock()); w > timeWidth {
		timeWidth = w
	}

	colWidths := make([]int, len(g.Columns))
	for j, col := range g.Columns {
		colWidths[j] = lipgloss.Width(col.Staff.Name)
		for _, l := range labels[j] {
			if w := lipgloss.Width(l); w > colWidths[j] {
				colWidths[j] = w
			}
		}
	}

	gap := strings.Repeat(" ", colGap)

	// Header row and separator.
	b.WriteString(StyleHeader.Render(padCell("TIME", timeWidth)))
	b.WriteString(gap)
	b.WriteString(StyleHeader.Render(padCell("SESSION", bandWidth)))
	for j, col := range g.Columns {
		b.WriteString(gap)
		b.WriteString(StyleHeader.Render(padCell(col.Staff.Name, colWidths[j])))
	}
	b.WriteString("\n")

	b.WriteString(StyleDim.Render(strings.Repeat("─", timeWidth)))
	b.WriteString(gap)
	b.WriteString(StyleDim.Render(strings.Repeat("─", bandWidth)))
	for j := range g.Columns {
		b.WriteString(gap)
		b.WriteString(StyleDim.Render(strings.Repeat("─", colWidths[j])))
	}
	b.WriteString("\n")

	for i, slot := range g.Slots {
		b.WriteString(StyleDim.Render(padCell(slot.Clock(), timeWidth)))
		b.WriteString(gap)

		if band, ok := bandStarts[i]; ok && band.Title != "" {
			b.WriteString(Bold(padCell(band.Title, bandWidth)))
		} else {
			b.WriteString(padCell("", bandWidth))
		}

		for j := range g.Columns {
			b.WriteString(gap)
			run, isStart := starts[j][i]
			if !isStart {
				// Continuation row of the run begun above.
				run = runCovering(g.Columns[j].Runs, i)
			}
			text := ""
			if isStart {
				text = labels[j][i]
			}
			b.WriteString(renderCell(p, run.Cell, text, colWidths[j]))
		}

		if marks := g.Marks[slot]; len(marks) > 0 {
			names := make([]string, len(marks))
			for k, m := range marks {
				names[k] = m.Label
			}
			b.WriteString(gap + StyleYellow.Render("◆ "+strings.Join(names, ", ")))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func cellLabel(p *domain.Project, c schedule.Cell) string {
	switch c.Kind {
	case schedule.CellOutOfSession:
		return ""
	case schedule.CellUnassigned:
		return "·"
	}
	label := ""
	if r := p.Role(c.RoleID); r != nil {
		label = r.Name
	}
	if label == "" && c.Note != "" {
		label = c.Note
	}
	switch c.Kind {
	case schedule.CellGlobalOverride:
		return "▲ " + label
	case schedule.CellSessionOverride:
		return "△ " + label
	}
	return label
}

// renderCell styles one slot cell. Role-colored cells keep their background
// on continuation rows so a merged run reads as one block.
func renderCell(p *domain.Project, c schedule.Cell, text string, width int) string {
	padded := padCell(text, width)
	switch c.Kind {
	case schedule.CellOutOfSession:
		return padded
	case schedule.CellUnassigned:
		return StyleDim.Render(padded)
	}
	return RoleStyle(p.Role(c.RoleID)).Render(padded)
}

func runCovering(runs []grid.Run, slotIdx int) grid.Run {
	for _, r := range runs {
		if r.SlotIdx <= slotIdx && slotIdx < r.SlotIdx+r.Span {
			return r
		}
	}
	return grid.Run{}
}

func padCell(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		s += strings.Repeat(" ", n)
	}
	return s
}
