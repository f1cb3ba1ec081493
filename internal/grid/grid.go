// Package grid projects a day of the planning document onto the printable
// shift grid: one row per 5-minute slot, one column per staff member, plus a
// session band and milestone markers. It is a pure projection; callers
// re-materialize after any document change.
package grid

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/schedule"
	"github.com/alexanderramin/rota/internal/timeutil"
)

// Run is a vertical run of slots with identical resolved cells in one staff
// column. SlotIdx indexes into DayGrid.Slots; Span is the number of slots.
type Run struct {
	SlotIdx int
	Span    int
	Cell    schedule.Cell
}

// Column is one staff member's merged column.
type Column struct {
	Staff domain.StaffMember
	Runs  []Run
}

// Band is one merged cell of the session name side column.
type Band struct {
	SlotIdx   int
	Span      int
	SessionID string
	Title     string
}

// Mark is a milestone placed on the slot grid.
type Mark struct {
	SessionID string
	Label     string
	At        timeutil.Minutes
}

// DayGrid is the fully materialized grid for one day.
type DayGrid struct {
	Day   domain.DayConfig
	Slots []timeutil.Minutes
	// Cells is the unmerged slots x staff table; Cells[i][j] is slot i for
	// staff j in Columns order.
	Cells   [][]schedule.Cell
	Columns []Column
	Band    []Band
	// Marks maps a slot start to the milestones landing there. Milestone
	// times snap down to the slot boundary; several may stack in one slot.
	Marks map[timeutil.Minutes][]Mark
}

// Materialize resolves every (slot, staff) pair of the day over the document's
// grid window and run-length-merges each column. A slot straddling a session
// boundary is classified by its start time only.
func Materialize(p *domain.Project, dayID int) (*DayGrid, error) {
	day := p.Day(dayID)
	if day == nil {
		return nil, fmt.Errorf("day %d not found", dayID)
	}

	slots := timeutil.Slots(p.GridStart, p.GridEnd, timeutil.GridStep)
	g := &DayGrid{
		Day:   *day,
		Slots: slots,
		Cells: make([][]schedule.Cell, len(slots)),
		Marks: make(map[timeutil.Minutes][]Mark),
	}

	for i, slot := range slots {
		g.Cells[i] = make([]schedule.Cell, len(p.Staff))
		for j, st := range p.Staff {
			g.Cells[i][j] = schedule.Resolve(p, st.ID, dayID, slot)
		}
	}

	for j, st := range p.Staff {
		col := Column{Staff: st}
		for i := range slots {
			c := g.Cells[i][j]
			if n := len(col.Runs); n > 0 &&
				col.Runs[n-1].Cell.MergeKey() == c.MergeKey() &&
				col.Runs[n-1].SlotIdx+col.Runs[n-1].Span == i {
				col.Runs[n-1].Span++
				continue
			}
			col.Runs = append(col.Runs, Run{SlotIdx: i, Span: 1, Cell: c})
		}
		g.Columns = append(g.Columns, col)
	}

	g.Band = sessionBand(p, dayID, slots)
	g.markMilestones(p, dayID)

	return g, nil
}

// sessionBand merges consecutive slots covered by the same session into the
// side column of session names.
func sessionBand(p *domain.Project, dayID int, slots []timeutil.Minutes) []Band {
	var band []Band
	for i, slot := range slots {
		var id, title string
		for _, s := range p.SessionsForDay(dayID) {
			if s.StartMin <= slot && slot < s.EndMin {
				id, title = s.ID, s.Title
				break
			}
		}
		if n := len(band); n > 0 && band[n-1].SessionID == id &&
			band[n-1].SlotIdx+band[n-1].Span == i {
			band[n-1].Span++
			continue
		}
		band = append(band, Band{SlotIdx: i, Span: 1, SessionID: id, Title: title})
	}
	return band
}

func (g *DayGrid) markMilestones(p *domain.Project, dayID int) {
	if len(g.Slots) == 0 {
		return
	}
	lo, hi := g.Slots[0], g.Slots[len(g.Slots)-1]
	for _, s := range p.SessionsForDay(dayID) {
		for _, m := range s.Milestones {
			at := (s.StartMin + timeutil.Minutes(m.OffsetMin)).SnapDown(timeutil.GridStep)
			if at < lo || at > hi {
				continue
			}
			g.Marks[at] = append(g.Marks[at], Mark{SessionID: s.ID, Label: m.Label, At: at})
		}
	}
}
