package schedule

import (
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
)

// CellKind classifies what a staff member is doing in one grid slot.
type CellKind string

const (
	// CellGlobalOverride: an absolute-time StaffOverride covers the slot.
	CellGlobalOverride CellKind = "global_override"
	// CellSessionOverride: a sub-interval override on the session assignment.
	CellSessionOverride CellKind = "session_override"
	// CellSessionDefault: the assignment's default role for the session.
	CellSessionDefault CellKind = "session_default"
	// CellUnassigned: the slot is inside a session but the member has no
	// assignment there. Rendered distinctly from out-of-session.
	CellUnassigned CellKind = "unassigned"
	// CellOutOfSession: no session covers the slot.
	CellOutOfSession CellKind = "out_of_session"
)

// Cell is the resolved state of one (staff, slot) pair.
// SessionID is empty for out-of-session cells and for global-override cells;
// a global commitment is independent of session boundaries, so leaving the
// session out lets the grid merge the whole commitment into one run.
type Cell struct {
	Kind      CellKind
	SessionID string
	RoleID    string
	Note      string
}

// IsOverride reports whether the cell comes from either override layer.
func (c Cell) IsOverride() bool {
	return c.Kind == CellGlobalOverride || c.Kind == CellSessionOverride
}

// MergeKey is the identity used by the grid's vertical run-length merge:
// consecutive slots with equal keys collapse into one rendered cell.
func (c Cell) MergeKey() string {
	return string(c.Kind) + "\x00" + c.SessionID + "\x00" + c.RoleID + "\x00" + c.Note
}

// Resolve determines the effective role for one staff member at one absolute
// slot of one day. Precedence, first match wins:
//
//  1. a global StaffOverride whose [StartMin, EndMin) contains the slot
//  2. no containing session -> out of session
//  3. a session-level Override on the member's assignment, offsets taken
//     relative to the session start
//  4. the assignment's default role, or unassigned if no assignment exists
//
// Overlapping overrides at either layer resolve to the first one in storage
// order; that ordering is deliberate, observable behavior, not an accident.
func Resolve(p *domain.Project, staffID string, dayID int, slot timeutil.Minutes) Cell {
	for _, so := range p.StaffOverrides {
		if so.StaffID != staffID || so.DayID != dayID {
			continue
		}
		if so.StartMin <= slot && slot < so.EndMin {
			return Cell{Kind: CellGlobalOverride, RoleID: so.RoleID, Note: so.Note}
		}
	}

	var sess *domain.Session
	for i := range p.Sessions {
		s := &p.Sessions[i]
		if s.DayID == dayID && s.StartMin <= slot && slot < s.EndMin {
			sess = s
			break
		}
	}
	if sess == nil {
		return Cell{Kind: CellOutOfSession}
	}

	a := p.AssignmentFor(sess.ID, staffID)
	if a == nil {
		return Cell{Kind: CellUnassigned, SessionID: sess.ID}
	}

	for _, ov := range a.Overrides {
		start := sess.StartMin + timeutil.Minutes(ov.StartOffsetMin)
		end := sess.StartMin + timeutil.Minutes(ov.EndOffsetMin)
		if start <= slot && slot < end {
			return Cell{Kind: CellSessionOverride, SessionID: sess.ID, RoleID: ov.RoleID, Note: ov.Note}
		}
	}

	return Cell{Kind: CellSessionDefault, SessionID: sess.ID, RoleID: a.RoleID, Note: a.Note}
}
