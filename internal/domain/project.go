package domain

import "github.com/alexanderramin/rota/internal/timeutil"

// Project is the whole planning document: one workshop's staff, roles, days,
// sessions, assignments and the display window of the shift grid. Mutations
// never edit a snapshot in place; they Clone, modify the copy and swap it in.
type Project struct {
	Staff          []StaffMember
	Roles          []Role
	Days           []DayConfig
	Sessions       []Session
	Assignments    []Assignment
	StaffOverrides []StaffOverride
	GridStart      timeutil.Minutes
	GridEnd        timeutil.Minutes
}

// NewProject returns an empty document with the default 09:00-18:00 grid window.
func NewProject() *Project {
	return &Project{
		GridStart: timeutil.Minutes(9 * 60),
		GridEnd:   timeutil.Minutes(18 * 60),
	}
}

// Clone returns a deep copy of the document.
func (p *Project) Clone() *Project {
	out := &Project{
		Staff:          append([]StaffMember(nil), p.Staff...),
		Roles:          append([]Role(nil), p.Roles...),
		Days:           append([]DayConfig(nil), p.Days...),
		Sessions:       make([]Session, len(p.Sessions)),
		Assignments:    make([]Assignment, len(p.Assignments)),
		StaffOverrides: append([]StaffOverride(nil), p.StaffOverrides...),
		GridStart:      p.GridStart,
		GridEnd:        p.GridEnd,
	}
	for i, s := range p.Sessions {
		s.Milestones = append([]Milestone(nil), s.Milestones...)
		out.Sessions[i] = s
	}
	for i, a := range p.Assignments {
		a.Overrides = append([]Override(nil), a.Overrides...)
		out.Assignments[i] = a
	}
	return out
}

// SessionsForDay returns the day's sessions in master-list order. The master
// list position, not any time field, is the ordering source of truth.
func (p *Project) SessionsForDay(dayID int) []Session {
	var out []Session
	for _, s := range p.Sessions {
		if s.DayID == dayID {
			out = append(out, s)
		}
	}
	return out
}

// Day returns the day config with the given ID, or nil.
func (p *Project) Day(dayID int) *DayConfig {
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			return &p.Days[i]
		}
	}
	return nil
}

// Role returns the role with the given ID, or nil.
func (p *Project) Role(roleID string) *Role {
	for i := range p.Roles {
		if p.Roles[i].ID == roleID {
			return &p.Roles[i]
		}
	}
	return nil
}

// Session returns the session with the given ID, or nil.
func (p *Project) Session(sessionID string) *Session {
	for i := range p.Sessions {
		if p.Sessions[i].ID == sessionID {
			return &p.Sessions[i]
		}
	}
	return nil
}

// AssignmentFor returns the assignment for a (session, staff) pair, or nil.
func (p *Project) AssignmentFor(sessionID, staffID string) *Assignment {
	for i := range p.Assignments {
		a := &p.Assignments[i]
		if a.SessionID == sessionID && a.StaffID == staffID {
			return a
		}
	}
	return nil
}
