package domain

import "github.com/alexanderramin/rota/internal/timeutil"

type StaffMember struct {
	ID   string
	Name string
}

// Role carries display colors only; there is no semantic ordering between roles.
type Role struct {
	ID        string
	Name      string
	Color     string
	TextColor string
}

// DayConfig anchors one workshop day. StartTime is the wall-clock anchor from
// which the day's first session is scheduled.
type DayConfig struct {
	ID        int
	Label     string
	Date      string
	StartTime timeutil.Minutes
}

// Session is a titled block within a day. DurationMin is authoritative;
// StartMin and EndMin are derived caches written only by the chain
// recalculation, never by user edits.
type Session struct {
	ID          string
	DayID       int
	Title       string
	DurationMin int
	StartMin    timeutil.Minutes
	EndMin      timeutil.Minutes
	Milestones  []Milestone
}

// Milestone marks a labeled point inside a session, offset from its start.
// The offset may drift outside [0, DurationMin] if the session later shrinks;
// that is tolerated, not repaired.
type Milestone struct {
	ID        string
	OffsetMin int
	Label     string
}

// Assignment binds one staff member to one session with a default role.
// At most one Assignment exists per (SessionID, StaffID) pair; absence means
// the member is unassigned for that session.
type Assignment struct {
	SessionID string
	StaffID   string
	RoleID    string
	Note      string
	Overrides []Override
}

// Override carves a sub-interval out of an Assignment where a different role
// applies. Offsets are minutes relative to the parent session's start.
// Overlapping overrides are legal; resolution is first match in list order.
type Override struct {
	ID             string
	StartOffsetMin int
	EndOffsetMin   int
	RoleID         string
	Note           string
}

// StaffOverride is an absolute-time commitment (reception duty, a phone
// shift) that preempts all session-derived assignment for its interval.
type StaffOverride struct {
	ID       string
	StaffID  string
	DayID    int
	StartMin timeutil.Minutes
	EndMin   timeutil.Minutes
	RoleID   string
	Note     string
}

const (
	// DefaultSessionMin is assumed when a session is created without a duration.
	DefaultSessionMin = 30
	// MinSessionMin is the floor applied to non-positive durations at chain time.
	MinSessionMin = 1
)
