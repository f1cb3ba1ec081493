package schedule

import (
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/stretchr/testify/assert"
)

// layeredProject builds a day with one 09:00-10:00 session, a default
// assignment, a session override for the first 15 minutes, and a global
// staff override for 09:10-09:20.
func layeredProject() *domain.Project {
	p := domain.NewProject()
	p.Staff = []domain.StaffMember{{ID: "st-1", Name: "Tanaka"}}
	p.Roles = []domain.Role{
		{ID: "ro-default", Name: "MC"},
		{ID: "ro-session", Name: "Setup"},
		{ID: "ro-global", Name: "Reception"},
	}
	p.Days = []domain.DayConfig{{ID: 1, StartTime: timeutil.MustClock("09:00")}}
	p.Sessions = Rechain(p.Days, []domain.Session{{ID: "se-1", DayID: 1, Title: "Opening", DurationMin: 60}})
	p.Assignments = []domain.Assignment{{
		SessionID: "se-1", StaffID: "st-1", RoleID: "ro-default",
		Overrides: []domain.Override{{ID: "ov-1", StartOffsetMin: 0, EndOffsetMin: 15, RoleID: "ro-session"}},
	}}
	p.StaffOverrides = []domain.StaffOverride{{
		ID: "so-1", StaffID: "st-1", DayID: 1,
		StartMin: timeutil.MustClock("09:10"), EndMin: timeutil.MustClock("09:20"),
		RoleID: "ro-global",
	}}
	return p
}

func TestResolvePrecedence(t *testing.T) {
	p := layeredProject()

	tests := []struct {
		name string
		slot string
		kind CellKind
		role string
	}{
		{name: "session override before global starts", slot: "09:00", kind: CellSessionOverride, role: "ro-session"},
		{name: "global beats session override", slot: "09:10", kind: CellGlobalOverride, role: "ro-global"},
		{name: "global beats default", slot: "09:15", kind: CellGlobalOverride, role: "ro-global"},
		{name: "global end is exclusive", slot: "09:20", kind: CellSessionDefault, role: "ro-default"},
		{name: "default role for rest of session", slot: "09:55", kind: CellSessionDefault, role: "ro-default"},
		{name: "session end is exclusive", slot: "10:00", kind: CellOutOfSession, role: ""},
		{name: "before day start", slot: "08:55", kind: CellOutOfSession, role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(p, "st-1", 1, timeutil.MustClock(tt.slot))
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.role, got.RoleID)
		})
	}
}

func TestResolveUnassignedInsideSession(t *testing.T) {
	p := layeredProject()
	p.Staff = append(p.Staff, domain.StaffMember{ID: "st-2", Name: "Suzuki"})

	got := Resolve(p, "st-2", 1, timeutil.MustClock("09:30"))

	assert.Equal(t, CellUnassigned, got.Kind)
	assert.Equal(t, "se-1", got.SessionID)
	assert.Empty(t, got.RoleID)
}

func TestResolveGlobalOverrideOutsideAnySession(t *testing.T) {
	p := layeredProject()
	p.StaffOverrides[0].StartMin = timeutil.MustClock("12:00")
	p.StaffOverrides[0].EndMin = timeutil.MustClock("12:30")

	got := Resolve(p, "st-1", 1, timeutil.MustClock("12:15"))

	assert.Equal(t, CellGlobalOverride, got.Kind)
	assert.Equal(t, "ro-global", got.RoleID)
	assert.Empty(t, got.SessionID)
}

func TestResolveGlobalOverrideWrongDayIgnored(t *testing.T) {
	p := layeredProject()
	p.StaffOverrides[0].DayID = 2

	got := Resolve(p, "st-1", 1, timeutil.MustClock("09:10"))

	assert.Equal(t, CellSessionOverride, got.Kind)
}

func TestResolveOverlapFirstDeclaredWins(t *testing.T) {
	p := layeredProject()

	t.Run("session overrides", func(t *testing.T) {
		a := p.AssignmentFor("se-1", "st-1")
		a.Overrides = []domain.Override{
			{ID: "ov-a", StartOffsetMin: 30, EndOffsetMin: 50, RoleID: "ro-session"},
			{ID: "ov-b", StartOffsetMin: 40, EndOffsetMin: 60, RoleID: "ro-global"},
		}

		got := Resolve(p, "st-1", 1, timeutil.MustClock("09:45"))
		assert.Equal(t, "ro-session", got.RoleID, "first declared override wins on overlap")
	})

	t.Run("global overrides", func(t *testing.T) {
		p.StaffOverrides = []domain.StaffOverride{
			{ID: "so-a", StaffID: "st-1", DayID: 1, StartMin: timeutil.MustClock("09:00"), EndMin: timeutil.MustClock("09:30"), RoleID: "ro-global"},
			{ID: "so-b", StaffID: "st-1", DayID: 1, StartMin: timeutil.MustClock("09:00"), EndMin: timeutil.MustClock("09:30"), RoleID: "ro-session"},
		}

		got := Resolve(p, "st-1", 1, timeutil.MustClock("09:05"))
		assert.Equal(t, "ro-global", got.RoleID, "storage order decides overlapping global overrides")
	})
}

func TestMergeKeyDistinguishesKinds(t *testing.T) {
	a := Cell{Kind: CellSessionDefault, SessionID: "se-1", RoleID: "ro-1"}
	b := Cell{Kind: CellSessionOverride, SessionID: "se-1", RoleID: "ro-1"}
	c := Cell{Kind: CellSessionDefault, SessionID: "se-1", RoleID: "ro-1", Note: "n"}

	assert.NotEqual(t, a.MergeKey(), b.MergeKey())
	assert.NotEqual(t, a.MergeKey(), c.MergeKey())
	assert.Equal(t, a.MergeKey(), Cell{Kind: CellSessionDefault, SessionID: "se-1", RoleID: "ro-1"}.MergeKey())
}
