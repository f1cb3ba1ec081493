package importer

import (
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/schedule"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject() *domain.Project {
	p := domain.NewProject()
	p.GridStart = timeutil.MustClock("08:30")
	p.GridEnd = timeutil.MustClock("17:00")
	p.Staff = []domain.StaffMember{{ID: "st-1", Name: "Tanaka"}, {ID: "st-2", Name: "Suzuki"}}
	p.Roles = []domain.Role{{ID: "ro-1", Name: "MC", Color: "#2563eb", TextColor: "#ffffff"}}
	p.Days = []domain.DayConfig{{ID: 1, Label: "Day 1", Date: "2025-07-01", StartTime: timeutil.MustClock("09:00")}}
	p.Sessions = schedule.Rechain(p.Days, []domain.Session{
		{ID: "se-1", DayID: 1, Title: "Opening", DurationMin: 45,
			Milestones: []domain.Milestone{{ID: "mi-1", OffsetMin: 10, Label: "doors"}}},
	})
	p.Assignments = []domain.Assignment{{
		SessionID: "se-1", StaffID: "st-1", RoleID: "ro-1", Note: "lead",
		Overrides: []domain.Override{{ID: "ov-1", StartOffsetMin: 0, EndOffsetMin: 15, RoleID: "ro-1", Note: "setup"}},
	}}
	p.StaffOverrides = []domain.StaffOverride{{
		ID: "so-1", StaffID: "st-2", DayID: 1,
		StartMin: timeutil.MustClock("09:10"), EndMin: timeutil.MustClock("09:40"),
		RoleID: "ro-1", Note: "reception",
	}}
	return p
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleProject()

	data, err := Encode(original)
	require.NoError(t, err)

	schema, errs := Decode(data)
	require.Empty(t, errs)

	restored, err := Convert(schema)
	require.NoError(t, err)

	assert.Equal(t, original, restored)
}

func TestConvertTrustsCachedTimes(t *testing.T) {
	// Cached times come from the file as-is, even when overlapping: CSV
	// reconstruction emits per-staff sessions over the same wall-clock span,
	// and only the chain recomputation may rewrite them.
	s, errs := Decode([]byte(`{
	  "staff": [], "roles": [],
	  "days": [{"id": 1, "label": "Day 1", "dayStartTime": "09:00"}],
	  "sessions": [
	    {"id": "se-1", "dayId": 1, "title": "A", "durationMinutes": 10, "startTime": "09:00", "endTime": "09:10"},
	    {"id": "se-2", "dayId": 1, "title": "B", "durationMinutes": 15, "startTime": "09:00", "endTime": "09:15"}
	  ],
	  "assignments": [], "gridStartTime": "09:00", "gridEndTime": "18:00"
	}`))
	require.Empty(t, errs)

	p, err := Convert(s)
	require.NoError(t, err)

	assert.Equal(t, "09:00", p.Sessions[0].StartMin.Clock())
	assert.Equal(t, "09:10", p.Sessions[0].EndMin.Clock())
	assert.Equal(t, "09:00", p.Sessions[1].StartMin.Clock())
	assert.Equal(t, "09:15", p.Sessions[1].EndMin.Clock())
}

func TestExportEmitsEmptyArraysNotNull(t *testing.T) {
	data, err := Encode(domain.NewProject())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"staff": []`)
	assert.Contains(t, string(data), `"assignments": []`)
	assert.NotContains(t, string(data), `"staff": null`)
}
