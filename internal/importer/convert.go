package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
)

// Convert materializes a validated schema into a document. Cached session
// times are taken from the file as-is: only the chain recomputation ever
// writes them, and CSV-reconstructed documents legitimately contain
// overlapping per-staff sessions that chaining would destroy. The next
// structural mutation rechains whatever needs rechaining.
func Convert(s *Schema) (*domain.Project, error) {
	p := domain.NewProject()

	var err error
	if p.GridStart, err = timeutil.ParseClock(s.GridStartTime); err != nil {
		return nil, fmt.Errorf("gridStartTime: %w", err)
	}
	if p.GridEnd, err = timeutil.ParseClock(s.GridEndTime); err != nil {
		return nil, fmt.Errorf("gridEndTime: %w", err)
	}

	for _, st := range s.Staff {
		p.Staff = append(p.Staff, domain.StaffMember{ID: st.ID, Name: st.Name})
	}
	for _, r := range s.Roles {
		p.Roles = append(p.Roles, domain.Role{ID: r.ID, Name: r.Name, Color: r.Color, TextColor: r.TextColor})
	}
	for _, d := range s.Days {
		start, err := timeutil.ParseClock(d.DayStartTime)
		if err != nil {
			return nil, fmt.Errorf("days: day %d: %w", d.ID, err)
		}
		p.Days = append(p.Days, domain.DayConfig{ID: d.ID, Label: d.Label, Date: d.Date, StartTime: start})
	}
	for _, sess := range s.Sessions {
		start, err := timeutil.ParseClock(sess.StartTime)
		if err != nil {
			return nil, fmt.Errorf("sessions: session %q: %w", sess.ID, err)
		}
		end, err := timeutil.ParseClock(sess.EndTime)
		if err != nil {
			return nil, fmt.Errorf("sessions: session %q: %w", sess.ID, err)
		}
		out := domain.Session{
			ID:          sess.ID,
			DayID:       sess.DayID,
			Title:       sess.Title,
			DurationMin: sess.DurationMinutes,
			StartMin:    start,
			EndMin:      end,
		}
		for _, m := range sess.Milestones {
			out.Milestones = append(out.Milestones, domain.Milestone{ID: m.ID, OffsetMin: m.OffsetMinutes, Label: m.Label})
		}
		p.Sessions = append(p.Sessions, out)
	}
	for _, a := range s.Assignments {
		out := domain.Assignment{SessionID: a.SessionID, StaffID: a.StaffID, RoleID: a.RoleID, Note: a.Note}
		for _, ov := range a.Overrides {
			out.Overrides = append(out.Overrides, domain.Override{
				ID:             ov.ID,
				StartOffsetMin: ov.StartOffsetMinutes,
				EndOffsetMin:   ov.EndOffsetMinutes,
				RoleID:         ov.RoleID,
				Note:           ov.Note,
			})
		}
		p.Assignments = append(p.Assignments, out)
	}
	for _, so := range s.StaffOverrides {
		start, err := timeutil.ParseClock(so.StartTime)
		if err != nil {
			return nil, fmt.Errorf("staffOverrides: %w", err)
		}
		end, err := timeutil.ParseClock(so.EndTime)
		if err != nil {
			return nil, fmt.Errorf("staffOverrides: %w", err)
		}
		p.StaffOverrides = append(p.StaffOverrides, domain.StaffOverride{
			ID: so.ID, StaffID: so.StaffID, DayID: so.DayID,
			StartMin: start, EndMin: end, RoleID: so.RoleID, Note: so.Note,
		})
	}

	return p, nil
}

// Export projects a document back into the interchange schema.
func Export(p *domain.Project) *Schema {
	s := &Schema{
		Staff:         []StaffJSON{},
		Roles:         []RoleJSON{},
		Days:          []DayJSON{},
		Sessions:      []SessionJSON{},
		Assignments:   []AssignmentJSON{},
		GridStartTime: p.GridStart.Clock(),
		GridEndTime:   p.GridEnd.Clock(),
	}

	for _, st := range p.Staff {
		s.Staff = append(s.Staff, StaffJSON{ID: st.ID, Name: st.Name})
	}
	for _, r := range p.Roles {
		s.Roles = append(s.Roles, RoleJSON{ID: r.ID, Name: r.Name, Color: r.Color, TextColor: r.TextColor})
	}
	for _, d := range p.Days {
		s.Days = append(s.Days, DayJSON{ID: d.ID, Label: d.Label, Date: d.Date, DayStartTime: d.StartTime.Clock()})
	}
	for _, sess := range p.Sessions {
		out := SessionJSON{
			ID:              sess.ID,
			DayID:           sess.DayID,
			Title:           sess.Title,
			DurationMinutes: sess.DurationMin,
			StartTime:       sess.StartMin.Clock(),
			EndTime:         sess.EndMin.Clock(),
		}
		for _, m := range sess.Milestones {
			out.Milestones = append(out.Milestones, MilestoneJSON{ID: m.ID, OffsetMinutes: m.OffsetMin, Label: m.Label})
		}
		s.Sessions = append(s.Sessions, out)
	}
	for _, a := range p.Assignments {
		out := AssignmentJSON{SessionID: a.SessionID, StaffID: a.StaffID, RoleID: a.RoleID, Note: a.Note}
		for _, ov := range a.Overrides {
			out.Overrides = append(out.Overrides, OverrideJSON{
				ID:                 ov.ID,
				StartOffsetMinutes: ov.StartOffsetMin,
				EndOffsetMinutes:   ov.EndOffsetMin,
				RoleID:             ov.RoleID,
				Note:               ov.Note,
			})
		}
		s.Assignments = append(s.Assignments, out)
	}
	for _, so := range p.StaffOverrides {
		s.StaffOverrides = append(s.StaffOverrides, StaffOverrideJSON{
			ID: so.ID, StaffID: so.StaffID, DayID: so.DayID,
			StartTime: so.StartMin.Clock(), EndTime: so.EndMin.Clock(),
			RoleID: so.RoleID, Note: so.Note,
		})
	}

	return s
}

// Encode serializes a document in the interchange format.
func Encode(p *domain.Project) ([]byte, error) {
	data, err := json.MarshalIndent(Export(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}

// ExportFilename follows the workshop_project_<YYYY-MM-DD>.json convention.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("workshop_project_%s.json", now.Format("2006-01-02"))
}
