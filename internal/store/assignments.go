package store

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
)

// SetAssignment upserts the default role of one staff member for one session.
// Updating an existing assignment keeps its overrides. Assignment edits never
// rechain; they cannot affect timing.
func (s *Store) SetAssignment(sessionID, staffID, roleID, note string) error {
	return s.mutate(false, func(p *domain.Project) error {
		if p.Session(sessionID) == nil {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		if !hasStaff(p, staffID) {
			return fmt.Errorf("staff %q: %w", staffID, ErrNotFound)
		}
		if a := p.AssignmentFor(sessionID, staffID); a != nil {
			a.RoleID = roleID
			a.Note = note
			return nil
		}
		p.Assignments = append(p.Assignments, domain.Assignment{
			SessionID: sessionID, StaffID: staffID, RoleID: roleID, Note: note,
		})
		return nil
	})
}

// ClearAssignment removes the pair's assignment and, with it, its overrides.
func (s *Store) ClearAssignment(sessionID, staffID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		for i := range p.Assignments {
			a := &p.Assignments[i]
			if a.SessionID == sessionID && a.StaffID == staffID {
				p.Assignments = append(p.Assignments[:i], p.Assignments[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("assignment for session %q staff %q: %w", sessionID, staffID, ErrNotFound)
	})
}

// AddOverride appends a sub-interval exception to an existing assignment.
// Overlaps with existing overrides are allowed; the resolver takes the first
// declared match.
func (s *Store) AddOverride(sessionID, staffID string, startOffsetMin, endOffsetMin int, roleID, note string) (domain.Override, error) {
	if endOffsetMin <= startOffsetMin {
		return domain.Override{}, fmt.Errorf("%w: override end offset must be after start offset", ErrInvalid)
	}
	ov := domain.Override{
		ID: s.newID(), StartOffsetMin: startOffsetMin, EndOffsetMin: endOffsetMin,
		RoleID: roleID, Note: note,
	}
	err := s.mutate(false, func(p *domain.Project) error {
		a := p.AssignmentFor(sessionID, staffID)
		if a == nil {
			return fmt.Errorf("assignment for session %q staff %q: %w", sessionID, staffID, ErrNotFound)
		}
		a.Overrides = append(a.Overrides, ov)
		return nil
	})
	if err != nil {
		return domain.Override{}, err
	}
	return ov, nil
}

func (s *Store) RemoveOverride(sessionID, staffID, overrideID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		a := p.AssignmentFor(sessionID, staffID)
		if a == nil {
			return fmt.Errorf("assignment for session %q staff %q: %w", sessionID, staffID, ErrNotFound)
		}
		for i := range a.Overrides {
			if a.Overrides[i].ID == overrideID {
				a.Overrides = append(a.Overrides[:i], a.Overrides[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("override %q: %w", overrideID, ErrNotFound)
	})
}

// AddStaffOverride records an absolute-time commitment that preempts all
// session-derived assignment for its interval.
func (s *Store) AddStaffOverride(staffID string, dayID int, start, end timeutil.Minutes, roleID, note string) (domain.StaffOverride, error) {
	if end <= start {
		return domain.StaffOverride{}, fmt.Errorf("%w: override end must be after start", ErrInvalid)
	}
	so := domain.StaffOverride{
		ID: s.newID(), StaffID: staffID, DayID: dayID,
		StartMin: start, EndMin: end, RoleID: roleID, Note: note,
	}
	err := s.mutate(false, func(p *domain.Project) error {
		if !hasStaff(p, staffID) {
			return fmt.Errorf("staff %q: %w", staffID, ErrNotFound)
		}
		if p.Day(dayID) == nil {
			return fmt.Errorf("day %d: %w", dayID, ErrNotFound)
		}
		p.StaffOverrides = append(p.StaffOverrides, so)
		return nil
	})
	if err != nil {
		return domain.StaffOverride{}, err
	}
	return so, nil
}

func (s *Store) RemoveStaffOverride(overrideID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		for i := range p.StaffOverrides {
			if p.StaffOverrides[i].ID == overrideID {
				p.StaffOverrides = append(p.StaffOverrides[:i], p.StaffOverrides[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("staff override %q: %w", overrideID, ErrNotFound)
	})
}

func hasStaff(p *domain.Project, staffID string) bool {
	for _, m := range p.Staff {
		if m.ID == staffID {
			return true
		}
	}
	return false
}
