// Package store is the document-state container behind every mutation. A
// Store holds one Project snapshot; each mutation clones it, applies the
// change, rechains session times when the change is structural, and swaps the
// new snapshot in. Callers hold the Store explicitly; there is no package
// singleton, so tests run any number of independent instances.
package store

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/schedule"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
)

type Store struct {
	project *domain.Project
	newID   func() string
}

// New wraps an existing document, or an empty one when p is nil.
func New(p *domain.Project) *Store {
	if p == nil {
		p = domain.NewProject()
	}
	return &Store{project: p, newID: uuid.NewString}
}

// NewWithIDs is New with a custom ID generator, for deterministic tests.
func NewWithIDs(p *domain.Project, newID func() string) *Store {
	s := New(p)
	s.newID = newID
	return s
}

// Snapshot returns the current document. Snapshots are never mutated after
// being swapped in, so the caller may keep and read it freely.
func (s *Store) Snapshot() *domain.Project {
	return s.project
}

// Replace swaps in a whole new document, e.g. a confirmed import. Cached
// session times are kept as given; imported documents may carry overlapping
// per-staff sessions that chaining would flatten.
func (s *Store) Replace(p *domain.Project) {
	s.project = p.Clone()
}

// mutate runs one copy-modify-swap cycle. Structural mutations are the ones
// that can change session timing; override, milestone and assignment edits
// cannot, and skip the rechain on purpose.
func (s *Store) mutate(structural bool, fn func(p *domain.Project) error) error {
	next := s.project.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if structural {
		next.Sessions = schedule.Rechain(next.Days, next.Sessions)
	}
	s.project = next
	return nil
}

// --- staff ---

func (s *Store) AddStaff(name string) (domain.StaffMember, error) {
	if name == "" {
		return domain.StaffMember{}, fmt.Errorf("%w: staff name is required", ErrInvalid)
	}
	m := domain.StaffMember{ID: s.newID(), Name: name}
	err := s.mutate(false, func(p *domain.Project) error {
		p.Staff = append(p.Staff, m)
		return nil
	})
	return m, err
}

func (s *Store) RenameStaff(staffID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: staff name is required", ErrInvalid)
	}
	return s.mutate(false, func(p *domain.Project) error {
		for i := range p.Staff {
			if p.Staff[i].ID == staffID {
				p.Staff[i].Name = name
				return nil
			}
		}
		return fmt.Errorf("staff %q: %w", staffID, ErrNotFound)
	})
}

// RemoveStaff cascades: the member's assignments (with their overrides) and
// global overrides go with them.
func (s *Store) RemoveStaff(staffID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		idx := -1
		for i := range p.Staff {
			if p.Staff[i].ID == staffID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("staff %q: %w", staffID, ErrNotFound)
		}
		p.Staff = append(p.Staff[:idx], p.Staff[idx+1:]...)

		var keptA []domain.Assignment
		for _, a := range p.Assignments {
			if a.StaffID != staffID {
				keptA = append(keptA, a)
			}
		}
		p.Assignments = keptA

		var keptO []domain.StaffOverride
		for _, o := range p.StaffOverrides {
			if o.StaffID != staffID {
				keptO = append(keptO, o)
			}
		}
		p.StaffOverrides = keptO
		return nil
	})
}

// --- roles ---

func (s *Store) AddRole(name, color, textColor string) (domain.Role, error) {
	if name == "" {
		return domain.Role{}, fmt.Errorf("%w: role name is required", ErrInvalid)
	}
	r := domain.Role{ID: s.newID(), Name: name, Color: color, TextColor: textColor}
	err := s.mutate(false, func(p *domain.Project) error {
		p.Roles = append(p.Roles, r)
		return nil
	})
	return r, err
}

func (s *Store) UpdateRole(role domain.Role) error {
	return s.mutate(false, func(p *domain.Project) error {
		for i := range p.Roles {
			if p.Roles[i].ID == role.ID {
				p.Roles[i] = role
				return nil
			}
		}
		return fmt.Errorf("role %q: %w", role.ID, ErrNotFound)
	})
}

// RemoveRole cascades: assignments whose default role it was are removed, and
// session or global overrides pointing at it are dropped so no cell resolves
// to a role that no longer exists.
func (s *Store) RemoveRole(roleID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		idx := -1
		for i := range p.Roles {
			if p.Roles[i].ID == roleID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("role %q: %w", roleID, ErrNotFound)
		}
		p.Roles = append(p.Roles[:idx], p.Roles[idx+1:]...)

		var keptA []domain.Assignment
		for _, a := range p.Assignments {
			if a.RoleID == roleID {
				continue
			}
			var keptOv []domain.Override
			for _, ov := range a.Overrides {
				if ov.RoleID != roleID {
					keptOv = append(keptOv, ov)
				}
			}
			a.Overrides = keptOv
			keptA = append(keptA, a)
		}
		p.Assignments = keptA

		var keptSO []domain.StaffOverride
		for _, so := range p.StaffOverrides {
			if so.RoleID != roleID {
				keptSO = append(keptSO, so)
			}
		}
		p.StaffOverrides = keptSO
		return nil
	})
}

// --- days ---

func (s *Store) AddDay(label, date string, start timeutil.Minutes) (domain.DayConfig, error) {
	maxID := 0
	for _, d := range s.project.Days {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	day := domain.DayConfig{ID: maxID + 1, Label: label, Date: date, StartTime: start}
	if day.Label == "" {
		day.Label = fmt.Sprintf("Day %d", day.ID)
	}
	err := s.mutate(true, func(p *domain.Project) error {
		p.Days = append(p.Days, day)
		return nil
	})
	return day, err
}

// UpdateDay is structural: moving the anchor reshifts the whole day chain.
func (s *Store) UpdateDay(day domain.DayConfig) error {
	return s.mutate(true, func(p *domain.Project) error {
		for i := range p.Days {
			if p.Days[i].ID == day.ID {
				p.Days[i] = day
				return nil
			}
		}
		return fmt.Errorf("day %d: %w", day.ID, ErrNotFound)
	})
}

// RemoveDay cascades: the day's sessions, their assignments, and the day's
// global overrides. Remaining day IDs are left untouched.
func (s *Store) RemoveDay(dayID int) error {
	return s.mutate(true, func(p *domain.Project) error {
		idx := -1
		for i := range p.Days {
			if p.Days[i].ID == dayID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("day %d: %w", dayID, ErrNotFound)
		}
		p.Days = append(p.Days[:idx], p.Days[idx+1:]...)

		gone := make(map[string]bool)
		var keptS []domain.Session
		for _, sess := range p.Sessions {
			if sess.DayID == dayID {
				gone[sess.ID] = true
				continue
			}
			keptS = append(keptS, sess)
		}
		p.Sessions = keptS

		var keptA []domain.Assignment
		for _, a := range p.Assignments {
			if !gone[a.SessionID] {
				keptA = append(keptA, a)
			}
		}
		p.Assignments = keptA

		var keptO []domain.StaffOverride
		for _, o := range p.StaffOverrides {
			if o.DayID != dayID {
				keptO = append(keptO, o)
			}
		}
		p.StaffOverrides = keptO
		return nil
	})
}

// SetGridWindow sets the display window of the shift grid.
func (s *Store) SetGridWindow(start, end timeutil.Minutes) error {
	if start >= end {
		return fmt.Errorf("%w: grid window start must be before end", ErrInvalid)
	}
	return s.mutate(false, func(p *domain.Project) error {
		p.GridStart = start
		p.GridEnd = end
		return nil
	})
}
