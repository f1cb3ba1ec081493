package store

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/domain"
)

// AddSession appends a session at the end of its day's order. A zero duration
// means "not set" and becomes the 30-minute default.
func (s *Store) AddSession(dayID int, title string, durationMin int) (domain.Session, error) {
	if durationMin == 0 {
		durationMin = domain.DefaultSessionMin
	}
	sess := domain.Session{ID: s.newID(), DayID: dayID, Title: title, DurationMin: durationMin}
	err := s.mutate(true, func(p *domain.Project) error {
		if p.Day(dayID) == nil {
			return fmt.Errorf("day %d: %w", dayID, ErrNotFound)
		}
		p.Sessions = append(p.Sessions, sess)
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	// Return the session with its freshly chained times.
	return *s.project.Session(sess.ID), nil
}

// UpdateSession changes title and/or duration; nil leaves a field alone.
func (s *Store) UpdateSession(sessionID string, title *string, durationMin *int) error {
	return s.mutate(true, func(p *domain.Project) error {
		sess := p.Session(sessionID)
		if sess == nil {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		if title != nil {
			sess.Title = *title
		}
		if durationMin != nil {
			sess.DurationMin = *durationMin
		}
		return nil
	})
}

// RemoveSession cascades to the session's assignments and, through them,
// their overrides.
func (s *Store) RemoveSession(sessionID string) error {
	return s.mutate(true, func(p *domain.Project) error {
		idx := -1
		for i := range p.Sessions {
			if p.Sessions[i].ID == sessionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		p.Sessions = append(p.Sessions[:idx], p.Sessions[idx+1:]...)

		var kept []domain.Assignment
		for _, a := range p.Assignments {
			if a.SessionID != sessionID {
				kept = append(kept, a)
			}
		}
		p.Assignments = kept
		return nil
	})
}

// MoveSessionUp swaps the session with its predecessor within the same day.
// Already first in its day is a no-op.
func (s *Store) MoveSessionUp(sessionID string) error {
	return s.moveSession(sessionID, -1)
}

// MoveSessionDown swaps the session with its successor within the same day.
// Already last in its day is a no-op.
func (s *Store) MoveSessionDown(sessionID string) error {
	return s.moveSession(sessionID, +1)
}

// moveSession performs the adjacent swap in the master session list. Only the
// positions of the day's own sessions matter; sessions of other days between
// them are invisible to the day's ordering.
func (s *Store) moveSession(sessionID string, dir int) error {
	return s.mutate(true, func(p *domain.Project) error {
		var sess *domain.Session
		for i := range p.Sessions {
			if p.Sessions[i].ID == sessionID {
				sess = &p.Sessions[i]
				break
			}
		}
		if sess == nil {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}

		// Master-list indices of this day's sessions, in order.
		var dayIdx []int
		pos := -1
		for i := range p.Sessions {
			if p.Sessions[i].DayID != sess.DayID {
				continue
			}
			if p.Sessions[i].ID == sessionID {
				pos = len(dayIdx)
			}
			dayIdx = append(dayIdx, i)
		}

		other := pos + dir
		if other < 0 || other >= len(dayIdx) {
			return nil
		}
		i, j := dayIdx[pos], dayIdx[other]
		p.Sessions[i], p.Sessions[j] = p.Sessions[j], p.Sessions[i]
		return nil
	})
}

// AddMilestone attaches a labeled marker to a session. Milestone edits never
// rechain; they cannot affect timing.
func (s *Store) AddMilestone(sessionID string, offsetMin int, label string) (domain.Milestone, error) {
	m := domain.Milestone{ID: s.newID(), OffsetMin: offsetMin, Label: label}
	err := s.mutate(false, func(p *domain.Project) error {
		sess := p.Session(sessionID)
		if sess == nil {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		sess.Milestones = append(sess.Milestones, m)
		return nil
	})
	if err != nil {
		return domain.Milestone{}, err
	}
	return m, nil
}

func (s *Store) RemoveMilestone(sessionID, milestoneID string) error {
	return s.mutate(false, func(p *domain.Project) error {
		sess := p.Session(sessionID)
		if sess == nil {
			return fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		for i := range sess.Milestones {
			if sess.Milestones[i].ID == milestoneID {
				sess.Milestones = append(sess.Milestones[:i], sess.Milestones[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("milestone %q: %w", milestoneID, ErrNotFound)
	})
}
