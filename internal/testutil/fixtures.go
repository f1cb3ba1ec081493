package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/schedule"
	"github.com/alexanderramin/rota/internal/timeutil"
)

var idCounter atomic.Int64

// NextID returns process-unique sequential IDs for fixtures.
func NextID() string {
	return fmt.Sprintf("fix-%03d", idCounter.Add(1))
}

// ProjectOption mutates a fixture project before its sessions are chained.
type ProjectOption func(*domain.Project)

func WithStaff(names ...string) ProjectOption {
	return func(p *domain.Project) {
		for _, n := range names {
			p.Staff = append(p.Staff, domain.StaffMember{ID: NextID(), Name: n})
		}
	}
}

func WithRole(name, color string) ProjectOption {
	return func(p *domain.Project) {
		p.Roles = append(p.Roles, domain.Role{ID: NextID(), Name: name, Color: color, TextColor: "#ffffff"})
	}
}

func WithDay(id int, start string) ProjectOption {
	return func(p *domain.Project) {
		p.Days = append(p.Days, domain.DayConfig{
			ID: id, Label: fmt.Sprintf("Day %d", id), StartTime: timeutil.MustClock(start),
		})
	}
}

func WithSession(dayID int, title string, durationMin int) ProjectOption {
	return func(p *domain.Project) {
		p.Sessions = append(p.Sessions, domain.Session{
			ID: NextID(), DayID: dayID, Title: title, DurationMin: durationMin,
		})
	}
}

func WithGridWindow(start, end string) ProjectOption {
	return func(p *domain.Project) {
		p.GridStart = timeutil.MustClock(start)
		p.GridEnd = timeutil.MustClock(end)
	}
}

// NewProject builds a document fixture and chains its session times.
func NewProject(opts ...ProjectOption) *domain.Project {
	p := domain.NewProject()
	for _, opt := range opts {
		opt(p)
	}
	p.Sessions = schedule.Rechain(p.Days, p.Sessions)
	return p
}
