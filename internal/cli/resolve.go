package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
)

// Resolution order for string-keyed entities: exact name, exact ID, then
// unambiguous ID prefix. Names win over IDs so short Japanese names never
// collide with generated UUIDs.

func resolveStaff(p *domain.Project, ref string) (*domain.StaffMember, error) {
	for i := range p.Staff {
		if p.Staff[i].Name == ref {
			return &p.Staff[i], nil
		}
	}
	idx, err := resolveID(ref, "staff member", len(p.Staff), func(i int) string { return p.Staff[i].ID })
	if err != nil {
		return nil, err
	}
	return &p.Staff[idx], nil
}

func resolveRole(p *domain.Project, ref string) (*domain.Role, error) {
	for i := range p.Roles {
		if p.Roles[i].Name == ref {
			return &p.Roles[i], nil
		}
	}
	idx, err := resolveID(ref, "role", len(p.Roles), func(i int) string { return p.Roles[i].ID })
	if err != nil {
		return nil, err
	}
	return &p.Roles[idx], nil
}

// resolveSession matches by unique title first, then ID or ID prefix.
func resolveSession(p *domain.Project, ref string) (*domain.Session, error) {
	byTitle := -1
	for i := range p.Sessions {
		if p.Sessions[i].Title == ref {
			if byTitle >= 0 {
				return nil, fmt.Errorf("session title %q is ambiguous; use the session ID", ref)
			}
			byTitle = i
		}
	}
	if byTitle >= 0 {
		return &p.Sessions[byTitle], nil
	}
	idx, err := resolveID(ref, "session", len(p.Sessions), func(i int) string { return p.Sessions[i].ID })
	if err != nil {
		return nil, err
	}
	return &p.Sessions[idx], nil
}

// resolveDay accepts a numeric day ID, a label, or a date.
func resolveDay(p *domain.Project, ref string) (*domain.DayConfig, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if d := p.Day(id); d != nil {
			return d, nil
		}
	}
	for i := range p.Days {
		if p.Days[i].Label == ref || (p.Days[i].Date != "" && p.Days[i].Date == ref) {
			return &p.Days[i], nil
		}
	}
	return nil, fmt.Errorf("day not found: %q", ref)
}

func resolveID(ref, kind string, n int, id func(int) string) (int, error) {
	for i := 0; i < n; i++ {
		if id(i) == ref {
			return i, nil
		}
	}
	matches := make([]int, 0, 1)
	for i := 0; i < n; i++ {
		if strings.HasPrefix(id(i), ref) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return 0, fmt.Errorf("%s not found: %q", kind, ref)
	default:
		return 0, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}
