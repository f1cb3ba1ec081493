// Package csvimport reconstructs a structured planning document from a
// spreadsheet-style CSV export: rows are 5-minute time ticks, columns are
// staff members, cell values are free-text role labels, and date rows mark
// day boundaries. Contiguous same-value runs in a column collapse into
// sessions with assignments.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/google/uuid"
)

// Result is the partial document recovered from one CSV export, plus the
// human-readable warnings shown during import confirmation.
type Result struct {
	Staff       []domain.StaffMember
	Roles       []domain.Role
	Days        []domain.DayConfig
	Sessions    []domain.Session
	Assignments []domain.Assignment
	Warnings    []string
}

// Parser turns CSV text into a Result. NewID is swappable for tests.
type Parser struct {
	NewID func() string
}

func New() *Parser {
	return &Parser{NewID: uuid.NewString}
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
	jpDatePattern  = regexp.MustCompile(`^\d{1,2}月\d{1,2}日$`)
)

// rolePalette cycles by role insertion order; auto-created roles get white text.
var rolePalette = []string{
	"#2563eb", "#dc2626", "#16a34a", "#d97706", "#7c3aed",
	"#0891b2", "#db2777", "#65a30d", "#ea580c", "#4f46e5",
}

type state int

const (
	seekDay state = iota
	seekHeader
	readingData
)

// run tracks the active cell value for one staff column while reading data.
type run struct {
	open  bool
	value string
	start timeutil.Minutes
}

type parse struct {
	p *Parser

	result      Result
	staffByName map[string]string // name -> staff ID
	roleByName  map[string]string // label -> role ID

	state     state
	dayIdx    int // index into result.Days of the current day, -1 if none
	columns   []string
	prevCols  []string
	runs      []run
	lastTick  timeutil.Minutes
	haveTick  bool
	dayCounts []int // sessions emitted per day, parallel to result.Days
}

// Parse consumes already-decoded CSV text. Structural CSV damage (a stray
// unterminated quote) is an error; empty or unrecognizable content is not,
// it yields an explanatory warning and empty collections.
func (pr *Parser) Parse(text string) (*Result, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	ps := &parse{
		p:           pr,
		staffByName: make(map[string]string),
		roleByName:  make(map[string]string),
		dayIdx:      -1,
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		ps.row(record)
	}
	ps.closeDay()
	ps.mergeSessions()
	ps.buildWarnings()

	return &ps.result, nil
}

func (ps *parse) row(record []string) {
	cells := make([]string, len(record))
	for i, c := range record {
		cells[i] = strings.TrimSpace(c)
	}
	first := ""
	if len(cells) > 0 {
		first = cells[0]
	}

	switch ps.state {
	case seekDay:
		switch {
		case isDateCell(first):
			ps.startDay(first)
			ps.state = seekHeader
		case looksLikeHeader(cells, 2):
			ps.startDay("")
			ps.setColumns(cells)
			ps.state = readingData
		}

	case seekHeader:
		switch {
		case timeutil.LooksLikeClock(first):
			// Header omitted for a repeat day: reuse the previous staff list.
			if len(ps.prevCols) == 0 {
				ps.warnf("time row %q before any staff header; row skipped", first)
				return
			}
			ps.columns = append([]string(nil), ps.prevCols...)
			ps.runs = make([]run, len(ps.columns))
			ps.state = readingData
			ps.tick(cells)
		case looksLikeHeader(cells, 1):
			ps.setColumns(cells)
			ps.state = readingData
		case isDateCell(first):
			// A second date row before any data replaces the pending date.
			ps.result.Days[ps.dayIdx].Date = first
		}

	case readingData:
		switch {
		case timeutil.LooksLikeClock(first):
			ps.tick(cells)
		case isDateCell(first):
			ps.closeDay()
			ps.startDay(first)
			ps.state = seekHeader
		}
	}
}

func (ps *parse) startDay(date string) {
	id := len(ps.result.Days) + 1
	ps.result.Days = append(ps.result.Days, domain.DayConfig{
		ID:    id,
		Label: fmt.Sprintf("Day %d", id),
		Date:  date,
	})
	ps.dayCounts = append(ps.dayCounts, 0)
	ps.dayIdx = len(ps.result.Days) - 1
	ps.haveTick = false
	ps.runs = nil
	ps.columns = nil
}

// setColumns registers the header row's staff names, creating unseen staff.
// Blank header cells keep their column position so data columns stay aligned.
func (ps *parse) setColumns(cells []string) {
	var cols []string
	for _, name := range cells[1:] {
		if name == "" {
			cols = append(cols, "")
			continue
		}
		id, ok := ps.staffByName[name]
		if !ok {
			id = ps.p.NewID()
			ps.staffByName[name] = id
			ps.result.Staff = append(ps.result.Staff, domain.StaffMember{ID: id, Name: name})
		}
		cols = append(cols, id)
	}
	ps.columns = cols
	ps.prevCols = append([]string(nil), cols...)
	ps.runs = make([]run, len(cols))
}

func (ps *parse) tick(cells []string) {
	t, err := timeutil.ParseClock(cells[0])
	if err != nil {
		return
	}
	if !ps.haveTick {
		ps.result.Days[ps.dayIdx].StartTime = t
		ps.haveTick = true
	}
	ps.lastTick = t

	for j := range ps.columns {
		value := ""
		if 1+j < len(cells) {
			value = cells[1+j]
		}
		r := &ps.runs[j]
		if r.open && r.value != value {
			ps.closeRun(j, t)
		}
		if value != "" && !r.open {
			*r = run{open: true, value: value, start: t}
		}
	}
}

// closeRun emits the session candidate and assignment for the half-open
// interval [run.start, end). Post-processing merges candidates that cover
// the same interval of the same day.
func (ps *parse) closeRun(j int, end timeutil.Minutes) {
	r := &ps.runs[j]
	if !r.open {
		return
	}
	defer func() { r.open = false }()

	staffID := ps.columns[j]
	if staffID == "" {
		return
	}

	roleID := ps.roleFor(r.value)
	dayID := ps.result.Days[ps.dayIdx].ID
	sess := domain.Session{
		ID:          ps.p.NewID(),
		DayID:       dayID,
		Title:       r.value,
		DurationMin: int(end - r.start),
		StartMin:    r.start,
		EndMin:      end,
	}
	ps.result.Sessions = append(ps.result.Sessions, sess)
	ps.result.Assignments = append(ps.result.Assignments, domain.Assignment{
		SessionID: sess.ID,
		StaffID:   staffID,
		RoleID:    roleID,
	})
	ps.dayCounts[ps.dayIdx]++
}

func (ps *parse) roleFor(label string) string {
	if id, ok := ps.roleByName[label]; ok {
		return id
	}
	id := ps.p.NewID()
	ps.roleByName[label] = id
	ps.result.Roles = append(ps.result.Roles, domain.Role{
		ID:        id,
		Name:      label,
		Color:     rolePalette[len(ps.result.Roles)%len(rolePalette)],
		TextColor: "#ffffff",
	})
	return id
}

// closeDay closes still-open runs at lastTick + one grid step.
func (ps *parse) closeDay() {
	if ps.dayIdx < 0 || !ps.haveTick {
		return
	}
	end := ps.lastTick + timeutil.GridStep
	for j := range ps.runs {
		ps.closeRun(j, end)
	}
}

// mergeSessions collapses session candidates sharing (day, start, end) into
// one session; each staff column emits its own candidate for the same
// wall-clock interval, so duplicates are the normal case, not an error.
func (ps *parse) mergeSessions() {
	type span struct {
		day        int
		start, end timeutil.Minutes
	}
	canonical := make(map[span]string)
	redirect := make(map[string]string)
	var kept []domain.Session
	var dropped int

	for _, s := range ps.result.Sessions {
		k := span{day: s.DayID, start: s.StartMin, end: s.EndMin}
		if id, ok := canonical[k]; ok {
			redirect[s.ID] = id
			dropped++
			continue
		}
		canonical[k] = s.ID
		kept = append(kept, s)
	}
	ps.result.Sessions = kept

	for i := range ps.result.Assignments {
		if id, ok := redirect[ps.result.Assignments[i].SessionID]; ok {
			ps.result.Assignments[i].SessionID = id
		}
	}

	// Merged candidates were double-counted per emitting column.
	if dropped > 0 {
		for i, d := range ps.result.Days {
			n := 0
			for _, s := range kept {
				if s.DayID == d.ID {
					n++
				}
			}
			ps.dayCounts[i] = n
		}
	}
}

func (ps *parse) buildWarnings() {
	if len(ps.result.Staff) == 0 && len(ps.result.Days) == 0 {
		ps.warnf("no staff header or time rows recognized; nothing was imported")
		return
	}
	ps.warnf("%d staff members found", len(ps.result.Staff))
	for i, d := range ps.result.Days {
		label := d.Label
		if d.Date != "" {
			label = fmt.Sprintf("%s (%s)", d.Label, d.Date)
		}
		ps.warnf("%s: %d sessions", label, ps.dayCounts[i])
	}
}

func (ps *parse) warnf(format string, args ...any) {
	ps.result.Warnings = append(ps.result.Warnings, fmt.Sprintf(format, args...))
}

func isDateCell(s string) bool {
	return isoDatePattern.MatchString(s) || jpDatePattern.MatchString(s)
}

// looksLikeHeader applies the staff-header heuristic: a blank first cell
// (the time column) followed by at least minNames short plain-text cells that
// are neither clock times nor dates. Before any date row two names are
// required; inside a started day one name is enough.
func looksLikeHeader(cells []string, minNames int) bool {
	if len(cells) < minNames+1 || cells[0] != "" {
		return false
	}
	n := 0
	for _, c := range cells[1:] {
		if c == "" || timeutil.LooksLikeClock(c) || isDateCell(c) {
			continue
		}
		if utf8.RuneCountInString(c) > 20 {
			continue
		}
		n++
	}
	return n >= minNames
}
