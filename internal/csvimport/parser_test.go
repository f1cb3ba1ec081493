package csvimport

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestParser returns a parser with deterministic sequential IDs.
func newTestParser() *Parser {
	n := 0
	return &Parser{NewID: func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}}
}

func roleNamed(t *testing.T, r *Result, name string) domain.Role {
	t.Helper()
	for _, role := range r.Roles {
		if role.Name == name {
			return role
		}
	}
	t.Fatalf("role %q not found", name)
	return domain.Role{}
}

func staffNamed(t *testing.T, r *Result, name string) domain.StaffMember {
	t.Helper()
	for _, s := range r.Staff {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("staff %q not found", name)
	return domain.StaffMember{}
}

func assignmentsOf(r *Result, staffID string) []domain.Assignment {
	var out []domain.Assignment
	for _, a := range r.Assignments {
		if a.StaffID == staffID {
			out = append(out, a)
		}
	}
	return out
}

const canonicalFixture = `2025-07-01
,田中,鈴木
09:00,発表,サポート
09:05,発表,サポート
09:10,,サポート
09:15,,
`

func TestParseCanonicalFixture(t *testing.T) {
	r, err := newTestParser().Parse(canonicalFixture)
	require.NoError(t, err)

	require.Len(t, r.Staff, 2)
	assert.Equal(t, "田中", r.Staff[0].Name)
	assert.Equal(t, "鈴木", r.Staff[1].Name)

	require.Len(t, r.Days, 1)
	assert.Equal(t, "2025-07-01", r.Days[0].Date)
	assert.Equal(t, "09:00", r.Days[0].StartTime.Clock())

	require.Len(t, r.Sessions, 2)
	require.Len(t, r.Roles, 2)

	tanaka := staffNamed(t, r, "田中")
	suzuki := staffNamed(t, r, "鈴木")

	ta := assignmentsOf(r, tanaka.ID)
	require.Len(t, ta, 1)
	var tanakaSess domain.Session
	for _, s := range r.Sessions {
		if s.ID == ta[0].SessionID {
			tanakaSess = s
		}
	}
	assert.Equal(t, "09:00", tanakaSess.StartMin.Clock())
	assert.Equal(t, "09:10", tanakaSess.EndMin.Clock())
	assert.Equal(t, roleNamed(t, r, "発表").ID, ta[0].RoleID)

	sa := assignmentsOf(r, suzuki.ID)
	require.Len(t, sa, 1)
	var suzukiSess domain.Session
	for _, s := range r.Sessions {
		if s.ID == sa[0].SessionID {
			suzukiSess = s
		}
	}
	assert.Equal(t, "09:00", suzukiSess.StartMin.Clock())
	assert.Equal(t, "09:15", suzukiSess.EndMin.Clock())
	assert.Equal(t, roleNamed(t, r, "サポート").ID, sa[0].RoleID)
}

func TestParseSameIntervalMergesAcrossStaff(t *testing.T) {
	r, err := newTestParser().Parse(`2025-07-01
,A,B
09:00,MC,MC
09:05,MC,MC
`)
	require.NoError(t, err)

	// Both columns emit a 09:00-09:10 candidate; they merge into one session
	// with two assignments pointing at it.
	require.Len(t, r.Sessions, 1)
	require.Len(t, r.Assignments, 2)
	assert.Equal(t, r.Sessions[0].ID, r.Assignments[0].SessionID)
	assert.Equal(t, r.Sessions[0].ID, r.Assignments[1].SessionID)
	require.Len(t, r.Roles, 1)
}

func TestParseOpenRunClosesAtLastTickPlusStep(t *testing.T) {
	r, err := newTestParser().Parse(`2025-07-01
,A
10:00,Desk
10:05,Desk
10:10,Desk
`)
	require.NoError(t, err)

	require.Len(t, r.Sessions, 1)
	assert.Equal(t, "10:00", r.Sessions[0].StartMin.Clock())
	assert.Equal(t, "10:15", r.Sessions[0].EndMin.Clock())
	assert.Equal(t, 15, r.Sessions[0].DurationMin)
}

func TestParseHeaderWithoutDateRow(t *testing.T) {
	r, err := newTestParser().Parse(`,Alice,Bob
09:00,MC,
09:05,,
`)
	require.NoError(t, err)

	require.Len(t, r.Days, 1)
	assert.Empty(t, r.Days[0].Date)
	require.Len(t, r.Staff, 2)
	require.Len(t, r.Sessions, 1)
}

func TestParseRepeatDayReusesHeader(t *testing.T) {
	r, err := newTestParser().Parse(`2025-07-01
,Alice,Bob
09:00,MC,Desk
09:05,,
2025-07-02
10:00,Desk,MC
10:05,,
`)
	require.NoError(t, err)

	require.Len(t, r.Days, 2)
	require.Len(t, r.Staff, 2, "day two reuses day one's staff list")
	assert.Equal(t, "10:00", r.Days[1].StartTime.Clock())

	// Both day-two columns cover 10:00-10:05, so their candidates merge
	// into one session holding both assignments.
	var dayTwo []domain.Session
	for _, s := range r.Sessions {
		if s.DayID == 2 {
			dayTwo = append(dayTwo, s)
		}
	}
	require.Len(t, dayTwo, 1)
	var pointing int
	for _, a := range r.Assignments {
		if a.SessionID == dayTwo[0].ID {
			pointing++
		}
	}
	assert.Equal(t, 2, pointing)
}

func TestParseJapaneseDateMarker(t *testing.T) {
	r, err := newTestParser().Parse(`7月1日
,Alice,Bob
09:00,MC,Desk
09:05,,
`)
	require.NoError(t, err)

	require.Len(t, r.Days, 1)
	assert.Equal(t, "7月1日", r.Days[0].Date)
}

func TestParseRoleColorsCycleWithWhiteText(t *testing.T) {
	csv := "2025-07-01\n,A,B\n"
	// Twelve distinct labels across ticks to wrap the ten-color palette.
	for i := 0; i < 12; i++ {
		csv += fmt.Sprintf("%02d:%02d,R%d,\n", 9+i/12, (i*5)%60, i)
	}
	r, err := newTestParser().Parse(csv)
	require.NoError(t, err)

	require.Len(t, r.Roles, 12)
	assert.Equal(t, r.Roles[0].Color, r.Roles[10].Color, "palette cycles")
	assert.NotEqual(t, r.Roles[0].Color, r.Roles[1].Color)
	for _, role := range r.Roles {
		assert.Equal(t, "#ffffff", role.TextColor)
	}
}

func TestParseHeaderRequiresBlankFirstCell(t *testing.T) {
	// Rows of short text with a non-blank first cell are prose, not headers;
	// the day starts at the date row and nothing is fabricated before it.
	r, err := newTestParser().Parse(`notes,draft,v2
2025-07-01
,A,B
09:00,MC,
`)
	require.NoError(t, err)

	require.Len(t, r.Days, 1)
	require.Len(t, r.Staff, 2)
	assert.Equal(t, "A", r.Staff[0].Name)
}

func TestParseSingleStaffHeader(t *testing.T) {
	// A lone `,A` row is too thin to open a day on its own...
	r, err := newTestParser().Parse(",A\n09:00,Desk\n")
	require.NoError(t, err)
	assert.Empty(t, r.Staff)
	assert.Empty(t, r.Days)

	// ...but after a date row it is the day's header.
	r, err = newTestParser().Parse(`2025-07-01
,A
09:00,Desk
`)
	require.NoError(t, err)
	require.Len(t, r.Staff, 1)
	require.Len(t, r.Sessions, 1)
	assert.Equal(t, "09:00", r.Sessions[0].StartMin.Clock())
	assert.Equal(t, "09:05", r.Sessions[0].EndMin.Clock())
}

func TestParseEmptyInputWarnsInsteadOfFailing(t *testing.T) {
	for _, input := range []string{"", "just,some,unrelated\nrows,here,too\n"} {
		r, err := newTestParser().Parse(input)
		require.NoError(t, err)
		assert.Empty(t, r.Staff)
		assert.Empty(t, r.Sessions)
		require.Len(t, r.Warnings, 1)
		assert.Contains(t, r.Warnings[0], "nothing was imported")
	}
}

func TestParseWarningsCarryCounts(t *testing.T) {
	r, err := newTestParser().Parse(canonicalFixture)
	require.NoError(t, err)

	require.NotEmpty(t, r.Warnings)
	assert.Contains(t, r.Warnings[0], "2 staff members")
	assert.Contains(t, r.Warnings[1], "2 sessions")
}

func TestParseRaggedRowsTolerated(t *testing.T) {
	r, err := newTestParser().Parse(`2025-07-01
,Alice,Bob
09:00,MC
09:05,MC,Desk
09:10,,
`)
	require.NoError(t, err)

	// The short row reads as blank for Bob, so his run starts at 09:05.
	bob := staffNamed(t, r, "Bob")
	ba := assignmentsOf(r, bob.ID)
	require.Len(t, ba, 1)
	var s domain.Session
	for _, sess := range r.Sessions {
		if sess.ID == ba[0].SessionID {
			s = sess
		}
	}
	assert.Equal(t, "09:05", s.StartMin.Clock())
	assert.Equal(t, "09:10", s.EndMin.Clock())
}
