package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Projects: service.NewProjectService(repo, uow),
		Imports:  service.NewImportService(repo, uow),
	}
}

// executeCmd runs a cobra command and captures cobra output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestProjectAddAndOpen(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "demo")
	require.NoError(t, err)

	p, rec, err := app.Projects.Open(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", rec.Name)
	assert.Empty(t, p.Days)
}

func TestMutationsPersistAcrossInvocations(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "demo")
	require.NoError(t, err)

	steps := [][]string{
		{"-P", "demo", "day", "add", "--start", "09:00"},
		{"-P", "demo", "session", "add", "1", "Opening", "--minutes", "15"},
		{"-P", "demo", "session", "add", "1", "Workshop"},
		{"-P", "demo", "staff", "add", "田中"},
		{"-P", "demo", "role", "add", "発表", "--color", "#e74c3c"},
		{"-P", "demo", "assign", "set", "Opening", "田中", "発表"},
	}
	for _, args := range steps {
		_, err := executeCmd(t, app, args...)
		require.NoError(t, err, "args: %v", args)
	}

	p, _, err := app.Projects.Open(context.Background(), "demo")
	require.NoError(t, err)

	sessions := p.SessionsForDay(1)
	require.Len(t, sessions, 2)
	assert.Equal(t, "09:00", sessions[0].StartMin.Clock())
	assert.Equal(t, "09:15", sessions[0].EndMin.Clock())
	assert.Equal(t, "09:15", sessions[1].StartMin.Clock())
	assert.Equal(t, "09:45", sessions[1].EndMin.Clock())

	require.Len(t, p.Assignments, 1)
	assert.Equal(t, sessions[0].ID, p.Assignments[0].SessionID)
}

func TestFailedMutationPersistsNothing(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "demo")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "-P", "demo", "staff", "add", "田中")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "-P", "demo", "assign", "set", "nope", "田中", "nope")
	require.Error(t, err)

	p, _, err := app.Projects.Open(context.Background(), "demo")
	require.NoError(t, err)
	assert.Empty(t, p.Assignments)
}

func TestProjectFlagRequired(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "staff", "add", "田中")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--project")
}

func TestGridWindowRejectsInvertedInterval(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "demo")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "-P", "demo", "grid", "window", "10:00", "09:00")
	require.Error(t, err)
}

func TestSessionResolvesByIDPrefix(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "demo")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "-P", "demo", "day", "add", "--start", "09:00")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "-P", "demo", "session", "add", "1", "Opening")
	require.NoError(t, err)

	p, _, err := app.Projects.Open(context.Background(), "demo")
	require.NoError(t, err)
	prefix := p.Sessions[0].ID[:8]

	_, err = executeCmd(t, app, "-P", "demo", "session", "update", prefix, "--minutes", "45")
	require.NoError(t, err)

	p, _, err = app.Projects.Open(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 45, p.Sessions[0].DurationMin)
}

const importCSV = "スケジュール表\n" +
	"2025-07-01\n" +
	",田中,鈴木\n" +
	"9:00,発表,サポート\n" +
	"9:05,発表,サポート\n" +
	"9:10,,サポート\n"

func TestProjectImportCSV(t *testing.T) {
	app := testApp(t)

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(importCSV), 0o644))

	_, err := executeCmd(t, app, "project", "import", path, "--name", "imported", "--yes")
	require.NoError(t, err)

	p, _, err := app.Projects.Open(context.Background(), "imported")
	require.NoError(t, err)
	assert.Len(t, p.Staff, 2)
	assert.Len(t, p.Days, 1)
}

func TestProjectImportDeclinedKeepsExisting(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "imported")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "-P", "imported", "staff", "add", "既存")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(importCSV), 0o644))

	// Declining the replacement prompt leaves the document untouched.
	restore := confirmReplace
	confirmReplace = func(string) (bool, error) { return false, nil }
	t.Cleanup(func() { confirmReplace = restore })

	_, err = executeCmd(t, app, "project", "import", path, "--name", "imported")
	require.NoError(t, err)

	p, _, err := app.Projects.Open(context.Background(), "imported")
	require.NoError(t, err)
	require.Len(t, p.Staff, 1)
	assert.Equal(t, "既存", p.Staff[0].Name)
}
