// Package cli wires the cobra command tree. Commands hold no state of their
// own: every invocation opens the target project, applies mutations through a
// store, and saves the new document back through the project service.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

// timeNow is swapped in tests that pin export filenames.
var timeNow = time.Now

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Imports  service.ImportService

	projectRef string
}

// NewRootCmd creates the top-level "rota" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rota",
		Short: "Workshop shift scheduler",
	}

	root.PersistentFlags().StringVarP(&app.projectRef, "project", "P", "",
		"Project name, ID, or unambiguous ID prefix")

	root.AddCommand(
		newProjectCmd(app),
		newStaffCmd(app),
		newRoleCmd(app),
		newDayCmd(app),
		newSessionCmd(app),
		newAssignCmd(app),
		newOverrideCmd(app),
		newMilestoneCmd(app),
		newGridCmd(app),
	)

	return root
}

// openProject resolves the --project flag into a loaded document.
func openProject(app *App) (*domain.Project, *repository.ProjectRecord, error) {
	if app.projectRef == "" {
		return nil, nil, fmt.Errorf("a project is required; pass --project")
	}
	return app.Projects.Open(context.Background(), app.projectRef)
}

// withProject runs one open-mutate-save cycle against the --project target.
// Nothing is persisted when fn returns an error.
func withProject(app *App, fn func(s *store.Store) error) error {
	p, rec, err := openProject(app)
	if err != nil {
		return err
	}
	s := store.New(p)
	if err := fn(s); err != nil {
		return err
	}
	return app.Projects.Save(context.Background(), rec.ID, s.Snapshot())
}
