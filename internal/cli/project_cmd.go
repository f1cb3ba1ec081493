package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/repository"
	"github.com/alexanderramin/rota/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectRenameCmd(app),
		newProjectRemoveCmd(app),
		newProjectExportCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Projects.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", rec.Name, rec.ID)
			return nil
		},
	}
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			headers := []string{"NAME", "ID", "UPDATED"}
			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, []string{
					formatter.Bold(r.Name),
					formatter.TruncID(r.ID),
					r.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename REF NEWNAME",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, rec, err := app.Projects.Open(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Rename(ctx, rec.ID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed project %s to %s\n", rec.Name, args[1])
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, rec, err := app.Projects.Open(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, rec.ID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", rec.Name)
			return nil
		},
	}
}

func newProjectExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export REF",
		Short: "Export a project as a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, data, err := app.Projects.Export(context.Background(), args[0], timeNow())
			if err != nil {
				return err
			}
			if out != "" {
				filename = out
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Printf("Exported to %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (defaults to a date-stamped name)")

	return cmd
}

func newProjectImportCmd(app *App) *cobra.Command {
	var name string
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project from a JSON or CSV file",
		Long: "Import a project from a JSON export or a published-schedule CSV.\n" +
			"The file kind is taken from the extension. A preview of what the\n" +
			"file contains is shown first; importing over an existing project\n" +
			"name replaces that project after confirmation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			isCSV := strings.EqualFold(filepath.Ext(path), ".csv")

			var preview *service.ImportPreview
			if isCSV {
				preview, err = app.Imports.PreviewCSV(string(data))
			} else {
				preview, err = app.Imports.PreviewJSON(data)
			}
			if err != nil {
				return err
			}
			printPreview(preview)

			if replaces := projectExists(app, name); replaces && !yes {
				ok, err := confirmReplace(fmt.Sprintf("Replace existing project %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Import cancelled.")
					return nil
				}
			}

			ctx := context.Background()
			var rec *repository.ProjectRecord
			if isCSV {
				rec, _, err = app.Imports.CommitCSV(ctx, name, string(data))
			} else {
				rec, err = app.Imports.CommitJSON(ctx, name, data)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported project %s (%s)\n", rec.Name, rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (defaults to the file name)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace an existing project without asking")

	return cmd
}

func printPreview(p *service.ImportPreview) {
	fmt.Println(formatter.Header("Import preview"))
	fmt.Printf("  Staff:       %d\n", p.StaffCount)
	fmt.Printf("  Roles:       %d\n", p.RoleCount)
	fmt.Printf("  Days:        %d\n", p.DayCount)
	fmt.Printf("  Sessions:    %d\n", p.SessionCount)
	fmt.Printf("  Assignments: %d\n", p.AssignmentCount)
	for _, w := range p.Warnings {
		fmt.Println(formatter.Dim("  " + w))
	}
}

func projectExists(app *App, name string) bool {
	recs, err := app.Projects.List(context.Background())
	if err != nil {
		return false
	}
	for _, r := range recs {
		if r.Name == name {
			return true
		}
	}
	return false
}

// confirmReplace asks before an import overwrites an existing project.
// Swapped in tests.
var confirmReplace = func(prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Replace").
		Negative("Keep").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return ok, nil
}
