package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

func newStaffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff members",
	}

	cmd.AddCommand(
		newStaffAddCmd(app),
		newStaffListCmd(app),
		newStaffRenameCmd(app),
		newStaffRemoveCmd(app),
	)

	return cmd
}

func newStaffAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				m, err := s.AddStaff(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Added staff member %s (%s)\n", m.Name, m.ID)
				return nil
			})
		},
	}
}

func newStaffListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff members",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := openProject(app)
			if err != nil {
				return err
			}
			if len(p.Staff) == 0 {
				fmt.Println("No staff members found.")
				return nil
			}

			headers := []string{"NAME", "ID"}
			rows := make([][]string, 0, len(p.Staff))
			for _, m := range p.Staff {
				rows = append(rows, []string{formatter.Bold(m.Name), formatter.TruncID(m.ID)})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newStaffRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename REF NAME",
		Short: "Rename a staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				m, err := resolveStaff(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RenameStaff(m.ID, args[1]); err != nil {
					return err
				}
				fmt.Printf("Renamed staff member to %s\n", args[1])
				return nil
			})
		},
	}
}

func newStaffRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a staff member and their assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				m, err := resolveStaff(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RemoveStaff(m.ID); err != nil {
					return err
				}
				fmt.Printf("Removed staff member %s\n", m.Name)
				return nil
			})
		},
	}
}
