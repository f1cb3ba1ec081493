package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

func newRoleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	cmd.AddCommand(
		newRoleAddCmd(app),
		newRoleListCmd(app),
		newRoleUpdateCmd(app),
		newRoleRemoveCmd(app),
	)

	return cmd
}

func newRoleAddCmd(app *App) *cobra.Command {
	var color, textColor string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				r, err := s.AddRole(args[0], color, textColor)
				if err != nil {
					return err
				}
				fmt.Printf("Added role %s (%s)\n", r.Name, r.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Cell background color, e.g. #e74c3c")
	cmd.Flags().StringVar(&textColor, "text-color", "#ffffff", "Cell text color")

	return cmd
}

func newRoleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := openProject(app)
			if err != nil {
				return err
			}
			if len(p.Roles) == 0 {
				fmt.Println("No roles found.")
				return nil
			}

			headers := []string{"ROLE", "COLOR", "ID"}
			rows := make([][]string, 0, len(p.Roles))
			for i := range p.Roles {
				r := &p.Roles[i]
				rows = append(rows, []string{
					formatter.RoleSwatch(r),
					formatter.Dim(r.Color),
					formatter.TruncID(r.ID),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newRoleUpdateCmd(app *App) *cobra.Command {
	var name, color, textColor string

	cmd := &cobra.Command{
		Use:   "update REF",
		Short: "Update a role's name or colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				r, err := resolveRole(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				updated := *r
				if cmd.Flags().Changed("name") {
					updated.Name = name
				}
				if cmd.Flags().Changed("color") {
					updated.Color = color
				}
				if cmd.Flags().Changed("text-color") {
					updated.TextColor = textColor
				}
				if err := s.UpdateRole(updated); err != nil {
					return err
				}
				fmt.Printf("Updated role %s\n", updated.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New role name")
	cmd.Flags().StringVar(&color, "color", "", "Cell background color")
	cmd.Flags().StringVar(&textColor, "text-color", "", "Cell text color")

	return cmd
}

func newRoleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a role and the assignments that used it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				r, err := resolveRole(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RemoveRole(r.ID); err != nil {
					return err
				}
				fmt.Printf("Removed role %s\n", r.Name)
				return nil
			})
		},
	}
}
