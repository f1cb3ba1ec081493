package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Manage session assignments",
	}

	cmd.AddCommand(
		newAssignSetCmd(app),
		newAssignClearCmd(app),
	)

	return cmd
}

func newAssignSetCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "set SESSION STAFF ROLE",
		Short: "Assign a staff member to a session with a default role",
		Long: "Assign a staff member to a session with a default role. Setting\n" +
			"an existing assignment changes its role and keeps its overrides.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				p := s.Snapshot()
				sess, err := resolveSession(p, args[0])
				if err != nil {
					return err
				}
				m, err := resolveStaff(p, args[1])
				if err != nil {
					return err
				}
				r, err := resolveRole(p, args[2])
				if err != nil {
					return err
				}
				if err := s.SetAssignment(sess.ID, m.ID, r.ID, note); err != nil {
					return err
				}
				fmt.Printf("Assigned %s to %s as %s\n", m.Name, sess.Title, r.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Free-form note shown on the grid")

	return cmd
}

func newAssignClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear SESSION STAFF",
		Short: "Remove a staff member's assignment from a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				p := s.Snapshot()
				sess, err := resolveSession(p, args[0])
				if err != nil {
					return err
				}
				m, err := resolveStaff(p, args[1])
				if err != nil {
					return err
				}
				if err := s.ClearAssignment(sess.ID, m.ID); err != nil {
					return err
				}
				fmt.Printf("Cleared %s from %s\n", m.Name, sess.Title)
				return nil
			})
		},
	}
}
