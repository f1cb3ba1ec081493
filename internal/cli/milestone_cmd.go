package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage session milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var offset int
	var label string

	cmd := &cobra.Command{
		Use:   "add SESSION",
		Short: "Mark a point inside a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				sess, err := resolveSession(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				m, err := s.AddMilestone(sess.ID, offset, label)
				if err != nil {
					return err
				}
				fmt.Printf("Added milestone %s at +%dm of %s\n", m.Label, m.OffsetMin, sess.Title)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Minutes from the session start")
	cmd.Flags().StringVar(&label, "label", "", "Milestone label")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SESSION MILESTONE_ID",
		Short: "Remove a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				sess, err := resolveSession(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RemoveMilestone(sess.ID, args[1]); err != nil {
					return err
				}
				fmt.Printf("Removed milestone %s\n", args[1])
				return nil
			})
		},
	}
}
