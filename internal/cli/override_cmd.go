package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/store"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/spf13/cobra"
)

func newOverrideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage role overrides",
	}

	cmd.AddCommand(
		newOverrideAddCmd(app),
		newOverrideRemoveCmd(app),
		newOverrideGlobalCmd(app),
	)

	return cmd
}

func newOverrideAddCmd(app *App) *cobra.Command {
	var from, to int
	var roleRef, note string

	cmd := &cobra.Command{
		Use:   "add SESSION STAFF",
		Short: "Override part of an assignment with a different role",
		Long: "Override part of an assignment with a different role. Offsets are\n" +
			"minutes from the session start, end exclusive.",
		Args: cobra.ExactArgs(2),
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
				roleID := ""
				if roleRef != "" {
					r, err := resolveRole(p, roleRef)
					if err != nil {
						return err
					}
					roleID = r.ID
				}
				ov, err := s.AddOverride(sess.ID, m.ID, from, to, roleID, note)
				if err != nil {
					return err
				}
				fmt.Printf("Added override %s (+%dm to +%dm)\n", ov.ID, from, to)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Start offset in minutes from the session start")
	cmd.Flags().IntVar(&to, "to", 0, "End offset in minutes, exclusive")
	cmd.Flags().StringVar(&roleRef, "role", "", "Role for the overridden interval")
	cmd.Flags().StringVar(&note, "note", "", "Note shown on the grid")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newOverrideRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SESSION STAFF OVERRIDE_ID",
		Short: "Remove an assignment override",
		Args:  cobra.ExactArgs(3),
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
				if err := s.RemoveOverride(sess.ID, m.ID, args[2]); err != nil {
					return err
				}
				fmt.Printf("Removed override %s\n", args[2])
				return nil
			})
		},
	}
}

func newOverrideGlobalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Manage day-wide staff overrides",
		Long: "Day-wide staff overrides pin a member to a role for an absolute\n" +
			"time interval. They beat every session assignment they overlap.",
	}

	cmd.AddCommand(
		newOverrideGlobalAddCmd(app),
		newOverrideGlobalRemoveCmd(app),
	)

	return cmd
}

func newOverrideGlobalAddCmd(app *App) *cobra.Command {
	var from, to, roleRef, note string

	cmd := &cobra.Command{
		Use:   "add STAFF DAY",
		Short: "Pin a staff member to a role for an absolute interval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := timeutil.ParseClock(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := timeutil.ParseClock(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			return withProject(app, func(s *store.Store) error {
				p := s.Snapshot()
				m, err := resolveStaff(p, args[0])
				if err != nil {
					return err
				}
				d, err := resolveDay(p, args[1])
				if err != nil {
					return err
				}
				roleID := ""
				if roleRef != "" {
					r, err := resolveRole(p, roleRef)
					if err != nil {
						return err
					}
					roleID = r.ID
				}
				so, err := s.AddStaffOverride(m.ID, d.ID, start, end, roleID, note)
				if err != nil {
					return err
				}
				fmt.Printf("Added staff override %s (%s %s-%s)\n",
					so.ID, d.Label, start.Clock(), end.Clock())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Interval start (HH:MM)")
	cmd.Flags().StringVar(&to, "to", "", "Interval end (HH:MM), exclusive")
	cmd.Flags().StringVar(&roleRef, "role", "", "Role for the interval")
	cmd.Flags().StringVar(&note, "note", "", "Note shown on the grid")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newOverrideGlobalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove OVERRIDE_ID",
		Short: "Remove a day-wide staff override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				if err := s.RemoveStaffOverride(args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed staff override %s\n", args[0])
				return nil
			})
		},
	}
}
