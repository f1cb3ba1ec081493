package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
		newSessionUpdateCmd(app),
		newSessionRemoveCmd(app),
		newSessionMoveCmd(app, "move-up", "Move a session earlier within its day", (*store.Store).MoveSessionUp),
		newSessionMoveCmd(app, "move-down", "Move a session later within its day", (*store.Store).MoveSessionDown),
	)

	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "add DAY TITLE",
		Short: "Append a session to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				d, err := resolveDay(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				sess, err := s.AddSession(d.ID, args[1], minutes)
				if err != nil {
					return err
				}
				fmt.Printf("Added session %s (%s, %s)\n",
					sess.Title, sess.StartMin.Clock(), formatter.FormatMinutes(sess.DurationMin))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes (default 30)")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var dayRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions in day order",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := openProject(app)
			if err != nil {
				return err
			}

			days := p.Days
			if dayRef != "" {
				d, err := resolveDay(p, dayRef)
				if err != nil {
					return err
				}
				days = []domain.DayConfig{*d}
			}

			headers := []string{"DAY", "TIME", "TITLE", "LENGTH", "ID"}
			var rows [][]string
			for _, d := range days {
				for _, sess := range p.SessionsForDay(d.ID) {
					rows = append(rows, []string{
						d.Label,
						fmt.Sprintf("%s-%s", sess.StartMin.Clock(), sess.EndMin.Clock()),
						formatter.Bold(sess.Title),
						formatter.FormatMinutes(sess.DurationMin),
						formatter.TruncID(sess.ID),
					})
				}
			}
			if len(rows) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&dayRef, "day", "", "Limit to one day")

	return cmd
}

func newSessionUpdateCmd(app *App) *cobra.Command {
	var title string
	var minutes int

	cmd := &cobra.Command{
		Use:   "update REF",
		Short: "Change a session's title or duration",
		Long: "Change a session's title or duration. Changing the duration\n" +
			"reshifts every later session of the same day.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				sess, err := resolveSession(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				var titleP *string
				var minutesP *int
				if cmd.Flags().Changed("title") {
					titleP = &title
				}
				if cmd.Flags().Changed("minutes") {
					minutesP = &minutes
				}
				if err := s.UpdateSession(sess.ID, titleP, minutesP); err != nil {
					return err
				}
				updated := s.Snapshot().Session(sess.ID)
				fmt.Printf("Updated session %s (%s-%s)\n",
					updated.Title, updated.StartMin.Clock(), updated.EndMin.Clock())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "New duration in minutes")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a session and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				sess, err := resolveSession(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RemoveSession(sess.ID); err != nil {
					return err
				}
				fmt.Printf("Removed session %s\n", sess.Title)
				return nil
			})
		},
	}
}

func newSessionMoveCmd(app *App, use, short string, move func(*store.Store, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " REF",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				sess, err := resolveSession(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := move(s, sess.ID); err != nil {
					return err
				}
				moved := s.Snapshot().Session(sess.ID)
				fmt.Printf("Session %s now runs %s-%s\n",
					moved.Title, moved.StartMin.Clock(), moved.EndMin.Clock())
				return nil
			})
		},
	}
}
