package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage workshop days",
	}

	cmd.AddCommand(
		newDayAddCmd(app),
		newDayListCmd(app),
		newDayUpdateCmd(app),
		newDayRemoveCmd(app),
	)

	return cmd
}

func newDayAddCmd(app *App) *cobra.Command {
	var label, date, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workshop day",
		RunE: func(cmd *cobra.Command, args []string) error {
			startMin, err := timeutil.ParseClock(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			return withProject(app, func(s *store.Store) error {
				d, err := s.AddDay(label, date, startMin)
				if err != nil {
					return err
				}
				fmt.Printf("Added %s starting at %s\n", d.Label, d.StartTime.Clock())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Day label (defaults to \"Day N\")")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date, e.g. 2026-09-01")
	cmd.Flags().StringVar(&start, "start", "09:00", "First session start time (HH:MM)")

	return cmd
}

func newDayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workshop days",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := openProject(app)
			if err != nil {
				return err
			}
			if len(p.Days) == 0 {
				fmt.Println("No days found.")
				return nil
			}

			headers := []string{"ID", "LABEL", "DATE", "STARTS", "SESSIONS"}
			rows := make([][]string, 0, len(p.Days))
			for _, d := range p.Days {
				rows = append(rows, []string{
					fmt.Sprintf("%d", d.ID),
					formatter.Bold(d.Label),
					d.Date,
					d.StartTime.Clock(),
					fmt.Sprintf("%d", len(p.SessionsForDay(d.ID))),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newDayUpdateCmd(app *App) *cobra.Command {
	var label, date, start string

	cmd := &cobra.Command{
		Use:   "update REF",
		Short: "Update a day's label, date, or start time",
		Long: "Update a day's label, date, or start time. Moving the start time\n" +
			"reshifts every session of the day.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				d, err := resolveDay(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				updated := *d
				if cmd.Flags().Changed("label") {
					updated.Label = label
				}
				if cmd.Flags().Changed("date") {
					updated.Date = date
				}
				if cmd.Flags().Changed("start") {
					startMin, err := timeutil.ParseClock(start)
					if err != nil {
						return fmt.Errorf("--start: %w", err)
					}
					updated.StartTime = startMin
				}
				if err := s.UpdateDay(updated); err != nil {
					return err
				}
				fmt.Printf("Updated %s\n", updated.Label)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Day label")
	cmd.Flags().StringVar(&date, "date", "", "Calendar date")
	cmd.Flags().StringVar(&start, "start", "", "First session start time (HH:MM)")

	return cmd
}

func newDayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a day and its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProject(app, func(s *store.Store) error {
				d, err := resolveDay(s.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if err := s.RemoveDay(d.ID); err != nil {
					return err
				}
				fmt.Printf("Removed %s\n", d.Label)
				return nil
			})
		},
	}
}
