package cli

import (
	"fmt"

	"github.com/alexanderramin/rota/internal/cli/formatter"
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/grid"
	"github.com/alexanderramin/rota/internal/store"
	"github.com/alexanderramin/rota/internal/timeutil"
	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the shift grid",
	}

	cmd.AddCommand(
		newGridShowCmd(app),
		newGridWindowCmd(app),
	)

	return cmd
}

func newGridShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DAY]",
		Short: "Print a day's shift grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := openProject(app)
			if err != nil {
				return err
			}

			days := p.Days
			if len(args) == 1 {
				d, err := resolveDay(p, args[0])
				if err != nil {
					return err
				}
				days = []domain.DayConfig{*d}
			}
			if len(days) == 0 {
				fmt.Println("No days found.")
				return nil
			}

			for i, d := range days {
				g, err := grid.Materialize(p, d.ID)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Println()
				}
				fmt.Print(formatter.RenderDayGrid(p, g))
			}
			return nil
		},
	}
}

func newGridWindowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "window START END",
		Short: "Set the grid display window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := timeutil.ParseClock(args[0])
			if err != nil {
				return err
			}
			end, err := timeutil.ParseClock(args[1])
			if err != nil {
				return err
			}
			return withProject(app, func(s *store.Store) error {
				if err := s.SetGridWindow(start, end); err != nil {
					return err
				}
				fmt.Printf("Grid window set to %s-%s\n", start.Clock(), end.Clock())
				return nil
			})
		},
	}
}
