package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/trip"
)

func newTodayCommand(ctx context.Context, planner *trip.Planner) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the itinerary for today or a specific date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDate, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			plan, err := planner.Day(ctx, targetDate)
			if err != nil {
				if trip.IsNotFound(err) {
					printMissingPlan(cmd, targetDate)
					return nil
				}
				return err
			}

			return printPlan(cmd, plan)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}
