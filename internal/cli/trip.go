package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/state"
	"github.com/faizmokh/jalan/internal/trip"
)

func newCountdownCommand(planner *trip.Planner) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Show how many days are left before departure.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCountdown(cmd, planner, time.Now())
		},
	}
}

func newDepartCommand(planner *trip.Planner) *cobra.Command {
	return &cobra.Command{
		Use:   "depart [YYYY-MM-DD]",
		Short: "Show or set the departure date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printCountdown(cmd, planner, time.Now())
			}

			departure, err := planner.SetDeparture(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Departure set to %s (%s left)\n",
				departure.Format(itinerary.DateLayout), pluralDays(itinerary.DaysUntil(time.Now(), departure)))
			return nil
		},
	}
}

func newStatsCommand(planner *trip.Planner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show study time, places visited, and productivity.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := planner.State()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatStats(st.Stats))
			return nil
		},
	}
}

func printCountdown(cmd *cobra.Command, planner *trip.Planner, now time.Time) error {
	days, departure, err := planner.Countdown(now)
	if err != nil {
		if errors.Is(err, state.ErrNoDeparture) {
			fmt.Fprintln(cmd.OutOrStdout(), "No departure date set. Run `jalan depart YYYY-MM-DD`.")
			return nil
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s left in the city (departing %s)\n",
		pluralDays(days), departure.Format(itinerary.DateLayout))
	return nil
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
