package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/trip"
)

func newGenerateCommand(ctx context.Context, planner *trip.Planner) *cobra.Command {
	var (
		dateFlag string
		seedFlag uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Plan a new balanced day.",
		Long: "generate draws study, food, culture, and hidden-gem activities without overlaps and " +
			"stores them as the day's itinerary, replacing any previous plan and its completion marks.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			p := planner
			if cmd.Flags().Changed("seed") {
				p = planner.WithSeed(seedFlag)
			}

			generated, err := p.Generate(ctx, date)
			if err != nil {
				return err
			}

			if err := printPlan(cmd, generated.Plan); err != nil {
				return err
			}
			if len(generated.Shortfalls) > 0 && len(generated.Plan.Items) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Short on %s. %s\n", formatShortfalls(generated.Shortfalls), tryAgainHint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().Uint64Var(&seedFlag, "seed", 0, "Seed for a reproducible draw")

	return cmd
}

func newToggleCommand(ctx context.Context, planner *trip.Planner) *cobra.Command {
	var (
		dateFlag string
		planFlag string
	)

	cmd := &cobra.Command{
		Use:   "toggle <index>",
		Short: "Mark an activity done (or not done) by index.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index <= 0 {
				return fmt.Errorf("index must be a positive integer")
			}

			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			toggled, err := planner.Toggle(ctx, date, planFlag, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Toggled activity %d: %s\n", index, formatItem(toggled.Item))
			fmt.Fprintln(out, formatStats(toggled.Stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&planFlag, "plan", "", "Only toggle if the day's itinerary still has this id")

	return cmd
}
