package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/trip"
)

func newListCommand(ctx context.Context, planner *trip.Planner) *cobra.Command {
	var (
		dateFlag string
		daysFlag int
		weekFlag bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List itineraries across a range of days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateFlag)
			if err != nil {
				return err
			}

			days := daysFlag
			if weekFlag {
				days = 7
			}
			if days <= 0 {
				days = 1
			}

			start := date.AddDate(0, 0, -(days - 1))
			plans, err := planner.Days(ctx, start, date)
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No itineraries between %s and %s\n",
					start.Format(itinerary.DateLayout), date.Format(itinerary.DateLayout))
				return nil
			}

			return printPlans(cmd, plans)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "End date in YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&daysFlag, "days", 0, "Number of days to include ending on target date")
	cmd.Flags().BoolVar(&weekFlag, "week", false, "Shortcut for --days=7")

	return cmd
}

func newDiscoverCommand(planner *trip.Planner) *cobra.Command {
	var (
		categoryFlag string
		allFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Browse the activity catalog.",
		Long:  "discover lists cultural experiences and hidden gems by default. Use --category or --all to see other pools.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := []itinerary.Category{itinerary.CategoryCulture, itinerary.CategoryHidden}
			switch {
			case allFlag:
				categories = itinerary.Categories
			case categoryFlag != "":
				category := itinerary.Category(categoryFlag)
				if !category.Valid() {
					return fmt.Errorf("%w %q (expected one of %v)", itinerary.ErrUnknownCategory, categoryFlag, itinerary.Categories)
				}
				categories = []itinerary.Category{category}
			}

			out := cmd.OutOrStdout()
			catalog := planner.Catalog()
			for i, category := range categories {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, category.Label())
				pool := catalog.Activities(category)
				if len(pool) == 0 {
					fmt.Fprintln(out, "(nothing listed)")
					continue
				}
				for _, activity := range pool {
					fmt.Fprintf(out, "- %s (%s) %s, %s\n", activity.Place, activity.Kind, activity.Time, activity.Location)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Only list one category (study, food, culture, hidden)")
	cmd.Flags().BoolVar(&allFlag, "all", false, "List every category")

	return cmd
}
