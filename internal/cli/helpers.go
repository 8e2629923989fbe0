package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/planbook"
)

const tryAgainHint = "Couldn't generate a full, non-overlapping schedule. Run `jalan generate` to try again."

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		now := time.Now().In(time.Local)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return itinerary.ParseDate(dateFlag)
}

func formatItem(item planbook.Item) string {
	status := "todo"
	if item.Done {
		status = "done"
	}
	a := item.Activity

	builder := strings.Builder{}
	builder.Grow(32 + len(a.Time) + len(a.Place) + len(a.Location) + len(a.Kind))

	builder.WriteString("[")
	builder.WriteString(status)
	builder.WriteString("] ")
	builder.WriteString(a.Time)
	builder.WriteString(" ")
	builder.WriteString(a.Place)

	if a.Location != "" {
		builder.WriteString(" @ ")
		builder.WriteString(a.Location)
	}

	var details []string
	if a.Kind != "" {
		details = append(details, a.Kind)
	}
	if a.Category != "" {
		details = append(details, "#"+string(a.Category))
	}
	if len(details) > 0 {
		builder.WriteString(" (")
		builder.WriteString(strings.Join(details, ", "))
		builder.WriteString(")")
	}

	return builder.String()
}

func formatStats(stats itinerary.Stats) string {
	return fmt.Sprintf("Study time: %dh  Places visited: %d  Productivity: %d%%",
		stats.StudyHours, stats.PlacesVisited, stats.Productivity)
}

func formatShortfalls(shortfalls []itinerary.Shortfall) string {
	parts := make([]string, 0, len(shortfalls))
	for _, s := range shortfalls {
		parts = append(parts, fmt.Sprintf("%s %d/%d", s.Category, s.Got, s.Want))
	}
	return strings.Join(parts, ", ")
}

func printMissingPlan(cmd *cobra.Command, date time.Time) {
	fmt.Fprintf(cmd.OutOrStdout(), "No itinerary for %s. Run `jalan generate --date %s` to plan one.\n",
		date.Format(itinerary.DateLayout), date.Format(itinerary.DateLayout))
}

func printPlan(cmd *cobra.Command, plan planbook.DayPlan) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d/%d done)\n", plan.Date.Format(itinerary.DateLayout), plan.Completed(), len(plan.Items))
	if len(plan.Items) == 0 {
		fmt.Fprintln(out, tryAgainHint)
		return nil
	}

	for i, item := range plan.Items {
		fmt.Fprintf(out, "%d. %s\n", i+1, formatItem(item))
	}
	return nil
}

func printPlans(cmd *cobra.Command, plans []planbook.DayPlan) error {
	for i, plan := range plans {
		if err := printPlan(cmd, plan); err != nil {
			return err
		}
		if i < len(plans)-1 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
	return nil
}
