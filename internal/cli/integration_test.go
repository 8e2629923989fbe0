package cli

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/config"
	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/planbook"
	"github.com/faizmokh/jalan/internal/trip"
)

func TestCLIWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	planner := newTempPlanner(t)

	date := "2025-11-21"

	// 1. Nothing planned yet.
	todayOut := executeCommand(t, newTodayCommand(ctx, planner), "--date", date)
	assertContains(t, todayOut, "No itinerary for 2025-11-21")

	// 2. Plan the day.
	generateOut := executeCommand(t, newGenerateCommand(ctx, planner), "--date", date, "--seed", "7")
	assertContains(t, generateOut, "2025-11-21 (0/")
	assertContains(t, generateOut, "1. [todo]")

	// 3. The stored day matches what generate printed.
	todayOut = executeCommand(t, newTodayCommand(ctx, planner), "--date", date)
	if todayOut != firstLines(generateOut, strings.Count(todayOut, "\n")) {
		t.Fatalf("today output %q does not match generate output %q", todayOut, generateOut)
	}

	// 4. Tick off the first activity.
	toggleOut := executeCommand(t, newToggleCommand(ctx, planner), "--date", date, "1")
	assertContains(t, toggleOut, "Toggled activity 1: [done]")
	assertContains(t, toggleOut, "Places visited: 1")

	// 5. Stats persisted.
	statsOut := executeCommand(t, newStatsCommand(planner))
	assertContains(t, statsOut, "Places visited: 1  Productivity: 15%")

	// 6. List shows the completed activity.
	listOut := executeCommand(t, newListCommand(ctx, planner), "--date", date, "--week")
	assertContains(t, listOut, "2025-11-21 (1/")
	assertContains(t, listOut, "1. [done]")

	// 7. Regenerating clears completion marks but keeps stats.
	executeCommand(t, newGenerateCommand(ctx, planner), "--date", date, "--seed", "8")
	day, err := planner.Day(ctx, mustParseDate(t, date))
	if err != nil {
		t.Fatalf("planner.Day: %v", err)
	}
	if day.Completed() != 0 {
		t.Fatalf("completed after regenerate = %d, want 0", day.Completed())
	}
	statsOut = executeCommand(t, newStatsCommand(planner))
	assertContains(t, statsOut, "Places visited: 1")
}

func TestGenerateCommandReportsShortfall(t *testing.T) {
	ctx := context.Background()
	mgr := newTempManager(t)
	catalog := itinerary.Catalog{
		itinerary.CategoryStudy: {
			{Place: "All-day Library", Time: "9:00 AM - 9:00 PM", Kind: "Deep Work", Location: "Midtown", Category: itinerary.CategoryStudy},
		},
		itinerary.CategoryFood: {
			{Place: "Lunch Cart", Time: "12:30 PM", Kind: "Lunch", Location: "Midtown", Category: itinerary.CategoryFood},
		},
	}
	planner := trip.NewPlanner(mgr, config.Default(), catalog, rand.New(rand.NewPCG(1, 1)))

	out := executeCommand(t, newGenerateCommand(ctx, planner), "--date", "2025-11-22")
	assertContains(t, out, "1. [todo] 9:00 AM - 9:00 PM All-day Library @ Midtown (Deep Work, #study)")
	assertContains(t, out, "Short on study 1/2, food 0/1, culture 0/1, hidden 0/1.")
	assertContains(t, out, "try again")
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, buf.String())
	}
	return buf.String()
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}

func firstLines(output string, n int) string {
	lines := strings.SplitAfter(output, "\n")
	if n > len(lines) {
		n = len(lines)
	}
	return strings.Join(lines[:n], "")
}

func newTempManager(t *testing.T) *files.Manager {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func newTempPlanner(t *testing.T) *trip.Planner {
	t.Helper()
	return trip.NewPlanner(newTempManager(t), config.Default(), itinerary.DefaultCatalog(), rand.New(rand.NewPCG(5, 5)))
}

func writeFixedPlan(t *testing.T, planner *trip.Planner, date time.Time, id string, activities ...itinerary.Activity) {
	t.Helper()
	plan := planbook.NewDayPlan(date, id, activities)
	if err := planbook.NewWriter(planner.Manager()).Replace(context.Background(), date, plan); err != nil {
		t.Fatalf("Replace: %v", err)
	}
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("time.ParseInLocation: %v", err)
	}
	return d
}
