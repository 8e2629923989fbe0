package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/faizmokh/jalan/internal/itinerary"
)

func TestCountdownWithoutDeparture(t *testing.T) {
	out := executeCommand(t, newCountdownCommand(newTempPlanner(t)))
	assertContains(t, out, "No departure date set")
}

func TestDepartSetsDateAndCountdownReadsIt(t *testing.T) {
	planner := newTempPlanner(t)
	now := time.Now()
	departure := time.Date(now.Year(), now.Month(), now.Day()+10, 0, 0, 0, 0, time.Local)
	value := departure.Format(itinerary.DateLayout)

	out := executeCommand(t, newDepartCommand(planner), value)
	assertContains(t, out, fmt.Sprintf("Departure set to %s (10 days left)", value))

	out = executeCommand(t, newCountdownCommand(planner))
	assertContains(t, out, fmt.Sprintf("10 days left in the city (departing %s)", value))

	out = executeCommand(t, newDepartCommand(planner))
	assertContains(t, out, "10 days left")
}

func TestCountdownNeverNegative(t *testing.T) {
	planner := newTempPlanner(t)
	if _, err := planner.SetDeparture("2024-12-15"); err != nil {
		t.Fatalf("SetDeparture: %v", err)
	}
	out := executeCommand(t, newCountdownCommand(planner))
	assertContains(t, out, "0 days left in the city (departing 2024-12-15)")
}

func TestDepartRejectsMalformedDate(t *testing.T) {
	cmd := newDepartCommand(newTempPlanner(t))
	cmd.SetArgs([]string{"December 15"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestStatsCommandDefaultsToZero(t *testing.T) {
	out := executeCommand(t, newStatsCommand(newTempPlanner(t)))
	assertContains(t, out, "Study time: 0h  Places visited: 0  Productivity: 0%")
}

func TestDiscoverCommand(t *testing.T) {
	planner := newTempPlanner(t)

	out := executeCommand(t, newDiscoverCommand(planner))
	assertContains(t, out, "Cultural Experiences\n- MoMA Free Friday (Art) 5:30 PM - 9:00 PM, Midtown\n")
	assertContains(t, out, "Hidden Gems\n")
	assertNotContains(t, out, "Study Sessions")

	out = executeCommand(t, newDiscoverCommand(planner), "--category", "food")
	assertContains(t, out, "- Joe's Pizza Slice (Quick Bite) 12:30 PM, Greenwich Village")
	assertNotContains(t, out, "Hidden Gems")

	out = executeCommand(t, newDiscoverCommand(planner), "--all")
	if got := strings.Count(out, "\n- "); got != 17 {
		t.Fatalf("listed %d activities, want 17", got)
	}

	cmd := newDiscoverCommand(planner)
	cmd.SetArgs([]string{"--category", "nightlife"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand(context.Background(), newTempPlanner(t))
	for _, name := range []string{"today", "generate", "toggle", "list", "countdown", "depart", "stats", "discover", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("subcommand %q not registered: %v", name, err)
		}
	}
	if !strings.HasPrefix(root.Version, "dev") {
		t.Fatalf("version = %q", root.Version)
	}

	out := executeCommand(t, newVersionCommand())
	assertContains(t, out, "jalan dev (commit ")
}
