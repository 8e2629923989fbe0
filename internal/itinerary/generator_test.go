package itinerary

import (
	"math/rand/v2"
	"testing"
)

func TestGenerateIsNonOverlappingAndSorted(t *testing.T) {
	catalog := DefaultCatalog()
	for seed := uint64(0); seed < 200; seed++ {
		gen := NewGenerator(catalog, DefaultTargets, rand.New(rand.NewPCG(seed, seed)))
		plan := gen.Generate()

		var accepted []Span
		prev := -1
		for _, activity := range plan.Activities {
			span := mustSpan(t, activity.Time)
			if Overlaps(accepted, span) {
				t.Fatalf("seed %d: %q overlaps an earlier activity", seed, activity.Place)
			}
			if span.Start < prev {
				t.Fatalf("seed %d: activities not sorted by start time", seed)
			}
			prev = span.Start
			accepted = append(accepted, span)
		}
	}
}

func TestGenerateRespectsTargets(t *testing.T) {
	catalog := DefaultCatalog()
	for seed := uint64(0); seed < 100; seed++ {
		plan := NewGenerator(catalog, DefaultTargets, rand.New(rand.NewPCG(seed, 7))).Generate()

		counts := map[Category]int{}
		for _, activity := range plan.Activities {
			counts[activity.Category]++
		}
		for _, target := range DefaultTargets {
			if counts[target.Category] > target.Count {
				t.Fatalf("seed %d: %s has %d activities, want at most %d", seed, target.Category, counts[target.Category], target.Count)
			}
		}
		// Every study block has a compatible partner and breakfast is always free.
		if counts[CategoryStudy] != 2 || counts[CategoryFood] != 1 {
			t.Fatalf("seed %d: counts = %v", seed, counts)
		}

		short := map[Category]bool{}
		for _, s := range plan.Shortfalls {
			short[s.Category] = true
			if s.Got != counts[s.Category] || s.Want <= s.Got {
				t.Fatalf("seed %d: inconsistent shortfall %+v (have %d)", seed, s, counts[s.Category])
			}
		}
		for _, target := range DefaultTargets {
			if counts[target.Category] < target.Count && !short[target.Category] {
				t.Fatalf("seed %d: %s under-filled without a shortfall", seed, target.Category)
			}
		}
		if plan.Complete() != (len(plan.Activities) == 5) {
			t.Fatalf("seed %d: Complete() = %v with %d activities", seed, plan.Complete(), len(plan.Activities))
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	catalog := DefaultCatalog()
	first := NewGenerator(catalog, nil, rand.New(rand.NewPCG(42, 42))).Generate()
	second := NewGenerator(catalog, nil, rand.New(rand.NewPCG(42, 42))).Generate()

	if len(first.Activities) != len(second.Activities) {
		t.Fatalf("lengths differ: %d vs %d", len(first.Activities), len(second.Activities))
	}
	for i := range first.Activities {
		if first.Activities[i] != second.Activities[i] {
			t.Fatalf("activity %d differs: %+v vs %+v", i, first.Activities[i], second.Activities[i])
		}
	}
}

func TestGenerateLeavesCategoryShortWithoutBacktracking(t *testing.T) {
	catalog := Catalog{
		CategoryStudy: {
			{Place: "Library", Time: "9:00 AM - 5:00 PM", Kind: "Deep Work"},
		},
		CategoryFood: {
			{Place: "Lunch", Time: "12:30 PM", Kind: "Lunch"},
			{Place: "Snack", Time: "3:00 PM", Kind: "Quick Bite"},
		},
	}
	targets := []Target{{Category: CategoryStudy, Count: 2}, {Category: CategoryFood, Count: 1}}

	plan := NewGenerator(catalog, targets, rand.New(rand.NewPCG(1, 2))).Generate()

	if len(plan.Activities) != 1 || plan.Activities[0].Place != "Library" {
		t.Fatalf("activities = %+v, want only Library", plan.Activities)
	}
	if len(plan.Shortfalls) != 2 {
		t.Fatalf("shortfalls = %+v, want study and food", plan.Shortfalls)
	}
	if plan.Shortfalls[0] != (Shortfall{Category: CategoryStudy, Want: 2, Got: 1}) {
		t.Fatalf("study shortfall = %+v", plan.Shortfalls[0])
	}
	if plan.Shortfalls[1] != (Shortfall{Category: CategoryFood, Want: 1, Got: 0}) {
		t.Fatalf("food shortfall = %+v", plan.Shortfalls[1])
	}
}

func TestGenerateSkipsUnparsableTimes(t *testing.T) {
	catalog := Catalog{
		CategoryHidden: {
			{Place: "Broken", Time: "whenever"},
		},
	}
	plan := NewGenerator(catalog, []Target{{Category: CategoryHidden, Count: 1}}, rand.New(rand.NewPCG(3, 3))).Generate()
	if len(plan.Activities) != 0 {
		t.Fatalf("activities = %+v, want none", plan.Activities)
	}
	if plan.Complete() {
		t.Fatalf("plan should report a shortfall")
	}
}

func TestGenerateDoesNotMutateCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	before := append([]Activity(nil), catalog[CategoryCulture]...)

	NewGenerator(catalog, DefaultTargets, rand.New(rand.NewPCG(9, 9))).Generate()

	for i, activity := range catalog[CategoryCulture] {
		if activity != before[i] {
			t.Fatalf("catalog reordered at %d: %q vs %q", i, activity.Place, before[i].Place)
		}
	}
}

func TestValidateTargets(t *testing.T) {
	if err := ValidateTargets(DefaultTargets); err != nil {
		t.Fatalf("ValidateTargets(default): %v", err)
	}
	if err := ValidateTargets([]Target{{Category: "nightlife", Count: 1}}); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if err := ValidateTargets([]Target{{Category: CategoryFood, Count: -1}}); err == nil {
		t.Fatalf("expected error for negative count")
	}
}
