package itinerary

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Target asks the generator for Count activities from Category.
type Target struct {
	Category Category `yaml:"category"`
	Count    int      `yaml:"count"`
}

// DefaultTargets is the balanced day: two study blocks, then one each of food, culture, and a hidden gem.
var DefaultTargets = []Target{
	{Category: CategoryStudy, Count: 2},
	{Category: CategoryFood, Count: 1},
	{Category: CategoryCulture, Count: 1},
	{Category: CategoryHidden, Count: 1},
}

// ValidateTargets rejects unknown categories and negative counts.
func ValidateTargets(targets []Target) error {
	for _, target := range targets {
		if !target.Category.Valid() {
			return fmt.Errorf("%w %q", ErrUnknownCategory, target.Category)
		}
		if target.Count < 0 {
			return fmt.Errorf("target %s: count must not be negative", target.Category)
		}
	}
	return nil
}

// Shortfall records a category that ended with fewer activities than requested.
type Shortfall struct {
	Category Category
	Want     int
	Got      int
}

// Plan is the generator's output: accepted activities sorted by start time.
type Plan struct {
	Activities []Activity
	Shortfalls []Shortfall
}

// Complete reports whether every target was met.
func (p Plan) Complete() bool {
	return len(p.Shortfalls) == 0
}

// Generator greedily packs non-overlapping activities from a catalog.
type Generator struct {
	catalog Catalog
	targets []Target
	rng     *rand.Rand
}

// NewGenerator wires a generator. A nil rng falls back to a randomly seeded source.
func NewGenerator(catalog Catalog, targets []Target, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if targets == nil {
		targets = DefaultTargets
	}
	return &Generator{catalog: catalog, targets: targets, rng: rng}
}

// Generate walks the targets in order. For each one it shuffles a copy of the
// category pool and accepts activities that do not overlap anything accepted
// so far, until the count is met or the pool runs out. There is no
// backtracking, so a poor early draw can leave a category short.
func (g *Generator) Generate() Plan {
	var (
		plan     Plan
		accepted []Span
		placed   []placement
	)

	for _, target := range g.targets {
		pool := slices.Clone(g.catalog.Activities(target.Category))
		g.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		added := 0
		for _, activity := range pool {
			if added >= target.Count {
				break
			}
			span, err := activity.Span()
			if err != nil {
				continue
			}
			if Overlaps(accepted, span) {
				continue
			}
			activity.Category = target.Category
			placed = append(placed, placement{activity: activity, span: span})
			accepted = append(accepted, span)
			added++
		}

		if added < target.Count {
			plan.Shortfalls = append(plan.Shortfalls, Shortfall{
				Category: target.Category,
				Want:     target.Count,
				Got:      added,
			})
		}
	}

	slices.SortStableFunc(placed, func(a, b placement) int {
		return cmp.Compare(a.span.Start, b.span.Start)
	})
	plan.Activities = make([]Activity, 0, len(placed))
	for _, p := range placed {
		plan.Activities = append(plan.Activities, p.activity)
	}

	return plan
}

type placement struct {
	activity Activity
	span     Span
}
