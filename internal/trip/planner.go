package trip

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/faizmokh/jalan/internal/config"
	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/itinerary"
	"github.com/faizmokh/jalan/internal/planbook"
	"github.com/faizmokh/jalan/internal/state"
)

// Planner is the entry point shared by the CLI and the TUI.
type Planner struct {
	manager *files.Manager
	reader  *planbook.Reader
	writer  *planbook.Writer
	store   *state.Store
	cfg     config.Config
	catalog itinerary.Catalog
	rng     *rand.Rand
}

// Generated is a freshly stored itinerary plus the categories it could not fill.
type Generated struct {
	Plan       planbook.DayPlan
	Shortfalls []itinerary.Shortfall
}

// Toggled reports the flipped item and the stats after applying its deltas.
type Toggled struct {
	Item  planbook.Item
	Stats itinerary.Stats
}

// NewPlanner wires the storage layers around manager. A nil rng is seeded randomly.
func NewPlanner(manager *files.Manager, cfg config.Config, catalog itinerary.Catalog, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Planner{
		manager: manager,
		reader:  planbook.NewReader(manager),
		writer:  planbook.NewWriter(manager),
		store:   state.NewStore(manager),
		cfg:     cfg,
		catalog: catalog,
		rng:     rng,
	}
}

// Open loads config.yaml and the configured catalog from the manager's base path.
func Open(manager *files.Manager) (*Planner, error) {
	cfg, err := config.Load(manager.ConfigPath())
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return NewPlanner(manager, cfg, catalog, nil), nil
}

// WithSeed returns a copy of the planner whose generator is deterministic.
func (p *Planner) WithSeed(seed uint64) *Planner {
	clone := *p
	clone.rng = rand.New(rand.NewPCG(seed, seed))
	return &clone
}

// Manager exposes the file layout, e.g. for the debug log path.
func (p *Planner) Manager() *files.Manager {
	return p.manager
}

// Config returns the loaded settings.
func (p *Planner) Config() config.Config {
	return p.cfg
}

// Catalog returns the activity pools used for generation.
func (p *Planner) Catalog() itinerary.Catalog {
	return p.catalog
}

// Generate builds a new itinerary for date and stores it, replacing any
// previous one and its completion marks. Stats are left untouched.
func (p *Planner) Generate(ctx context.Context, date time.Time) (Generated, error) {
	result := itinerary.NewGenerator(p.catalog, p.cfg.Targets, p.rng).Generate()

	plan := planbook.NewDayPlan(date, uuid.NewString(), result.Activities)
	if err := p.writer.Replace(ctx, date, plan); err != nil {
		return Generated{}, err
	}
	return Generated{Plan: plan, Shortfalls: result.Shortfalls}, nil
}

// Day returns the stored itinerary for date, or planbook.ErrPlanNotFound.
func (p *Planner) Day(ctx context.Context, date time.Time) (planbook.DayPlan, error) {
	return p.reader.Plan(ctx, date)
}

// Days returns stored itineraries between start and end inclusive.
func (p *Planner) Days(ctx context.Context, start, end time.Time) ([]planbook.DayPlan, error) {
	return p.reader.PlansBetween(ctx, start, end)
}

// Toggle flips item index (1-based) on date's itinerary and applies the fixed
// stat deltas. planID may be empty to skip the staleness check. The item is
// flipped first; if the stats cannot be saved the flip is undone.
func (p *Planner) Toggle(ctx context.Context, date time.Time, planID string, index int) (Toggled, error) {
	item, err := p.writer.Toggle(ctx, date, planID, index)
	if err != nil {
		return Toggled{}, err
	}

	study := itinerary.IsStudy(item.Activity, p.cfg.StudyKinds)
	st, err := p.store.Update(func(s *state.State) error {
		if item.Done {
			s.Stats = s.Stats.Complete(study, p.cfg.Rewards)
		} else {
			s.Stats = s.Stats.Undo(study, p.cfg.Rewards)
		}
		return nil
	})
	if err != nil {
		if _, undoErr := p.writer.Toggle(ctx, date, planID, index); undoErr != nil {
			return Toggled{}, errors.Join(err, fmt.Errorf("undo toggle: %w", undoErr))
		}
		return Toggled{}, err
	}
	return Toggled{Item: item, Stats: st.Stats}, nil
}

// State returns the stored departure date and stats.
func (p *Planner) State() (state.State, error) {
	return p.store.Load()
}

// SetDeparture validates and stores a YYYY-MM-DD departure date.
func (p *Planner) SetDeparture(value string) (time.Time, error) {
	date, err := itinerary.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := p.store.Update(func(s *state.State) error {
		s.Departure = date.Format(itinerary.DateLayout)
		return nil
	}); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// Countdown reports days left until departure as seen from now.
func (p *Planner) Countdown(now time.Time) (int, time.Time, error) {
	st, err := p.store.Load()
	if err != nil {
		return 0, time.Time{}, err
	}
	departure, err := st.DepartureDate()
	if err != nil {
		return 0, time.Time{}, err
	}
	return itinerary.DaysUntil(now, departure), departure, nil
}

// IsNotFound reports whether err means the day has no itinerary yet.
func IsNotFound(err error) bool {
	return errors.Is(err, planbook.ErrPlanNotFound)
}
