package planbook

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/faizmokh/jalan/internal/files"
)

// Reader loads day plans from the monthly Markdown files.
type Reader struct {
	manager *files.Manager
}

// NewReader wires a reader using the shared files.Manager.
func NewReader(manager *files.Manager) *Reader {
	return &Reader{manager: manager}
}

// Plan returns the itinerary stored for the provided date.
func (r *Reader) Plan(ctx context.Context, date time.Time) (DayPlan, error) {
	if r == nil || r.manager == nil {
		return DayPlan{}, errors.New("reader not initialized with file manager")
	}

	path, err := r.manager.EnsureMonthFile(date)
	if err != nil {
		return DayPlan{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return DayPlan{}, err
	}
	defer file.Close()

	parser := NewParser(file)
	for {
		plan, err := parser.NextPlan()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return DayPlan{}, ErrPlanNotFound
			}
			return DayPlan{}, err
		}
		if plan != nil && sameDay(plan.Date, date) {
			return *plan, nil
		}
	}
}

// PlansBetween returns every stored itinerary between start and end
// (inclusive). Days without one are skipped.
func (r *Reader) PlansBetween(ctx context.Context, start, end time.Time) ([]DayPlan, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}
	if end.Before(start) {
		return nil, nil
	}

	var plans []DayPlan
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, err := r.Plan(ctx, current)
		if err != nil {
			if errors.Is(err, ErrPlanNotFound) {
				continue
			}
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
