package planbook

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestReaderPlanMissing(t *testing.T) {
	mgr := newTestManager(t)
	reader := NewReader(mgr)

	_, err := reader.Plan(context.Background(), time.Date(2025, time.November, 6, 0, 0, 0, 0, time.Local))
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestReaderPlansBetweenSkipsMissingDays(t *testing.T) {
	mgr := newTestManager(t)
	writer := NewWriter(mgr)
	ctx := context.Background()

	oct31 := time.Date(2025, time.October, 31, 0, 0, 0, 0, time.Local)
	nov2 := time.Date(2025, time.November, 2, 0, 0, 0, 0, time.Local)
	for _, date := range []time.Time{oct31, nov2} {
		if err := writer.Replace(ctx, date, NewDayPlan(date, date.Format("0102"), sampleActivities())); err != nil {
			t.Fatalf("Replace %s: %v", date.Format("2006-01-02"), err)
		}
	}

	plans, err := NewReader(mgr).PlansBetween(ctx, oct31, nov2)
	if err != nil {
		t.Fatalf("PlansBetween: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if plans[0].ID != "1031" || plans[1].ID != "1102" {
		t.Fatalf("plan ids = %q, %q", plans[0].ID, plans[1].ID)
	}

	none, err := NewReader(mgr).PlansBetween(ctx, nov2, oct31)
	if err != nil || none != nil {
		t.Fatalf("reversed range = %v, %v", none, err)
	}
}

func TestReaderPlansBetweenHonorsCancellation(t *testing.T) {
	mgr := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local)
	if _, err := NewReader(mgr).PlansBetween(ctx, start, start.AddDate(0, 0, 3)); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
