package planbook

import (
	"time"

	"github.com/faizmokh/jalan/internal/itinerary"
)

// Item is an activity placed on a day's itinerary.
type Item struct {
	Activity itinerary.Activity
	Done     bool
}

// DayPlan groups the items beneath the same YYYY-MM-DD heading.
type DayPlan struct {
	Date  time.Time
	ID    string
	Items []Item
}

// Completed counts items marked done.
func (p DayPlan) Completed() int {
	count := 0
	for _, item := range p.Items {
		if item.Done {
			count++
		}
	}
	return count
}

// NewDayPlan wraps generated activities as open items.
func NewDayPlan(date time.Time, id string, activities []itinerary.Activity) DayPlan {
	items := make([]Item, 0, len(activities))
	for _, activity := range activities {
		items = append(items, Item{Activity: activity})
	}
	return DayPlan{Date: date, ID: id, Items: items}
}
