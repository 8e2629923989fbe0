package itinerary

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for departure dates and day headings.
const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD date at local midnight.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// DaysUntil counts calendar days from now to departure. Both are truncated to
// midnight first; the result is the ceiling of the difference, never negative.
func DaysUntil(now, departure time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(departure.Year(), departure.Month(), departure.Day(), 0, 0, 0, 0, time.UTC)

	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
