package itinerary

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is used to wrap ranges that cross midnight.
	MinutesPerDay = 24 * 60

	// DefaultDuration is assumed for activities listed with a single start time.
	DefaultDuration = 60

	rangeSeparator = " - "
)

// Span is a half-open interval [Start, Start+Duration) in minutes past midnight.
type Span struct {
	Start    int
	Duration int
}

// End returns the first minute after the span. It may exceed MinutesPerDay.
func (s Span) End() int {
	return s.Start + s.Duration
}

// Overlaps reports whether the two spans share any minute.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End() && s.End() > other.Start
}

// Overlaps reports whether candidate intersects any of the accepted spans.
func Overlaps(accepted []Span, candidate Span) bool {
	for _, span := range accepted {
		if candidate.Overlaps(span) {
			return true
		}
	}
	return false
}

// ParseSpan reads "H:MM AM" or "H:MM AM - H:MM PM" into a Span.
func ParseSpan(value string) (Span, error) {
	startPart, endPart, isRange := strings.Cut(value, rangeSeparator)

	start, err := ParseClock(startPart)
	if err != nil {
		return Span{}, err
	}
	if !isRange {
		return Span{Start: start, Duration: DefaultDuration}, nil
	}

	end, err := ParseClock(endPart)
	if err != nil {
		return Span{}, err
	}

	duration := end - start
	if duration < 0 {
		duration += MinutesPerDay
	}
	return Span{Start: start, Duration: duration}, nil
}

// ParseClock converts a 12-hour clock such as "9:05 PM" into minutes past
// midnight. A missing period is read as AM.
func ParseClock(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	period := "AM"
	if len(fields) == 2 {
		period = strings.ToUpper(fields[1])
	}

	hourStr, minuteStr, ok := strings.Cut(fields[0], ":")
	if !ok || len(minuteStr) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hours, err := strconv.Atoi(hourStr)
	if err != nil || hours < 1 || hours > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minutes, err := strconv.Atoi(minuteStr)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	switch period {
	case "AM":
		if hours == 12 {
			hours = 0
		}
	case "PM":
		if hours < 12 {
			hours += 12
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes past midnight as a 12-hour clock, the inverse of ParseClock.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hours := minutes / 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	hours %= 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, minutes%60, period)
}
