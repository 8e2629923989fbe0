package itinerary

import "errors"

// ErrInvalidClock is returned when a time string is not "H:MM AM|PM" or a range of two.
var ErrInvalidClock = errors.New("invalid clock time")

// ErrUnknownCategory indicates a target or catalog entry names a category outside the fixed four.
var ErrUnknownCategory = errors.New("unknown category")

// ErrInvalidActivity marks an activity whose text cannot be stored as a plan line.
var ErrInvalidActivity = errors.New("invalid activity")
