package planbook

import "errors"

// ErrPlanNotFound is returned when the targeted date has no itinerary.
var ErrPlanNotFound = errors.New("itinerary not found")

// ErrInvalidIndex indicates the caller referenced an item outside the itinerary bounds.
var ErrInvalidIndex = errors.New("item index out of range")

// ErrStalePlan means the itinerary was regenerated since the caller last read it.
var ErrStalePlan = errors.New("itinerary was regenerated")
