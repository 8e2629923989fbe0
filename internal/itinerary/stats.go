package itinerary

import "slices"

// MaxProductivity caps the productivity percentage.
const MaxProductivity = 100

// Stats are running counters adjusted by fixed deltas on every completion
// toggle. They are not derived from any itinerary and can drift from it.
type Stats struct {
	StudyHours    int `yaml:"study_hours"`
	PlacesVisited int `yaml:"places_visited"`
	Productivity  int `yaml:"productivity"`
}

// Rewards are the deltas applied per completed activity.
type Rewards struct {
	StudyHours   int `yaml:"study_hours"`
	Places       int `yaml:"places"`
	Productivity int `yaml:"productivity"`
}

// DefaultRewards matches one three-hour study block per completed study activity.
var DefaultRewards = Rewards{StudyHours: 3, Places: 1, Productivity: 15}

// DefaultStudyKinds are the activity kinds that count towards study hours.
var DefaultStudyKinds = []string{"Deep Work", "Focus Time", "Quiet Study", "Group Study"}

// IsStudy reports whether the activity kind is one of studyKinds.
func IsStudy(activity Activity, studyKinds []string) bool {
	return slices.Contains(studyKinds, activity.Kind)
}

// Complete applies the rewards for marking an activity done.
func (s Stats) Complete(study bool, r Rewards) Stats {
	if study {
		s.StudyHours += r.StudyHours
	}
	s.PlacesVisited += r.Places
	s.Productivity = min(MaxProductivity, s.Productivity+r.Productivity)
	return s
}

// Undo reverses the rewards when an activity is unmarked, flooring at zero.
func (s Stats) Undo(study bool, r Rewards) Stats {
	if study {
		s.StudyHours = max(0, s.StudyHours-r.StudyHours)
	}
	s.PlacesVisited = max(0, s.PlacesVisited-r.Places)
	s.Productivity = max(0, s.Productivity-r.Productivity)
	return s
}
