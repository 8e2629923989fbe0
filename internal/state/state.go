package state

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/itinerary"
)

// ErrNoDeparture is returned when the countdown is requested before a departure date is set.
var ErrNoDeparture = errors.New("departure date not set")

// State is the mutable trip data kept between runs.
type State struct {
	Departure string          `yaml:"departure,omitempty"`
	Stats     itinerary.Stats `yaml:"stats"`
}

// DepartureDate parses the stored departure date.
func (s State) DepartureDate() (time.Time, error) {
	if s.Departure == "" {
		return time.Time{}, ErrNoDeparture
	}
	return itinerary.ParseDate(s.Departure)
}

// Store reads and writes state.yaml.
type Store struct {
	path string
}

// NewStore wires a store at the manager's state path.
func NewStore(manager *files.Manager) *Store {
	return &Store{path: manager.StatePath()}
}

// Load returns the zero State when the file does not exist yet.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// Save writes the state atomically.
func (s *Store) Save(st State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return files.WriteFileAtomic(s.path, data)
}

// Update loads the state, applies fn, and saves the result.
func (s *Store) Update(fn func(*State) error) (State, error) {
	st, err := s.Load()
	if err != nil {
		return State{}, err
	}
	if err := fn(&st); err != nil {
		return State{}, err
	}
	if err := s.Save(st); err != nil {
		return State{}, err
	}
	return st, nil
}
