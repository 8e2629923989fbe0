package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/itinerary"
)

// DefaultRefresh is how often the TUI recomputes the countdown.
const DefaultRefresh = time.Minute

// Config holds the optional settings from config.yaml.
type Config struct {
	// Catalog points at a YAML activity catalog; empty means the built-in one.
	// After Load it is absolute or resolved against the config directory.
	Catalog    string             `yaml:"catalog"`
	Targets    []itinerary.Target `yaml:"targets"`
	StudyKinds []string           `yaml:"study_kinds"`
	Rewards    itinerary.Rewards  `yaml:"rewards"`
	Refresh    Duration           `yaml:"refresh"`
}

// Duration decodes Go duration strings such as "30s" or "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Targets:    append([]itinerary.Target(nil), itinerary.DefaultTargets...),
		StudyKinds: append([]string(nil), itinerary.DefaultStudyKinds...),
		Rewards:    itinerary.DefaultRewards,
		Refresh:    Duration(DefaultRefresh),
	}
}

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Catalog != "" {
		// Relative catalog paths are read from the config file's directory.
		cfg.Catalog, err = files.ExpandPath(cfg.Catalog, filepath.Dir(path))
		if err != nil {
			return Config{}, fmt.Errorf("resolve catalog path: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks targets and the refresh interval.
func (c Config) Validate() error {
	if err := itinerary.ValidateTargets(c.Targets); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("config: refresh must be positive")
	}
	if c.Rewards.StudyHours < 0 || c.Rewards.Places < 0 || c.Rewards.Productivity < 0 {
		return fmt.Errorf("config: rewards must not be negative")
	}
	return nil
}

// RefreshInterval returns the countdown tick as a time.Duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh)
}

// LoadCatalog opens the configured catalog, or returns the built-in one.
func (c Config) LoadCatalog() (itinerary.Catalog, error) {
	if c.Catalog == "" {
		return itinerary.DefaultCatalog(), nil
	}

	file, err := os.Open(c.Catalog)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	return itinerary.ReadCatalog(file)
}
