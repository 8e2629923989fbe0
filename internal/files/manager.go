package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	configFileName = "config.yaml"
	stateFileName  = "state.yaml"
	debugFileName  = "debug.log"
)

// Manager centralizes where itineraries and settings live on disk.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.jalan (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory.
func (m *Manager) BasePath() string {
	return m.basePath
}

// ConfigPath is the optional YAML settings file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, configFileName)
}

// StatePath holds the departure date and running stats.
func (m *Manager) StatePath() string {
	return filepath.Join(m.basePath, stateFileName)
}

// DebugLogPath is where the TUI writes its log when debugging is enabled.
func (m *Manager) DebugLogPath() string {
	return filepath.Join(m.basePath, debugFileName)
}

// MonthPath resolves the absolute path to the itinerary file for the supplied time.
// The file may not exist yet; callers can choose to create it.
func (m *Manager) MonthPath(t time.Time) string {
	yearDir := filepath.Join(m.basePath, fmt.Sprintf("%04d", t.Year()))
	return filepath.Join(yearDir, fmt.Sprintf("%04d-%02d.md", t.Year(), t.Month()))
}

// EnsureBase creates the root directory if needed.
func (m *Manager) EnsureBase() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}

// EnsureMonthFile guarantees the directory tree exists and the month file is
// present with the expected heading. It returns the absolute path to the file.
func (m *Manager) EnsureMonthFile(t time.Time) (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}

	path := m.MonthPath(t)
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePermissions)
	if err != nil {
		return "", fmt.Errorf("open month file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat month file: %w", err)
	}

	if info.Size() == 0 {
		if _, err := file.WriteString(monthHeader(t)); err != nil {
			return "", fmt.Errorf("write month header: %w", err)
		}
	}

	return path, nil
}

// WriteFileAtomic replaces path with content via a temp file and rename,
// preserving the mode of an existing file.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	temp, err := os.CreateTemp(dir, "jalan-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}

// WriteLines joins lines with newlines and writes them atomically.
func WriteLines(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return WriteFileAtomic(path, []byte(content))
}

func monthHeader(t time.Time) string {
	return fmt.Sprintf("# Itinerary %s %04d\n\n", t.Month().String(), t.Year())
}
