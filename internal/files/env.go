package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName is created under the user's home directory.
	DefaultDirName = ".jalan"

	// HomeEnv overrides the storage root.
	HomeEnv = "JALAN_HOME"
)

// ResolveBasePath returns the directory holding itineraries, state.yaml and
// config.yaml: $JALAN_HOME when set, ~/.jalan otherwise.
func ResolveBasePath() (string, error) {
	override := strings.TrimSpace(os.Getenv(HomeEnv))
	if override == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, DefaultDirName), nil
	}
	return ExpandPath(override, "")
}

// ExpandPath replaces a leading "~" with the home directory and joins a
// relative result onto dir. An empty dir leaves relative paths untouched.
func ExpandPath(input, dir string) (string, error) {
	if input == "~" || strings.HasPrefix(input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	if dir != "" && !filepath.IsAbs(input) {
		input = filepath.Join(dir, input)
	}
	return input, nil
}
