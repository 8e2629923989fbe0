package files

import (
	"path/filepath"
	"testing"
)

func TestResolveBasePathHonorsJalanHome(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "trip-data")
	t.Setenv(HomeEnv, custom)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if got != custom {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, custom)
	}
}

func TestResolveBasePathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnv, "~/nyc")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, "nyc")
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestResolveBasePathDefaultsToHomeDotJalan(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnv, "  ")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, DefaultDirName)
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	base := filepath.Join(home, ".jalan")

	cases := map[string]string{
		"catalog.yaml":       filepath.Join(base, "catalog.yaml"),
		"lists/nyc.yaml":     filepath.Join(base, "lists", "nyc.yaml"),
		"~/trips/nyc.yaml":   filepath.Join(home, "trips", "nyc.yaml"),
		"/etc/jalan/nyc.yml": "/etc/jalan/nyc.yml",
	}
	for input, want := range cases {
		got, err := ExpandPath(input, base)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", input, err)
		}
		if got != want {
			t.Fatalf("ExpandPath(%q) = %q, want %q", input, got, want)
		}
	}

	if got, _ := ExpandPath("catalog.yaml", ""); got != "catalog.yaml" {
		t.Fatalf("ExpandPath without dir = %q, want catalog.yaml", got)
	}
}
