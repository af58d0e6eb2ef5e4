package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestResolveStatePath(t *testing.T) {
	const configPath = "/home/me/.config/taskmark/config.toml"

	tests := []struct {
		name     string
		explicit string
		cfg      *Config
		want     string
	}{
		{"flag wins", "/tmp/flag.toml", &Config{StateFile: "ignored.toml"}, "/tmp/flag.toml"},
		{"absolute state_file", "", &Config{StateFile: "/var/lib/taskmark/state.toml"}, "/var/lib/taskmark/state.toml"},
		{"relative state_file", "", &Config{StateFile: "run/state.toml"}, "/home/me/.config/taskmark/run/state.toml"},
		{"blank state_file", "", &Config{StateFile: "  "}, "/home/me/.config/taskmark/state.toml"},
		{"nil config", "", nil, "/home/me/.config/taskmark/state.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatePath(tt.explicit, configPath, tt.cfg)
			if filepath.ToSlash(got) != tt.want {
				t.Errorf("ResolveStatePath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "state.toml"))
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.Version != StateVersion || state.ActiveRoot != "" || state.RecentRoots != nil {
		t.Errorf("state = %+v, want empty state at version %d", state, StateVersion)
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	in := &State{ActiveRoot: "  /home/me/notes ", RecentRoots: []string{"/home/me/notes", " ", "/srv/work"}}
	if err := SaveState(path, in); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `active_root = "/home/me/notes"`) {
		t.Errorf("active_root not trimmed:\n%s", data)
	}

	out, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if out.Version != StateVersion || out.ActiveRoot != "/home/me/notes" {
		t.Errorf("loaded = %+v", out)
	}
	if want := []string{"/home/me/notes", "/srv/work"}; !reflect.DeepEqual(out.RecentRoots, want) {
		t.Errorf("RecentRoots = %q, want %q", out.RecentRoots, want)
	}
}

func TestStateRemember(t *testing.T) {
	var s State
	for _, root := range []string{"/a", "/b", "/c", "/b", "/d", "/e", "/f"} {
		s.Remember(root)
	}
	if s.ActiveRoot != "/f" {
		t.Errorf("ActiveRoot = %q, want /f", s.ActiveRoot)
	}
	want := []string{"/f", "/e", "/d", "/b", "/c"}
	if !reflect.DeepEqual(s.RecentRoots, want) {
		t.Errorf("RecentRoots = %q, want %q", s.RecentRoots, want)
	}

	s.Remember("  ")
	if s.ActiveRoot != "/f" {
		t.Errorf("blank root changed ActiveRoot to %q", s.ActiveRoot)
	}
}

func TestStateRequiresPath(t *testing.T) {
	if _, err := LoadState("  "); err == nil {
		t.Error("LoadState accepted an empty path")
	}
	if err := SaveState("", nil); err == nil {
		t.Error("SaveState accepted an empty path")
	}
}
