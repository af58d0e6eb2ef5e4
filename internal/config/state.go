package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// StateVersion is the schema version written to state.toml.
const StateVersion = 1

// maxRecentRoots bounds State.RecentRoots.
const maxRecentRoots = 5

// State is machine-local data the CLI updates as it runs. Unlike Config it
// is never edited by hand.
type State struct {
	Version int `toml:"version"`

	// ActiveRoot is the vault used when --root is not given.
	ActiveRoot string `toml:"active_root,omitempty"`

	// RecentRoots lists previously active vaults, most recent first.
	RecentRoots []string `toml:"recent_roots,omitempty"`
}

// Remember makes root the active vault and moves it to the front of the
// recent list.
func (s *State) Remember(root string) {
	root = strings.TrimSpace(root)
	if root == "" {
		return
	}
	s.ActiveRoot = root
	recent := []string{root}
	for _, r := range s.RecentRoots {
		if r != root && len(recent) < maxRecentRoots {
			recent = append(recent, r)
		}
	}
	s.RecentRoots = recent
}

// ResolveConfigPath returns explicit when set, else DefaultPath.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// ResolveStatePath picks the state file: the --state flag, then state_file
// from the config (relative to the config's directory), then state.toml
// beside the config file. cfg may be nil.
func ResolveStatePath(explicit, configPath string, cfg *Config) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	dir := filepath.Dir(ResolveConfigPath(configPath))

	var configured string
	if cfg != nil {
		configured = filepath.FromSlash(strings.TrimSpace(cfg.StateFile))
	}
	switch {
	case configured == "":
		return filepath.Join(dir, "state.toml")
	case filepath.IsAbs(configured), strings.HasPrefix(filepath.ToSlash(configured), "/"):
		return filepath.Clean(configured)
	default:
		return filepath.Join(dir, configured)
	}
}

// LoadState reads the state file at path. A missing file yields an empty
// state at the current version.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state path is required")
	}

	state := &State{}
	if _, err := toml.DecodeFile(path, state); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &State{Version: StateVersion}, nil
		}
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	state.normalize()
	return state, nil
}

// SaveState writes state atomically, creating its directory when needed.
func SaveState(path string, state *State) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("state path is required")
	}
	out := State{}
	if state != nil {
		out = *state
	}
	out.normalize()
	return writeTOMLFile(path, "", out)
}

func (s *State) normalize() {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	s.ActiveRoot = strings.TrimSpace(s.ActiveRoot)
	var recent []string
	for _, r := range s.RecentRoots {
		if r = strings.TrimSpace(r); r != "" {
			recent = append(recent, r)
		}
	}
	s.RecentRoots = recent
}
