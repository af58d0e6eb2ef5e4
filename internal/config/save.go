package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/taskmark/internal/atomicfile"
)

// SaveTo validates cfg and writes it to path.
func SaveTo(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return writeTOMLFile(path, "# taskmark configuration\n\n", cfg)
}

// CreateDefault writes Default() to path. It reports false, and leaves the
// file alone, when path already exists.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := SaveTo(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// writeTOMLFile encodes v after header and replaces path atomically.
func writeTOMLFile(path, header string, v interface{}) error {
	var buf bytes.Buffer
	buf.WriteString(header)
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
