// Package atomicfile replaces and moves documents so that readers never see
// a partially written file.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists is returned by Rename when the destination is taken.
var ErrExists = errors.New("destination exists")

// WriteFile replaces path with data. The data goes to a sibling temp file
// which is synced and then renamed over path. A zero perm keeps the mode of
// the file being replaced, or 0644 for a new file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = currentMode(path)
	}
	tmp, err := writeTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*", data, perm)
	if err != nil {
		return err
	}
	if err := replace(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func currentMode(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return 0o644
}

// writeTemp writes data to a new file in dir and returns its name. The
// file is removed again on failure.
func writeTemp(dir, pattern string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	// Some filesystems reject chmod; the write still goes ahead.
	_ = f.Chmod(perm)

	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

// replace renames src over dst. Windows will not rename onto an existing
// file, so dst is removed and the rename retried once.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	_ = os.Remove(dst)
	if os.Rename(src, dst) == nil {
		return nil
	}
	return err
}

// Rename moves oldPath to newPath, creating missing parent directories.
// An existing newPath is never replaced.
func Rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, newPath)
	}
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
