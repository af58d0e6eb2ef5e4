package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if relPath is missing from the vault.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); err != nil {
		v.t.Errorf("expected %s to exist: %v", relPath, err)
	}
}

// AssertFileNotExists fails the test if relPath is present in the vault.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); err == nil {
		v.t.Errorf("expected %s to be gone", relPath)
	}
}

// AssertFileContains fails the test unless relPath contains substr.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	if content := v.ReadFile(relPath); !strings.Contains(content, substr) {
		v.t.Errorf("%s does not contain %q:\n%s", relPath, substr, content)
	}
}

// AssertLine fails the test unless the 0-based line of relPath equals want.
func (v *TestVault) AssertLine(relPath string, line int, want string) {
	v.t.Helper()
	lines := strings.Split(v.ReadFile(relPath), "\n")
	switch {
	case line < 0 || line >= len(lines):
		v.t.Errorf("%s has %d lines, want line %d", relPath, len(lines), line)
	case lines[line] != want:
		v.t.Errorf("%s line %d = %q, want %q", relPath, line, lines[line], want)
	}
}

// AssertTaskCount runs "list path" and checks how many tasks it returns.
func (v *TestVault) AssertTaskCount(path string, want int) {
	v.t.Helper()
	result := v.RunCLI("list", path).MustSucceed(v.t)
	if got := len(result.DataList("tasks")); got != want {
		v.t.Errorf("list %s returned %d tasks, want %d\nRaw: %s", path, got, want, result.RawJSON)
	}
}

// AssertHasWarning fails the test unless a warning with code was reported.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("no %s warning in %+v", code, r.Warnings)
}
