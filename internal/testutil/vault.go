// Package testutil holds helpers shared by taskmark tests: throwaway vaults,
// a CLI runner and assertions on vault files.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

type vaultFile struct {
	path    string
	content string
}

// TestVault builds a vault in a temporary directory. Files and config are
// staged with the With methods and written by Build.
type TestVault struct {
	Path string

	t          *testing.T
	config     string
	configPath string
	files      []vaultFile
}

// NewTestVault starts a vault builder.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{t: t}
}

// WithConfig stages the global config.toml passed to the CLI. It lives
// outside the vault root.
func (v *TestVault) WithConfig(toml string) *TestVault {
	v.config = toml
	return v
}

// WithFile stages a document at a vault-relative path.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files = append(v.files, vaultFile{path: path, content: content})
	return v
}

// Build writes the staged documents and config.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for _, f := range v.files {
		mustWrite(v.t, filepath.Join(v.Path, filepath.FromSlash(f.path)), f.content)
	}
	if v.config != "" {
		v.configPath = filepath.Join(v.t.TempDir(), "config.toml")
		mustWrite(v.t, v.configPath, v.config)
	}
	return v
}

// ConfigPath is the written config file, or "" when none was staged.
func (v *TestVault) ConfigPath() string {
	return v.configPath
}

// ReadFile returns a vault document's current content.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	if err != nil {
		v.t.Fatalf("read %s: %v", relPath, err)
	}
	return string(data)
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// FileParsingConfig is a config.toml with both file-level task sources
// enabled and dates in UTC.
func FileParsingConfig() string {
	return `timezone = "UTC"

[file_parsing]
enable_file_metadata_parsing = true
enable_tag_based_task_parsing = true
metadata_fields_to_parse_as_tasks = ["dueDate", "todo", "complete", "task"]
tags_to_parse_as_tasks = ["todo", "task"]
task_content_from_metadata = "title"
default_task_status = " "
`
}
