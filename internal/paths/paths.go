// Package paths provides canonical helpers for vault-relative document paths:
// normalization, confinement to the vault root, candidate resolution and
// rename targets.
package paths

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned when a path escapes the vault root.
var ErrPathOutsideRoot = errors.New("path is outside the vault")

// NormalizeRelPath normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRelPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// CandidateFilePaths returns vault-relative markdown paths to try for a reference.
//
// A reference with an extension is tried as is; one without is tried with
// ".md" appended first.
func CandidateFilePaths(ref string) []string {
	ref = NormalizeRelPath(ref)
	if ref == "" {
		return nil
	}
	if path.Ext(ref) != "" {
		return []string{ref}
	}
	return []string{ref + ".md", ref}
}

// RenamedPath returns filePath with its base name replaced by base, keeping
// the directory and extension.
//
//	RenamedPath("inbox/old.md", "New name") -> "inbox/New name.md"
func RenamedPath(filePath, base string) string {
	filePath = NormalizeRelPath(filePath)
	dir := path.Dir(filePath)
	name := base + path.Ext(filePath)
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

// ValidateWithinVault reports ErrPathOutsideRoot when target does not resolve
// to a location inside root. Symlinks are resolved when the target exists.
func ValidateWithinVault(root, target string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve vault root: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if r, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = r
	}
	if t, err := filepath.EvalSymlinks(absTarget); err == nil {
		absTarget = t
	} else if d, err := filepath.EvalSymlinks(filepath.Dir(absTarget)); err == nil {
		absTarget = filepath.Join(d, filepath.Base(absTarget))
	}

	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathOutsideRoot, target)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s", ErrPathOutsideRoot, target)
	}
	return nil
}
