// Package vault provides the filesystem document store: reading, atomic
// writing and renaming of markdown documents under one root directory.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aidanlsb/taskmark/internal/atomicfile"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/parser"
	"github.com/aidanlsb/taskmark/internal/paths"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrPathOutsideRoot is returned when a path escapes the vault root.
var ErrPathOutsideRoot = paths.ErrPathOutsideRoot

// Store is a document store rooted at a directory. Documents are addressed by
// vault-relative, slash-separated paths.
type Store struct {
	root string
}

// Open returns a store rooted at dir.
func Open(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", dir)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute vault root.
func (s *Store) Root() string {
	return s.root
}

// Abs returns the absolute filesystem path of a document, checking that it
// stays inside the vault.
func (s *Store) Abs(path string) (string, error) {
	rel := paths.NormalizeRelPath(path)
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(s.root, path)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrPathOutsideRoot, path)
		}
		rel = filepath.ToSlash(r)
	}
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := paths.ValidateWithinVault(s.root, abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Rel converts an absolute or relative path into its vault-relative form.
func (s *Store) Rel(path string) (string, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Resolve finds an existing document for ref, trying ref with a ".md"
// extension first. It returns the vault-relative path.
func (s *Store) Resolve(ref string) (string, error) {
	if filepath.IsAbs(ref) {
		rel, err := s.Rel(ref)
		if err != nil {
			return "", err
		}
		ref = rel
	}
	for _, candidate := range paths.CandidateFilePaths(ref) {
		abs, err := s.Abs(candidate)
		if err != nil {
			return "", err
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// ReadDocument returns the text of a document.
func (s *Store) ReadDocument(path string) (string, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteDocument replaces the text of a document atomically, creating parent
// directories when needed.
func (s *Store) WriteDocument(path, content string) error {
	abs, err := s.Abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	if err := atomicfile.WriteFile(abs, []byte(content), 0); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFrontMatter returns the frontmatter fields, tags and outbound links of
// a document.
func (s *Store) ReadFrontMatter(path string) (model.DocumentMeta, error) {
	content, err := s.ReadDocument(path)
	if err != nil {
		return model.DocumentMeta{}, err
	}
	doc, err := parser.ParseDocument(content)
	if err != nil {
		return model.DocumentMeta{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return DocumentMeta(paths.NormalizeRelPath(path), doc), nil
}

// RenameDocument moves a document to newPath. The destination must not exist.
func (s *Store) RenameDocument(path, newPath string) error {
	from, err := s.Abs(path)
	if err != nil {
		return err
	}
	to, err := s.Abs(newPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(from); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err := atomicfile.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// DocumentMeta builds the store's view of a parsed document.
func DocumentMeta(path string, doc *parser.ParsedDocument) model.DocumentMeta {
	return model.DocumentMeta{
		Path:   path,
		Fields: doc.Fields(),
		Tags:   doc.Tags,
		Links:  doc.Links,
	}
}
