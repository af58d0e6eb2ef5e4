package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/parser"
	"github.com/aidanlsb/taskmark/internal/paths"
)

// WalkResult is one markdown document met by a walk. Error is set when the
// document could not be read or parsed; Content is kept when only parsing
// failed.
type WalkResult struct {
	Path         string
	RelativePath string // slash-separated
	Content      string
	Document     *parser.ParsedDocument
	Error        error
}

// IsMarkdown reports whether path names a markdown document.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// WalkMarkdownFiles calls handler for every markdown document below dir.
// Hidden directories are skipped, as are symlinks resolving outside dir.
// RelativePath is relative to dir. A non-nil error from handler stops the
// walk.
func WalkMarkdownFiles(dir string, handler func(WalkResult) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if err == nil && !IsMarkdown(path) {
			return nil
		}
		result := WalkResult{Path: path, RelativePath: relPath(dir, path), Error: err}
		if err == nil {
			if err := paths.ValidateWithinVault(dir, path); errors.Is(err, paths.ErrPathOutsideRoot) {
				return nil
			} else if err != nil {
				result.Error = err
			} else {
				loadDocument(&result)
			}
		}
		return handler(result)
	})
}

func loadDocument(r *WalkResult) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		r.Error = err
		return
	}
	r.Content = string(data)
	r.Document, r.Error = parser.ParseDocument(r.Content)
}

// Walk walks the documents below dir, a vault-relative directory ("" for
// the whole vault). RelativePath is relative to the vault root.
func (s *Store) Walk(dir string, handler func(WalkResult) error) error {
	start := s.root
	if dir != "" {
		abs, err := s.Abs(dir)
		if err != nil {
			return err
		}
		start = abs
	}
	return WalkMarkdownFiles(start, func(r WalkResult) error {
		r.RelativePath = relPath(s.root, r.Path)
		return handler(r)
	})
}

// CollectDocuments returns the front matter summary of every document below
// dir. Documents that fail to load are returned separately.
func (s *Store) CollectDocuments(dir string, skip func(relPath string) bool) ([]model.DocumentMeta, []WalkResult, error) {
	var docs []model.DocumentMeta
	var failed []WalkResult
	err := s.Walk(dir, func(r WalkResult) error {
		switch {
		case skip != nil && skip(r.RelativePath):
		case r.Error != nil:
			failed = append(failed, r)
		default:
			docs = append(docs, DocumentMeta(r.RelativePath, r.Document))
		}
		return nil
	})
	return docs, failed, err
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
