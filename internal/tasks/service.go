// Package tasks reads and updates the tasks of one document at a time
// against a document store.
//
// The service performs the read/modify/write cycle around the pure codec,
// mutator and deriver. It does no locking: callers keep at most one mutation
// per document in flight.
package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/codec"
	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/derive"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/mutate"
	"github.com/aidanlsb/taskmark/internal/parser"
	"github.com/aidanlsb/taskmark/internal/recurrence"
	"github.com/aidanlsb/taskmark/internal/vault"
)

// DocumentStore is the storage the service works against.
type DocumentStore interface {
	ReadDocument(path string) (string, error)
	WriteDocument(path, content string) error
	ReadFrontMatter(path string) (model.DocumentMeta, error)
	RenameDocument(path, newPath string) error
}

// Service exposes task operations over a document store.
type Service struct {
	store    DocumentStore
	cfg      config.Config
	codec    *codec.Codec
	resolver *recurrence.Resolver
	mutator  *mutate.Mutator
	deriver  *derive.Deriver
	logger   *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// New creates a service. A nil logger means slog.Default().
func New(store DocumentStore, cfg config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  store,
		cfg:    cfg,
		codec:  codec.New(cfg),
		logger: logger,
		Now:    time.Now,
	}
	s.resolver = recurrence.New(cfg)
	s.resolver.Now = s.now
	s.resolver.Logger = logger
	s.mutator = mutate.New(s.codec, s.resolver)
	s.mutator.Now = s.now
	s.deriver = derive.New(cfg)
	s.deriver.Logger = logger
	return s
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Codec returns the codec the service decodes lines with.
func (s *Service) Codec() *codec.Codec { return s.codec }

// Resolver returns the recurrence resolver, sharing the service clock.
func (s *Service) Resolver() *recurrence.Resolver { return s.resolver }

// Deriver returns the file-level task deriver.
func (s *Service) Deriver() *derive.Deriver { return s.deriver }

// ListResult holds the tasks of one document.
type ListResult struct {
	Path   string
	Tasks  []model.Task
	Errors []*derive.FieldError
}

// ListTasks returns the checkbox tasks of a document, skipping front matter
// and fenced code, followed by its derived file-level tasks.
func (s *Service) ListTasks(path string) (ListResult, error) {
	content, err := s.read(path)
	if err != nil {
		return ListResult{}, err
	}
	res := ListResult{Path: path}

	for i, line := range taskLines(content) {
		if line == "" {
			continue
		}
		task, ok := s.codec.ParseTask(line, i)
		if !ok {
			continue
		}
		task.ID = LineTaskID(path, i)
		task.FilePath = path
		res.Tasks = append(res.Tasks, task)
	}

	meta, err := s.store.ReadFrontMatter(path)
	if err != nil {
		// A broken front matter block still leaves the line tasks readable.
		s.logger.Warn("skipping file-level tasks", "path", path, "error", err)
		return res, nil
	}
	derived := s.deriver.Derive(meta)
	res.Tasks = append(res.Tasks, derived.Tasks...)
	res.Errors = derived.Errors
	return res, nil
}

// LineTaskID returns the id of the task on a 0-based line.
func LineTaskID(path string, line int) string {
	return fmt.Sprintf("%s:%d", path, line)
}

// taskLines returns the lines of content with every line that cannot hold a
// task (front matter, fences and fenced code) blanked. Carriage returns are
// dropped.
func taskLines(content string) []string {
	lines := strings.Split(content, "\n")
	out := make([]string, len(lines))

	start := 0
	if _, end, ok := parser.FrontmatterBounds(lines); ok && end >= 0 {
		start = end + 1
	}

	var fence parser.Fence
	for i := start; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		if fence.InCode(line) {
			continue
		}
		out[i] = line
	}
	return out
}

// UpdateResult is the outcome of UpdateTask.
type UpdateResult struct {
	mutate.Result

	Path string
	Line int
}

// UpdateTask applies u to the task on a 0-based line and writes the document
// back when the line changed.
func (s *Service) UpdateTask(path string, line int, u mutate.Update) (UpdateResult, error) {
	content, err := s.read(path)
	if err != nil {
		return UpdateResult{}, err
	}

	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return UpdateResult{}, targetErr(CodeLineOutOfRange, path, line, "line out of range (document has %d lines)", len(lines))
	}
	candidates := taskLines(content)
	if candidates[line] == "" {
		return UpdateResult{}, targetErr(CodeNotATask, path, line, "line is not a task")
	}

	original := lines[line]
	cr := strings.HasSuffix(original, "\r")

	res, err := s.mutator.Apply(candidates[line], u)
	if err != nil {
		if errors.Is(err, mutate.ErrNotTask) {
			return UpdateResult{}, targetErr(CodeNotATask, path, line, "line is not a task")
		}
		return UpdateResult{}, fmt.Errorf("update %s:%d: %w", path, line+1, err)
	}

	out := UpdateResult{Result: res, Path: path, Line: line}
	if !res.Changed {
		return out, nil
	}

	replacement := make([]string, len(res.Lines))
	for i, l := range res.Lines {
		if cr {
			l += "\r"
		}
		replacement[i] = l
	}
	updated := make([]string, 0, len(lines)+len(replacement)-1)
	updated = append(updated, lines[:line]...)
	updated = append(updated, replacement...)
	updated = append(updated, lines[line+1:]...)

	if err := s.store.WriteDocument(path, strings.Join(updated, "\n")); err != nil {
		return UpdateResult{}, err
	}
	s.logger.Debug("updated task", "path", path, "line", line, "lines", len(res.Lines))
	return out, nil
}

// read loads a document, reporting a missing one as a target error.
func (s *Service) read(path string) (string, error) {
	content, err := s.store.ReadDocument(path)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return "", targetErr(CodeDocumentNotFound, path, -1, "document not found")
		}
		return "", err
	}
	return content, nil
}
