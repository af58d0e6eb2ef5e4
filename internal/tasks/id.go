package tasks

import (
	"crypto/rand"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/mutate"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(randReader{}, 0)
)

// NewID returns a new lowercase ULID. IDs generated within the same
// millisecond sort in generation order.
func (s *Service) NewID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(s.now()), entropy)
	if err != nil {
		return "", err
	}
	return strings.ToLower(id.String()), nil
}

// AssignID gives the task on a 0-based line an id unless it has one, and
// returns the task's id.
func (s *Service) AssignID(path string, line int) (string, error) {
	content, err := s.read(path)
	if err != nil {
		return "", err
	}
	candidates := taskLines(content)
	if line < 0 || line >= len(candidates) {
		return "", targetErr(CodeLineOutOfRange, path, line, "line out of range (document has %d lines)", len(candidates))
	}
	task, ok := s.codec.ParseTask(candidates[line], line)
	if !ok {
		return "", targetErr(CodeNotATask, path, line, "line is not a task")
	}
	if task.Metadata.ID != "" {
		return task.Metadata.ID, nil
	}

	id, err := s.NewID()
	if err != nil {
		return "", err
	}
	_, err = s.UpdateTask(path, line, mutate.Update{
		Fields:   []model.Field{model.FieldID},
		Metadata: model.TaskMetadata{ID: id},
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
