package tasks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aidanlsb/taskmark/internal/derive"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/mutate"
	"github.com/aidanlsb/taskmark/internal/parser"
	"github.com/aidanlsb/taskmark/internal/paths"
	"github.com/aidanlsb/taskmark/internal/slugs"
)

// FileUpdateResult is the outcome of UpdateFileTask.
type FileUpdateResult struct {
	// Path is the document path after the update; it differs from the
	// requested path when the content change renamed the document.
	Path    string
	Task    model.Task
	Changed bool
}

// UpdateFileTask writes a status or content change of a front-matter task
// back to its document. Status goes to the source field; content goes to the
// configured content field, or renames the document when the content came
// from the filename.
func (s *Service) UpdateFileTask(path, taskID string, u mutate.Update) (FileUpdateResult, error) {
	meta, err := s.store.ReadFrontMatter(path)
	if err != nil {
		if _, rerr := s.read(path); rerr != nil {
			return FileUpdateResult{}, rerr
		}
		return FileUpdateResult{}, err
	}

	field, err := s.fileTaskField(path, taskID)
	if err != nil {
		return FileUpdateResult{}, err
	}
	role, ok := s.deriver.Role(field)
	if _, present := meta.Fields[field]; !ok || !present {
		return FileUpdateResult{}, targetErr(CodeTaskNotFound, path, -1, "no task for field %q", field)
	}

	current, found := s.findTask(meta, taskID)
	if !found {
		return FileUpdateResult{}, targetErr(CodeTaskNotFound, path, -1, "task %s not found", taskID)
	}

	content, err := s.read(path)
	if err != nil {
		return FileUpdateResult{}, err
	}
	updated := content

	if mark, ok, err := s.requestedMark(current, u); err != nil {
		return FileUpdateResult{}, err
	} else if ok && mark != current.Status {
		value, err := s.statusValue(path, field, role, meta.Fields[field], mark)
		if err != nil {
			return FileUpdateResult{}, err
		}
		if updated, err = parser.SetFrontmatterField(updated, field, value); err != nil {
			return FileUpdateResult{}, fmt.Errorf("update %s: %w", path, err)
		}
	}

	newPath := path
	if u.Content != nil {
		text := strings.TrimSpace(*u.Content)
		switch {
		case text == "" || text == current.Content:
		case s.deriver.ContentFromField(meta):
			key := s.cfg.FileParsing.TaskContentFromMetadata
			if updated, err = parser.SetFrontmatterField(updated, key, text); err != nil {
				return FileUpdateResult{}, fmt.Errorf("update %s: %w", path, err)
			}
		default:
			base := slugs.FileName(text)
			if base == "" {
				return FileUpdateResult{}, fmt.Errorf("content %q does not make a file name", text)
			}
			newPath = paths.RenamedPath(path, base)
		}
	}

	changed := updated != content || newPath != path
	if updated != content {
		if err := s.store.WriteDocument(path, updated); err != nil {
			return FileUpdateResult{}, err
		}
	}
	if newPath != path {
		if err := s.store.RenameDocument(path, newPath); err != nil {
			return FileUpdateResult{}, err
		}
		s.logger.Debug("renamed document", "from", path, "to", newPath)
	}

	task := current
	if changed {
		meta, err := s.store.ReadFrontMatter(newPath)
		if err != nil {
			return FileUpdateResult{}, err
		}
		newID := newPath + "#" + string(model.SourceFileMetadata) + ":" + field
		if t, ok := s.findTask(meta, newID); ok {
			task = t
		}
	}
	return FileUpdateResult{Path: newPath, Task: task, Changed: changed}, nil
}

// fileTaskField extracts the front matter field from a file-metadata task id.
func (s *Service) fileTaskField(path, taskID string) (string, error) {
	metaPrefix := path + "#" + string(model.SourceFileMetadata) + ":"
	tagPrefix := path + "#" + string(model.SourceFileTag) + ":"
	switch {
	case strings.HasPrefix(taskID, metaPrefix):
		return strings.TrimPrefix(taskID, metaPrefix), nil
	case strings.HasPrefix(taskID, tagPrefix):
		return "", targetErr(CodeNotFileTask, path, -1, "task %s comes from a tag and has no field to update", taskID)
	}
	return "", targetErr(CodeNotFileTask, path, -1, "task %s is not a file-metadata task of this document", taskID)
}

func (s *Service) findTask(meta model.DocumentMeta, id string) (model.Task, bool) {
	for _, t := range s.deriver.Derive(meta).Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// requestedMark returns the mark an update asks for, if any.
func (s *Service) requestedMark(current model.Task, u mutate.Update) (string, bool, error) {
	switch {
	case u.Status != nil:
		if utf8.RuneCountInString(*u.Status) != 1 {
			return "", false, fmt.Errorf("%w: %q", mutate.ErrInvalidStatus, *u.Status)
		}
		return *u.Status, true, nil
	case u.Completed != nil:
		if *u.Completed {
			if current.Completed {
				return current.Status, true, nil
			}
			return s.cfg.TaskStatusCompletedMark, true, nil
		}
		if !current.Completed {
			return current.Status, true, nil
		}
		return s.cfg.NotStartedMark(), true, nil
	}
	return "", false, nil
}

// statusValue returns the front matter value that makes field derive mark.
// Completion fields hold booleans; todo fields hold the mark, or a boolean
// when they already hold one and the mark is completed or not started.
func (s *Service) statusValue(path, field string, role derive.FieldRole, existing any, mark string) (any, error) {
	done := s.cfg.IsCompleted(mark)
	switch role {
	case derive.RoleCompletion:
		if !done && mark != s.cfg.FileParsing.DefaultTaskStatus && mark != s.cfg.NotStartedMark() {
			return nil, targetErr(CodeFieldNotWritable, path, -1, "field %q only records done or not done", field)
		}
		return done, nil
	case derive.RoleTodo:
		if _, isBool := existing.(bool); isBool && (done || mark == s.cfg.NotStartedMark()) {
			return done, nil
		}
		return mark, nil
	}
	return nil, targetErr(CodeFieldNotWritable, path, -1, "field %q does not record a status", field)
}
