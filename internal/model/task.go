// Package model defines canonical types for core taskmark concepts.
// These types are the single source of truth used across all layers:
// codec, mutation, derivation, CLI output.
package model

import "strconv"

// FileTaskLine is the line index used for tasks synthesized from front matter or tags.
const FileTaskLine = -1

// Source describes where a task record came from.
type Source string

const (
	SourceLine         Source = "line"
	SourceFileMetadata Source = "file-metadata"
	SourceFileTag      Source = "file-tag"
)

// Task represents one task, either a literal checkbox line or a synthetic task.
type Task struct {
	// ID uniquely identifies this task within a vault.
	// Format: "path:line" for line tasks, "path#source:name" for synthetic tasks.
	ID string `json:"id"`

	// FilePath is the path to the document containing this task.
	FilePath string `json:"file_path,omitempty"`

	// Line is the 0-indexed line of the task, or FileTaskLine for synthetic tasks.
	Line int `json:"line"`

	// Content is the task text with checkbox prefix and trailing metadata removed.
	Content string `json:"content"`

	// Completed is true iff Status is one of the configured completed marks.
	Completed bool `json:"completed"`

	// Status is the single-character checkbox mark (" ", "x", "-", "/", ...).
	Status string `json:"status"`

	// OriginalMarkdown is the literal line text the task was parsed from.
	OriginalMarkdown string `json:"original_markdown,omitempty"`

	Metadata TaskMetadata `json:"metadata"`
}

// IsFileTask reports whether the task was synthesized rather than read from a checkbox line.
func (t Task) IsFileTask() bool {
	return t.Metadata.Source == SourceFileMetadata || t.Metadata.Source == SourceFileTag
}

// GetLocation returns a short location string (file:line).
func (t Task) GetLocation() string {
	if t.Line == FileTaskLine {
		return t.FilePath
	}
	return t.FilePath + ":" + strconv.Itoa(t.Line+1)
}
