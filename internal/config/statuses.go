package config

import (
	"slices"
	"strings"
)

// StatusKind classifies a checkbox mark.
type StatusKind int

const (
	StatusUnknown StatusKind = iota
	StatusNotStarted
	StatusPlanned
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func splitMarks(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// Kind returns the status kind of a mark. The completed mark from
// TaskStatusCompletedMark always classifies as completed.
func (c Config) Kind(mark string) StatusKind {
	if mark == c.TaskStatusCompletedMark {
		return StatusCompleted
	}
	switch {
	case slices.Contains(splitMarks(c.TaskStatuses.Completed), mark):
		return StatusCompleted
	case slices.Contains(splitMarks(c.TaskStatuses.Cancelled), mark):
		return StatusCancelled
	case slices.Contains(splitMarks(c.TaskStatuses.InProgress), mark):
		return StatusInProgress
	case slices.Contains(splitMarks(c.TaskStatuses.Planned), mark):
		return StatusPlanned
	case slices.Contains(splitMarks(c.TaskStatuses.NotStarted), mark):
		return StatusNotStarted
	}
	return StatusUnknown
}

// IsCompleted reports whether mark is a completed mark.
func (c Config) IsCompleted(mark string) bool {
	return c.Kind(mark) == StatusCompleted
}

// NotStartedMark returns the canonical not-started mark.
func (c Config) NotStartedMark() string {
	if marks := splitMarks(c.TaskStatuses.NotStarted); len(marks) > 0 {
		return marks[0]
	}
	return " "
}
