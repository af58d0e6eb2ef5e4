package tasks

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is matched by every *TargetError.
var ErrInvalidTarget = errors.New("invalid target")

// Target error codes.
const (
	CodeDocumentNotFound = "DOCUMENT_NOT_FOUND"
	CodeLineOutOfRange   = "LINE_OUT_OF_RANGE"
	CodeNotATask         = "NOT_A_TASK"
	CodeTaskNotFound     = "TASK_NOT_FOUND"
	CodeNotFileTask      = "NOT_FILE_METADATA_TASK"
	CodeFieldNotWritable = "FIELD_NOT_WRITABLE"
)

// TargetError reports an operation aimed at a document, line or task that
// cannot take it.
type TargetError struct {
	Code   string
	Path   string
	Line   int // 0-based; -1 when the target is not a line
	Reason string
}

func (e *TargetError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line+1, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidTarget) hold for target errors.
func (e *TargetError) Is(target error) bool {
	return target == ErrInvalidTarget
}

func targetErr(code, path string, line int, format string, args ...any) *TargetError {
	return &TargetError{Code: code, Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}
