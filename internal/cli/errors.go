package cli

import (
	"errors"

	"github.com/aidanlsb/taskmark/internal/mutate"
	"github.com/aidanlsb/taskmark/internal/tasks"
	"github.com/aidanlsb/taskmark/internal/vault"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents. Task target
// failures use the codes of tasks.TargetError (NOT_A_TASK, ...).
const (
	// Vault errors
	ErrVaultNotFound = "VAULT_NOT_FOUND"
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound     = "FILE_NOT_FOUND"
	ErrFileOutsideVault = "FILE_OUTSIDE_VAULT"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrInvalidStatus   = "INVALID_STATUS"
	ErrInvalidDate     = "INVALID_DATE"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnFieldError  = "FIELD_ERROR"
	WarnFileSkipped = "FILE_SKIPPED"
	WarnRecurrence  = "RECURRENCE_FALLBACK"
)

// cliError attaches a stable code to an error.
type cliError struct {
	code string
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func (e *cliError) Unwrap() error { return e.err }

func withCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// errorCode maps an error to its stable code.
func errorCode(err error) string {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	var te *tasks.TargetError
	if errors.As(err, &te) {
		return te.Code
	}
	switch {
	case errors.Is(err, vault.ErrPathOutsideRoot):
		return ErrFileOutsideVault
	case errors.Is(err, vault.ErrNotFound):
		return ErrFileNotFound
	case errors.Is(err, mutate.ErrInvalidStatus):
		return ErrInvalidStatus
	}
	return ErrInternal
}

// errorDetails returns structured details for task target failures.
func errorDetails(err error) interface{} {
	var te *tasks.TargetError
	if !errors.As(err, &te) {
		return nil
	}
	details := map[string]interface{}{"path": te.Path}
	if te.Line >= 0 {
		details["line"] = te.Line + 1
	}
	return details
}
