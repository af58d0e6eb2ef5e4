package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	binary    string
	buildErr  error
)

// CLIResult is the decoded JSON envelope of one CLI run.
type CLIResult struct {
	OK       bool
	Data     map[string]interface{}
	Error    *CLIError
	Warnings []CLIWarning
	RawJSON  string
	ExitCode int
}

// CLIError is the error part of the envelope.
type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

// CLIWarning is one entry of the envelope's warnings.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
}

// taskmarkBinary builds ./cmd/taskmark once per test process.
func taskmarkBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}
		dir, err := os.MkdirTemp("", "taskmark-cli-*")
		if err != nil {
			buildErr = err
			return
		}
		name := "taskmark"
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		binary = filepath.Join(dir, name)

		cmd := exec.Command("go", "build", "-o", binary, "./cmd/taskmark")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build: %w\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatalf("failed to build CLI: %v", buildErr)
	}
	return binary
}

// moduleRoot walks up from the working directory to the directory holding go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// RunCLI runs taskmark with --json against the vault and decodes the reply.
func (v *TestVault) RunCLI(args ...string) *CLIResult {
	v.t.Helper()
	return v.run("", args)
}

// RunCLIWithStdin is RunCLI with stdin attached.
func (v *TestVault) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	v.t.Helper()
	return v.run(stdin, args)
}

func (v *TestVault) run(stdin string, args []string) *CLIResult {
	v.t.Helper()

	full := []string{"--root", v.Path, "--json", "--state", filepath.Join(v.t.TempDir(), "state.toml")}
	if cfg := v.ConfigPath(); cfg != "" {
		full = append(full, "--config", cfg)
	}
	full = append(full, args...)

	cmd := exec.Command(taskmarkBinary(v.t), full...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.Output()

	result := &CLIResult{RawJSON: string(out)}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		result.ExitCode = -1
	}

	var resp struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data"`
		Error    *CLIError              `json:"error"`
		Warnings []CLIWarning           `json:"warnings"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		result.Error = &CLIError{
			Code:    "PARSE_ERROR",
			Message: "invalid JSON output: " + err.Error(),
		}
		return result
	}
	result.OK = resp.OK
	result.Data = resp.Data
	result.Error = resp.Error
	result.Warnings = resp.Warnings
	return result
}

// MustSucceed fails the test unless the command succeeded.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		msg := "no error reported"
		if r.Error != nil {
			msg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("command failed: %s\nRaw output: %s", msg, r.RawJSON)
	}
	return r
}

// MustFail fails the test unless the command failed with code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("command succeeded, want %s\nRaw output: %s", code, r.RawJSON)
	case r.Error == nil:
		t.Fatalf("no error in envelope, want %s\nRaw output: %s", code, r.RawJSON)
	case r.Error.Code != code:
		t.Fatalf("error code %s (%s), want %s", r.Error.Code, r.Error.Message, code)
	}
	return r
}

// DataList returns Data[key] as a list, or nil.
func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

// DataString returns Data[key] as a string, or "".
func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}
