package cli

import (
	"encoding/json"
	"io"
	"os"
)

// jsonOutput is set by --json.
var jsonOutput bool

// jsonWriter receives JSON envelopes. Tests swap it for a buffer.
var jsonWriter io.Writer = os.Stdout

// Response is the envelope of every --json reply. Exactly one of Data and
// Error is set.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo describes a failed command. Code is one of the stable error
// codes.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning is a problem that did not stop the command, such as a front
// matter field that could not be read.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
}

type Meta struct {
	Count int `json:"count"`
}

func writeJSON(resp Response) {
	enc := json.NewEncoder(jsonWriter)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func outputSuccess(data interface{}, meta *Meta) {
	writeJSON(Response{OK: true, Data: data, Meta: meta})
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// outputErrorFromErr writes err as an error envelope with the given code.
func outputErrorFromErr(code string, err error, suggestion string) {
	writeJSON(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    err.Error(),
		Details:    errorDetails(err),
		Suggestion: suggestion,
	}})
}

func isJSONOutput() bool {
	return jsonOutput
}
