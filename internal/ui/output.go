package ui

import "fmt"

// Message prefixes.
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
)

// Success prefixes msg with a checkmark.
func Success(msg string) string {
	return SymbolSuccess + " " + msg
}

func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Warning prefixes msg with a warning sign.
func Warning(msg string) string {
	return SymbolWarning + " " + msg
}

func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath renders a vault path in the accent color.
func FilePath(path string) string {
	return Accent.Render(path)
}

func Hint(msg string) string {
	return Muted.Render(msg)
}
