package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext holds the output settings for human-readable rendering.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the writer is a terminal
	Color     bool // whether styled output should be emitted
}

// NewDisplayContext inspects w. Only an *os.File attached to a terminal
// gets a detected width and color; NO_COLOR disables color regardless.
func NewDisplayContext(w io.Writer) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}

	f, ok := w.(*os.File)
	if !ok {
		return d
	}
	fd := f.Fd()
	d.IsTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !d.IsTTY {
		return d
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		d.TermWidth = width
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	d.Color = !noColor
	return d
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{
		TermWidth: width,
		IsTTY:     true,
	}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	if w := d.TermWidth - leftMargin; w > 0 {
		return w
	}
	return 1
}

// Render applies style when color output is enabled.
func (d *DisplayContext) Render(style interface{ Render(...string) string }, s string) string {
	if !d.Color {
		return s
	}
	return style.Render(s)
}
