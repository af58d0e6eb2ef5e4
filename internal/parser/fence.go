package parser

import "strings"

// Fence follows fenced code blocks (``` or ~~~) through a line scan. The
// zero value is outside any block.
type Fence struct {
	marker byte
	width  int
}

// Open reports whether the scan is inside a fenced block.
func (f *Fence) Open() bool { return f.width > 0 }

// InCode consumes line and reports whether it belongs to a code block,
// fence lines included. Fences are recognised behind blockquote and list
// markers; a block closes on a fence of the same character at least as
// long as the one that opened it.
func (f *Fence) InCode(line string) bool {
	marker, width := fenceMarker(stripContainers(line))
	switch {
	case width == 0:
		return f.Open()
	case !f.Open():
		f.marker, f.width = marker, width
	case marker == f.marker && width >= f.width:
		*f = Fence{}
	}
	return true
}

func stripContainers(line string) string {
	s := strings.TrimLeft(line, " \t")
	for {
		switch {
		case strings.HasPrefix(s, ">"):
			s = strings.TrimLeft(s[1:], " \t")
		case len(s) > 1 && strings.IndexByte("-*+", s[0]) >= 0 && (s[1] == ' ' || s[1] == '\t'):
			s = strings.TrimLeft(s[1:], " \t")
		default:
			return s
		}
	}
}

// fenceMarker returns the fence character and run length starting s, or a
// zero width when s does not open with three or more backticks or tildes.
func fenceMarker(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	n := 1
	for n < len(s) && s[n] == s[0] {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return s[0], n
}

// MaskInlineCode replaces every `code span` of line, backticks included,
// with fill. Spans close on a backtick run of the opening length; an
// unclosed run is kept. Byte offsets are preserved.
func MaskInlineCode(line string, fill byte) string {
	b := []byte(line)
	for i := 0; i < len(b); {
		if b[i] != '`' {
			i++
			continue
		}
		open := backtickRun(b, i)
		end := closingRun(b, i+open, open)
		if end < 0 {
			i += open
			continue
		}
		for k := i; k < end; k++ {
			b[k] = fill
		}
		i = end
	}
	return string(b)
}

func backtickRun(b []byte, i int) int {
	n := 0
	for i+n < len(b) && b[i+n] == '`' {
		n++
	}
	return n
}

// closingRun returns the offset just past the first run of exactly n
// backticks at or after from, or -1.
func closingRun(b []byte, from, n int) int {
	for j := from; j < len(b); {
		if b[j] != '`' {
			j++
			continue
		}
		run := backtickRun(b, j)
		if run == n {
			return j + run
		}
		j += run
	}
	return -1
}
