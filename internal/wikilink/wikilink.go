// Package wikilink provides canonical scanning of wiki-links.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//	[[target#heading]]
//	![[target]]        (embed)
//
// The package does not understand code fences or inline code; callers decide
// which regions are scanned.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink found in a single line.
type Match struct {
	Target      string
	DisplayText *string
	Embed       bool
	Start       int
	End         int
	Literal     string
}

// re matches [[target]] or [[target|display]]. The target cannot contain '[' or ']'.
var re = regexp.MustCompile(`(!?)\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// FindAllInLine finds wikilinks in a single line, in order of appearance.
func FindAllInLine(line string) []Match {
	var out []Match

	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		target := strings.TrimSpace(line[m[4]:m[5]])
		if target == "" {
			continue
		}

		var display *string
		if m[6] >= 0 && m[7] >= 0 {
			d := strings.TrimSpace(line[m[6]:m[7]])
			display = &d
		}

		out = append(out, Match{
			Target:      target,
			DisplayText: display,
			Embed:       m[3] > m[2],
			Start:       m[0],
			End:         m[1],
			Literal:     line[m[0]:m[1]],
		})
	}

	return out
}
