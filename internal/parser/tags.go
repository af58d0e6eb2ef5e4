package parser

import (
	"regexp"
	"strings"
)

// tagRegex matches #tag at start of line or after whitespace. Tags may nest
// with '/' and must not start with a digit-only run, so "#1" is not a tag.
var tagRegex = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_\-/]*[\p{L}_\-/][\p{L}\p{N}_\-/]*)`)

// ExtractInlineTags returns the #tags of content in first-seen order, without
// the leading '#'. Tags inside fenced code blocks and inline code spans are
// skipped, as are markdown headings ("# Title").
func ExtractInlineTags(content string) []string {
	seen := make(map[string]bool)
	var tags []string

	var fence Fence
	for _, line := range strings.Split(content, "\n") {
		if fence.InCode(line) {
			continue
		}

		sanitizedLine := MaskInlineCode(line, ' ')
		for _, m := range tagRegex.FindAllStringSubmatch(sanitizedLine, -1) {
			tag := strings.TrimRight(m[1], "/")
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	return tags
}
