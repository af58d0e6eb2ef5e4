package codec

import (
	"regexp"

	"github.com/aidanlsb/taskmark/internal/grammar"
	"github.com/aidanlsb/taskmark/internal/parser"
	"github.com/aidanlsb/taskmark/internal/wikilink"
)

// mdLinkRe matches inline markdown links and images: [text](url), ![alt](src).
var mdLinkRe = regexp.MustCompile(`!?\[[^\]]*\]\([^)]*\)`)

// Mask overwrites wiki-links, markdown links and inline code spans in s with
// grammar.Mask. The result has the same length as s, so offsets found in the
// masked string are valid in the original.
func Mask(s string) string {
	b := []byte(parser.MaskInlineCode(s, grammar.Mask))

	for _, m := range wikilink.FindAllInLine(string(b)) {
		fill(b, m.Start, m.End)
	}
	for _, loc := range mdLinkRe.FindAllIndex(b, -1) {
		fill(b, loc[0], loc[1])
	}
	return string(b)
}

func fill(b []byte, start, end int) {
	for i := start; i < end && i < len(b); i++ {
		b[i] = grammar.Mask
	}
}
