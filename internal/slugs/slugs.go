// Package slugs provides the slug and file-name helpers used when writing
// project tags and renaming documents.
//
// Two strategies exist:
//   - Tag slugs: lowercase, dash-separated components built on gosimple/slug,
//     used for "#project/<slug>" tokens. Hierarchy separators ('/') survive.
//   - File names: human-readable names with only path-hostile characters removed,
//     used when a synthetic task's content renames its document.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// ComponentSlug converts a single name component into a tag-safe slug.
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(s), "-"))
	}
	return slugged
}

// TagSlug slugifies each '/'-separated component of a hierarchical tag value.
//
//	"Work/Mobile App" -> "work/mobile-app"
func TagSlug(value string) string {
	parts := strings.Split(strings.Trim(value, "/ "), "/")
	out := parts[:0]
	for _, part := range parts {
		if s := ComponentSlug(part); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// fileNameReplacer drops characters that are invalid in file names or that
// would turn a file name into link syntax.
var fileNameReplacer = strings.NewReplacer(
	"/", " ", "\\", " ", ":", " ", "*", "", "?", "", "\"", "", "<", "", ">", "",
	"|", " ", "#", "", "^", "", "[", "", "]", "",
)

// FileName converts free text into a document base name (without extension).
// Case and inner spaces are preserved; runs of whitespace collapse to one space.
func FileName(text string) string {
	cleaned := fileNameReplacer.Replace(text)
	return strings.Join(strings.Fields(cleaned), " ")
}
