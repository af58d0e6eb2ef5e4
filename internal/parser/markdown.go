package parser

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aidanlsb/taskmark/internal/wikilink"
)

// WikiLinkTargets returns the targets of [[wiki-links]] in content, in
// document order. Links inside fenced blocks and inline code are skipped.
func WikiLinkTargets(content string) []string {
	var targets []string
	var fence Fence
	for _, line := range strings.Split(content, "\n") {
		if fence.InCode(line) {
			continue
		}
		for _, m := range wikilink.FindAllInLine(MaskInlineCode(line, ' ')) {
			targets = append(targets, m.Target)
		}
	}
	return targets
}

// ExtractMarkdownLinks returns the destinations of inline markdown links
// ([text](dest)) in document order, using goldmark so that links inside code
// are ignored. External URLs and in-page anchors are skipped; percent-encoded
// paths are decoded.
func ExtractMarkdownLinks(content string) []string {
	var links []string

	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		dest := string(link.Destination)
		if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
			return ast.WalkContinue, nil
		}
		if i := strings.IndexByte(dest, '#'); i >= 0 {
			dest = dest[:i]
		}
		if decoded, err := url.PathUnescape(dest); err == nil {
			dest = decoded
		}
		links = append(links, dest)
		return ast.WalkContinue, nil
	})

	return links
}

// OutboundLinks returns the targets of all wiki-links and local markdown
// links in content, without duplicates, in document order.
func OutboundLinks(content string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(target string) {
		target = strings.TrimSpace(target)
		if target == "" || seen[target] {
			return
		}
		seen[target] = true
		out = append(out, target)
	}

	for _, target := range WikiLinkTargets(content) {
		add(target)
	}
	for _, dest := range ExtractMarkdownLinks(content) {
		add(dest)
	}
	return out
}
