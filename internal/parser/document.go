package parser

// ParsedDocument is the task-relevant view of a markdown document.
type ParsedDocument struct {
	Frontmatter *Frontmatter // nil when the document has none
	Body        string       // Content after the frontmatter
	BodyLine    int          // 0-based line index the body starts at

	// Tags are frontmatter tags followed by inline body tags, without duplicates.
	Tags []string

	// Links are outbound wiki-link and markdown-link targets.
	Links []string
}

// Fields returns the frontmatter fields, or an empty map.
func (d *ParsedDocument) Fields() map[string]any {
	if d.Frontmatter == nil {
		return map[string]any{}
	}
	return d.Frontmatter.Fields
}

// ParseDocument parses a markdown document.
func ParseDocument(content string) (*ParsedDocument, error) {
	frontmatter, err := ParseFrontmatter(content)
	if err != nil {
		return nil, err
	}

	body, bodyLine := SplitBody(content)
	if frontmatter == nil {
		body, bodyLine = content, 0
	}

	var tags []string
	seen := make(map[string]bool)
	for _, group := range [][]string{frontmatter.Tags(), ExtractInlineTags(body)} {
		for _, tag := range group {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	return &ParsedDocument{
		Frontmatter: frontmatter,
		Body:        body,
		BodyLine:    bodyLine,
		Tags:        tags,
		Links:       OutboundLinks(body),
	}, nil
}
