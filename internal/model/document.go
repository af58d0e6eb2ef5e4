package model

// DocumentMeta is what a document store reports about one document:
// its frontmatter fields, tags and outbound link targets.
type DocumentMeta struct {
	Path   string         `json:"path"`
	Fields map[string]any `json:"fields,omitempty"`
	Tags   []string       `json:"tags,omitempty"`
	Links  []string       `json:"links,omitempty"`
}
