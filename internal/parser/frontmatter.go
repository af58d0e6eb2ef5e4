// Package parser handles the parts of markdown documents tasks depend on:
// YAML frontmatter, fenced and inline code, tags and outbound links.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents parsed frontmatter data.
type Frontmatter struct {
	// Fields are the decoded top-level YAML fields.
	Fields map[string]any

	// Raw is the raw frontmatter content.
	Raw string

	// EndLine is the line where frontmatter ends (1-indexed).
	EndLine int
}

// FrontmatterBounds returns the opening and closing frontmatter line indices.
// It only detects frontmatter when the first line is '---'.
// If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// ParseFrontmatter parses YAML frontmatter from markdown content.
// Returns nil if no frontmatter is found.
func ParseFrontmatter(content string) (*Frontmatter, error) {
	lines := strings.Split(content, "\n")

	_, endLine, ok := FrontmatterBounds(lines)
	if !ok {
		return nil, nil
	}
	if endLine == -1 {
		return nil, nil // No closing ---
	}

	frontmatterContent := strings.Join(lines[1:endLine], "\n")

	var yamlData map[string]any
	if err := yaml.Unmarshal([]byte(frontmatterContent), &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}

	// YAML can decode an empty document (or comments/whitespace only) into a nil map.
	// We still consider this "frontmatter present" because it affects body line offsets.
	if yamlData == nil {
		yamlData = map[string]any{}
	}

	return &Frontmatter{
		Fields:  yamlData,
		Raw:     frontmatterContent,
		EndLine: endLine + 1, // +1 for 1-indexed lines
	}, nil
}

// Tags returns the tags listed in the frontmatter "tags" (or "tag") field,
// without a leading '#'. Both a YAML list and a comma or space separated
// string are accepted.
func (fm *Frontmatter) Tags() []string {
	if fm == nil {
		return nil
	}
	raw, ok := fm.Fields["tags"]
	if !ok {
		raw = fm.Fields["tag"]
	}

	var values []string
	switch v := raw.(type) {
	case string:
		values = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}

	var tags []string
	for _, v := range values {
		if v = strings.TrimPrefix(strings.TrimSpace(v), "#"); v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

// SplitBody returns the document body after the frontmatter and the 0-based
// line index the body starts at.
func SplitBody(content string) (body string, startLine int) {
	lines := strings.Split(content, "\n")
	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return content, 0
	}
	return strings.Join(lines[endLine+1:], "\n"), endLine + 1
}

// SetFrontmatterField sets key to value in the frontmatter of content,
// creating the frontmatter when the document has none. Other keys keep their
// order and formatting as far as YAML re-encoding allows.
func SetFrontmatterField(content, key string, value any) (string, error) {
	lines := strings.Split(content, "\n")
	_, endLine, ok := FrontmatterBounds(lines)
	if ok && endLine == -1 {
		return "", fmt.Errorf("frontmatter is not closed")
	}

	var doc yaml.Node
	if ok {
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:endLine], "\n")), &doc); err != nil {
			return "", fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
		}
	}

	mapping := documentMapping(&doc)
	if mapping == nil {
		return "", fmt.Errorf("frontmatter is not a mapping")
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}

	replaced := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = &valueNode
			replaced = true
			break
		}
	}
	if !replaced {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		mapping.Content = append(mapping.Content, keyNode, &valueNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	fm := strings.TrimRight(buf.String(), "\n")

	var out strings.Builder
	out.WriteString("---\n")
	out.WriteString(fm)
	out.WriteString("\n---")
	if ok {
		if rest := lines[endLine+1:]; len(rest) > 0 {
			out.WriteString("\n")
			out.WriteString(strings.Join(rest, "\n"))
		}
	} else {
		out.WriteString("\n")
		out.WriteString(content)
	}
	return out.String(), nil
}

// documentMapping returns the top-level mapping of doc, creating an empty
// document when doc is zero.
func documentMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if doc.Kind != yaml.DocumentNode {
		return nil
	}
	if len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	return m
}
