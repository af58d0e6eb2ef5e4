package grammar

import (
	"strconv"
	"strings"

	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/slugs"
)

// Render returns the token text of field f of m in the active dialect,
// or "" when the field is absent.
func (g *Grammar) Render(f model.Field, m model.TaskMetadata) string {
	if !m.Has(f) {
		return ""
	}
	if g.dialect == Dataview {
		return g.renderDataview(f, m)
	}
	return g.renderTasks(f, m)
}

func (g *Grammar) renderTasks(f model.Field, m model.TaskMetadata) string {
	switch f {
	case model.FieldTags:
		parts := make([]string, 0, len(m.Tags))
		for _, t := range m.Tags {
			parts = append(parts, "#"+tagValue(t))
		}
		return strings.Join(parts, " ")
	case model.FieldProject:
		return "#" + g.projectPrefix + "/" + tagValue(m.Project)
	case model.FieldContext:
		return g.contextPrefix + tagValue(m.Context)
	case model.FieldPriority:
		return PriorityMarker(m.Priority)
	case model.FieldDependsOn:
		return Marker(f) + " " + strings.Join(m.DependsOn, ",")
	case model.FieldRecurrence:
		return Marker(f) + " " + m.Recurrence
	case model.FieldOnCompletion:
		return Marker(f) + " " + m.OnCompletion
	case model.FieldID:
		return Marker(f) + " " + m.ID
	}
	if f.IsDate() {
		return Marker(f) + " " + dates.FormatMillis(m.Date(f), g.loc)
	}
	return ""
}

func (g *Grammar) renderDataview(f model.Field, m model.TaskMetadata) string {
	var value string
	switch f {
	case model.FieldTags:
		value = strings.Join(m.Tags, ", ")
	case model.FieldProject:
		value = m.Project
	case model.FieldContext:
		value = m.Context
	case model.FieldPriority:
		value = strconv.Itoa(m.Priority)
	case model.FieldRecurrence:
		value = m.Recurrence
	case model.FieldOnCompletion:
		value = m.OnCompletion
	case model.FieldDependsOn:
		value = strings.Join(m.DependsOn, ", ")
	case model.FieldID:
		value = m.ID
	default:
		if !f.IsDate() {
			return ""
		}
		value = dates.FormatMillis(m.Date(f), g.loc)
	}
	return "[" + g.FieldKey(f) + ":: " + value + "]"
}

// tagValue makes a value usable inside a hashtag-like token. Values that are
// already single words are kept verbatim.
func tagValue(v string) string {
	if !strings.ContainsAny(v, " \t#") {
		return v
	}
	return slugs.TagSlug(v)
}

// ParsePriority parses a dataview priority value: 1..5 or a keyword.
func ParsePriority(v string) (int, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 5 {
			return 0, false
		}
		return n, true
	}
	switch v {
	case "highest", "🔺":
		return 5, true
	case "high", "⏫":
		return 4, true
	case "medium", "🔼":
		return 3, true
	case "low", "🔽":
		return 2, true
	case "lowest", "⏬":
		return 1, true
	}
	return 0, false
}
