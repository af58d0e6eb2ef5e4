// Package grammar defines the surface syntax of inline task metadata.
//
// Two dialects share one semantic field set:
//
//	tasks:    Buy milk #shopping 🔼 🔁 every week 📅 2024-01-15
//	dataview: Buy milk [tags:: shopping] [priority:: 3] [repeat:: every week] [due:: 2024-01-15]
//
// A Grammar is built once from configuration and passed by reference. All
// regular expressions are compiled in New; nothing is rebuilt per call.
package grammar

import (
	"regexp"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
)

// Dialect selects the surface syntax used when encoding.
type Dialect int

const (
	// Tasks is the emoji/hashtag dialect.
	Tasks Dialect = iota
	// Dataview is the bracketed "[key:: value]" dialect.
	Dataview
)

func (d Dialect) String() string {
	if d == Dataview {
		return config.FormatDataview
	}
	return config.FormatTasks
}

// ParseDialect maps a prefer_metadata_format value to a Dialect.
func ParseDialect(format string) Dialect {
	if format == config.FormatDataview {
		return Dataview
	}
	return Tasks
}

// Grammar is the token grammar for one configuration.
type Grammar struct {
	dialect Dialect
	loc     *time.Location

	// Dataview keys for the configurable fields.
	projectKey string
	contextKey string

	// Tasks-dialect prefixes: "#<projectPrefix>/<slug>" and "<contextPrefix><value>".
	projectPrefix string
	contextPrefix string

	keyFields map[string]model.Field

	tokenRe    *regexp.Regexp
	trailingRe *regexp.Regexp
	blockRefRe *regexp.Regexp
}

// New builds the grammar for cfg.
func New(cfg config.Config) *Grammar {
	g := &Grammar{
		dialect:       ParseDialect(cfg.PreferMetadataFormat),
		loc:           cfg.Location(),
		projectKey:    orDefault(cfg.ProjectTagPrefix.Dataview, "project"),
		contextKey:    orDefault(cfg.ContextTagPrefix.Dataview, "context"),
		projectPrefix: strings.Trim(orDefault(cfg.ProjectTagPrefix.Tasks, "project"), "#/"),
		contextPrefix: orDefault(cfg.ContextTagPrefix.Tasks, "@"),
	}

	g.keyFields = map[string]model.Field{
		"tags":         model.FieldTags,
		g.projectKey:   model.FieldProject,
		g.contextKey:   model.FieldContext,
		"priority":     model.FieldPriority,
		"repeat":       model.FieldRecurrence,
		"recurrence":   model.FieldRecurrence,
		"created":      model.FieldCreated,
		"start":        model.FieldStart,
		"scheduled":    model.FieldScheduled,
		"due":          model.FieldDue,
		"completion":   model.FieldCompletion,
		"cancelled":    model.FieldCancelled,
		"onCompletion": model.FieldOnCompletion,
		"dependsOn":    model.FieldDependsOn,
		"id":           model.FieldID,
	}

	alt := g.tokenAlternation()
	g.tokenRe = regexp.MustCompile(`^(?:` + alt + `)`)
	g.trailingRe = regexp.MustCompile(`(?:\s+(?:` + alt + `))+\s*$`)
	g.blockRefRe = regexp.MustCompile(`\s+\^[A-Za-z0-9-]+\s*$`)
	return g
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

// Dialect returns the dialect used for encoding.
func (g *Grammar) Dialect() Dialect { return g.dialect }

// Location returns the timezone date tokens are written in.
func (g *Grammar) Location() *time.Location { return g.loc }

// ProjectKey returns the dataview key of the project field.
func (g *Grammar) ProjectKey() string { return g.projectKey }

// ContextKey returns the dataview key of the context field.
func (g *Grammar) ContextKey() string { return g.contextKey }

// ProjectPrefix returns the tasks-dialect project tag prefix (without '#' or '/').
func (g *Grammar) ProjectPrefix() string { return g.projectPrefix }

// ContextPrefix returns the tasks-dialect context marker prefix.
func (g *Grammar) ContextPrefix() string { return g.contextPrefix }

// KeyField resolves a dataview key.
func (g *Grammar) KeyField(key string) (model.Field, bool) {
	f, ok := g.keyFields[key]
	return f, ok
}

// FieldKey returns the canonical dataview key of a field.
func (g *Grammar) FieldKey(f model.Field) string {
	switch f {
	case model.FieldProject:
		return g.projectKey
	case model.FieldContext:
		return g.contextKey
	case model.FieldRecurrence:
		return "repeat"
	}
	return f.String()
}

// TrailingStart returns the offset where the trailing token run of s starts,
// or -1 when s does not end in tokens. The run includes its leading whitespace.
// s must already be masked.
func (g *Grammar) TrailingStart(s string) int {
	// A leading space lets a line made only of tokens match.
	loc := g.trailingRe.FindStringIndex(" " + s)
	if loc == nil {
		return -1
	}
	if loc[0] == 0 {
		return 0
	}
	return loc[0] - 1
}

// BlockRefStart returns the offset of a trailing " ^block-id" in s, or -1.
// The returned offset points at the whitespace before '^'.
func (g *Grammar) BlockRefStart(s string) int {
	loc := g.blockRefRe.FindStringIndex(" " + s)
	if loc == nil {
		return -1
	}
	if loc[0] == 0 {
		return 0
	}
	return loc[0] - 1
}
