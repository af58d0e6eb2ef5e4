package grammar

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aidanlsb/taskmark/internal/model"
)

// Mask is the filler byte written over masked regions. Token value classes
// exclude it, so masked text can never become part of a token.
const Mask = '\x00'

// TokenKind identifies the surface shape of a token.
type TokenKind int

const (
	KindPriority TokenKind = iota // 🔼
	KindDate                      // 📅 2024-01-15
	KindMarker                    // 🔁 every week, 🆔 abc
	KindField                     // [due:: 2024-01-15]
	KindProject                   // #project/app
	KindContext                   // @home
	KindTag                       // #tag
	KindMention                   // @someone (when the context prefix is not '@')
)

// Token is one trailing metadata token.
type Token struct {
	Kind  TokenKind
	Field model.Field
	// Known is false for tokens that carry no field (mentions).
	Known bool
	// Key is the dataview key or the emoji marker.
	Key   string
	Value string
	// Start and End are byte offsets of the token text.
	Start int
	End   int
}

var priorityEmoji = [6]string{"", "⏬", "🔽", "🔼", "⏫", "🔺"}

// Primary marker first; the others are accepted on decode only.
var dateMarkers = map[model.Field][]string{
	model.FieldCreated:    {"➕"},
	model.FieldStart:      {"🛫"},
	model.FieldScheduled:  {"⏳", "⌛"},
	model.FieldDue:        {"📅", "📆", "🗓"},
	model.FieldCompletion: {"✅"},
	model.FieldCancelled:  {"❌"},
}

var multiWordMarkers = map[model.Field]string{
	model.FieldRecurrence:   "🔁",
	model.FieldOnCompletion: "🏁",
}

var singleWordMarkers = map[model.Field]string{
	model.FieldDependsOn: "⛔",
	model.FieldID:        "🆔",
}

var markerFields = func() map[string]model.Field {
	out := make(map[string]model.Field)
	for f, ms := range dateMarkers {
		for _, m := range ms {
			out[m] = f
		}
	}
	for f, m := range multiWordMarkers {
		out[m] = f
	}
	for f, m := range singleWordMarkers {
		out[m] = f
	}
	return out
}()

// PriorityMarker returns the emoji of a priority level (1..5), or "".
func PriorityMarker(level int) string {
	if level < 1 || level > 5 {
		return ""
	}
	return priorityEmoji[level]
}

// Marker returns the primary emoji of a field, or "" when the field has none.
func Marker(f model.Field) string {
	if ms, ok := dateMarkers[f]; ok {
		return ms[0]
	}
	if m, ok := multiWordMarkers[f]; ok {
		return m
	}
	return singleWordMarkers[f]
}

func allMarkerRunes() string {
	var b strings.Builder
	for _, e := range priorityEmoji[1:] {
		b.WriteString(e)
	}
	keys := make([]string, 0, len(markerFields))
	for m := range markerFields {
		keys = append(keys, m)
	}
	sort.Strings(keys)
	for _, m := range keys {
		b.WriteString(m)
	}
	return b.String()
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return strings.Join(quoted, "|")
}

func markersOf(m map[model.Field]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// tokenAlternation returns the alternation of every token shape, with
// capture groups in the order Tokenize relies on:
//
//	1 priority emoji
//	2,3 date marker, date
//	4,5 multi-word marker, value
//	6,7 single-word marker, value
//	8,9 dataview key, value
//	10 project slug
//	11 context value
//	12 tag
//	13 mention
func (g *Grammar) tokenAlternation() string {
	const vs = `\x{FE0F}?`
	markers := allMarkerRunes()

	var dates []string
	for _, ms := range dateMarkers {
		dates = append(dates, ms...)
	}
	sort.Strings(dates)

	keys := make([]string, 0, len(g.keyFields))
	for k := range g.keyFields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	word := `[^\s#@\[\x00` + markers + `][^\s\x00` + markers + `]*`
	words := word + `(?:[ \t]+` + word + `)*`

	parts := []string{
		`(` + quoteAll(priorityEmoji[1:]) + `)` + vs,
		`(` + quoteAll(dates) + `)` + vs + `[ \t]*(\d{4}-\d{2}-\d{2})`,
		`(` + quoteAll(markersOf(multiWordMarkers)) + `)` + vs + `[ \t]*(` + words + `)`,
		`(` + quoteAll(markersOf(singleWordMarkers)) + `)` + vs + `[ \t]*(` + word + `)`,
		`\[(` + quoteAll(keys) + `)::[ \t]*([^\]\x00]*)\]`,
		`#` + regexp.QuoteMeta(g.projectPrefix) + `/([^\s\x00]+)`,
		regexp.QuoteMeta(g.contextPrefix) + `([^\s@#\x00]+)`,
		`#([^\s#\x00]+)`,
		`@([^\s@\x00]+)`,
	}
	return strings.Join(parts, "|")
}

// Tokenize splits a trailing run into tokens. Offsets are relative to run
// plus base. run must be masked text as located by TrailingStart.
func (g *Grammar) Tokenize(run string, base int) []Token {
	var out []Token
	pos := 0
	for pos < len(run) {
		// Skip separators.
		rest := run[pos:]
		trimmed := strings.TrimLeft(rest, " \t")
		pos += len(rest) - len(trimmed)
		if pos >= len(run) {
			break
		}

		m := g.tokenRe.FindStringSubmatchIndex(run[pos:])
		if m == nil {
			// Not reachable for runs located by TrailingStart; stop rather than loop.
			break
		}
		tok := g.classify(run[pos:], m)
		tok.Start = base + pos + m[0]
		tok.End = base + pos + m[1]
		out = append(out, tok)
		pos += m[1]
	}
	return out
}

func group(s string, m []int, n int) (string, bool) {
	if m[2*n] < 0 {
		return "", false
	}
	return s[m[2*n]:m[2*n+1]], true
}

func (g *Grammar) classify(s string, m []int) Token {
	if e, ok := group(s, m, 1); ok {
		level := 0
		for i, p := range priorityEmoji {
			if p == e {
				level = i
			}
		}
		return Token{Kind: KindPriority, Field: model.FieldPriority, Known: true, Key: e, Value: strconv.Itoa(level)}
	}
	if e, ok := group(s, m, 2); ok {
		v, _ := group(s, m, 3)
		return Token{Kind: KindDate, Field: markerFields[e], Known: true, Key: e, Value: v}
	}
	if e, ok := group(s, m, 4); ok {
		v, _ := group(s, m, 5)
		return Token{Kind: KindMarker, Field: markerFields[e], Known: true, Key: e, Value: strings.TrimSpace(v)}
	}
	if e, ok := group(s, m, 6); ok {
		v, _ := group(s, m, 7)
		return Token{Kind: KindMarker, Field: markerFields[e], Known: true, Key: e, Value: v}
	}
	if k, ok := group(s, m, 8); ok {
		v, _ := group(s, m, 9)
		return Token{Kind: KindField, Field: g.keyFields[k], Known: true, Key: k, Value: strings.TrimSpace(v)}
	}
	if v, ok := group(s, m, 10); ok {
		return Token{Kind: KindProject, Field: model.FieldProject, Known: true, Key: "#" + g.projectPrefix + "/", Value: v}
	}
	if v, ok := group(s, m, 11); ok {
		return Token{Kind: KindContext, Field: model.FieldContext, Known: true, Key: g.contextPrefix, Value: v}
	}
	if v, ok := group(s, m, 12); ok {
		return Token{Kind: KindTag, Field: model.FieldTags, Known: true, Key: "#", Value: v}
	}
	v, _ := group(s, m, 13)
	return Token{Kind: KindMention, Key: "@", Value: v}
}
