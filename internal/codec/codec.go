// Package codec converts between task lines and structured task metadata.
//
// Decoding locates the trailing token run of a checkbox line after masking
// wiki-links, markdown links and inline code, so metadata-looking text inside
// them always stays part of the content. Encoding writes a metadata record as
// a canonical token string in the configured dialect.
package codec

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/grammar"
	"github.com/aidanlsb/taskmark/internal/model"
)

// checkboxRe matches "<indent><bullet> [<mark>] ". The mark is a single rune.
var checkboxRe = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+\[(.)\](?:\s+|$)`)

// Codec encodes and decodes task metadata for one configuration.
type Codec struct {
	g   *grammar.Grammar
	cfg config.Config
}

// New creates a codec for cfg.
func New(cfg config.Config) *Codec {
	return &Codec{g: grammar.New(cfg), cfg: cfg}
}

// Grammar returns the token grammar the codec uses.
func (c *Codec) Grammar() *grammar.Grammar { return c.g }

// Config returns the configuration the codec was built with.
func (c *Codec) Config() config.Config { return c.cfg }

// Line is a decoded task line. All offsets are byte offsets into Raw.
type Line struct {
	Raw    string
	IsTask bool

	Indent string
	Bullet string
	Mark   string

	// MarkStart is the offset of the mark rune inside "[ ]".
	MarkStart int

	// Content spans [ContentStart, ContentEnd), without surrounding whitespace.
	ContentStart int
	ContentEnd   int
	Content      string

	// Tail is the trailing token run including its leading whitespace,
	// spanning [ContentEnd, TailEnd).
	TailEnd int
	Tail    string

	// BlockRef is the trailing " ^id" suffix, or "" when absent.
	BlockRefStart int
	BlockRef      string

	// Tokens are all tokens of the trailing run in line order.
	Tokens []grammar.Token

	// Extras are tokens that carry no metadata value: mentions, duplicates
	// and values that failed to parse. They are kept when a run is rewritten.
	Extras []grammar.Token

	Metadata model.TaskMetadata
}

// Token returns the first known token of field f, if any.
func (l Line) Token(f model.Field) (grammar.Token, bool) {
	for _, t := range l.Tokens {
		if t.Known && t.Field == f {
			return t, true
		}
	}
	return grammar.Token{}, false
}

// HasToken reports whether the trailing run carries a token for f.
func (l Line) HasToken(f model.Field) bool {
	_, ok := l.Token(f)
	return ok
}

// Decode parses a single line. Lines without a checkbox decode softly: the
// whole line is content and no metadata is extracted.
func (c *Codec) Decode(line string) Line {
	out := Line{Raw: line}

	m := checkboxRe.FindStringSubmatchIndex(line)
	if m == nil {
		out.ContentEnd = len(line)
		out.Content = line
		out.TailEnd = len(line)
		out.BlockRefStart = len(line)
		return out
	}

	out.IsTask = true
	out.Indent = line[m[2]:m[3]]
	out.Bullet = line[m[4]:m[5]]
	out.Mark = line[m[6]:m[7]]
	out.MarkStart = m[6]
	out.ContentStart = m[1]

	c.decodeBody(&out, m[1])
	return out
}

// decodeBody fills content, tail, block reference and metadata from
// line[start:].
func (c *Codec) decodeBody(out *Line, start int) {
	line := out.Raw
	body := line[start:]
	masked := Mask(body)

	end := len(body)
	if br := c.g.BlockRefStart(masked); br >= 0 {
		out.BlockRefStart = start + br
		out.BlockRef = body[br:]
		end = br
	} else {
		out.BlockRefStart = len(line)
	}

	runStart := c.g.TrailingStart(masked[:end])
	if runStart < 0 {
		runStart = end
	} else {
		out.Tokens = c.g.Tokenize(masked[runStart:end], start+runStart)
	}

	content := strings.TrimRight(body[:runStart], " \t")
	out.Content = content
	out.ContentEnd = start + len(content)
	out.TailEnd = start + end
	out.Tail = line[out.ContentEnd:out.TailEnd]

	out.Metadata, out.Extras = c.apply(out.Tokens)
}

// DecodeTrailing decodes a bare token string, such as the output of Encode.
// Text before the trailing run is ignored.
func (c *Codec) DecodeTrailing(s string) (model.TaskMetadata, []grammar.Token) {
	masked := Mask(s)
	start := c.g.TrailingStart(masked)
	if start < 0 {
		return model.TaskMetadata{}, nil
	}
	return c.apply(c.g.Tokenize(masked[start:], start))
}

// Strip splits a line into its content and the literal trailing token run
// (without the block reference). Non-task lines return the whole line.
func (c *Codec) Strip(line string) (content, tail string) {
	l := c.Decode(line)
	return l.Content, strings.TrimSpace(l.Tail)
}

// Encode renders m as a trailing token string in canonical order.
// Absent fields produce nothing; an empty record encodes to "".
func (c *Codec) Encode(m model.TaskMetadata) string {
	parts := make([]string, 0, len(model.CanonicalFields))
	for _, f := range model.CanonicalFields {
		if s := c.g.Render(f, m); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// EncodeWithExtras renders m followed by the literal text of extras.
func (c *Codec) EncodeWithExtras(m model.TaskMetadata, extras []grammar.Token, raw string) string {
	s := c.Encode(m)
	for _, t := range extras {
		text := raw[t.Start:t.End]
		if s == "" {
			s = text
		} else {
			s += " " + text
		}
	}
	return s
}

// ParseTask decodes line into a task. index is the 0-based line number.
func (c *Codec) ParseTask(line string, index int) (model.Task, bool) {
	l := c.Decode(line)
	if !l.IsTask {
		return model.Task{}, false
	}
	md := l.Metadata
	md.Source = model.SourceLine
	return model.Task{
		Line:             index,
		Content:          l.Content,
		Status:           l.Mark,
		Completed:        c.cfg.IsCompleted(l.Mark),
		OriginalMarkdown: line,
		Metadata:         md,
	}, true
}

// apply folds tokens into a metadata record. Tokens that cannot contribute a
// value are returned as extras.
func (c *Codec) apply(tokens []grammar.Token) (model.TaskMetadata, []grammar.Token) {
	var md model.TaskMetadata
	var extras []grammar.Token
	for _, t := range tokens {
		if !c.applyToken(&md, t) {
			extras = append(extras, t)
		}
	}
	return md, extras
}

func (c *Codec) applyToken(md *model.TaskMetadata, t grammar.Token) bool {
	if !t.Known {
		return false
	}

	if t.Field == model.FieldTags {
		return c.applyTags(md, t)
	}
	if md.Has(t.Field) {
		return false
	}

	if t.Field.IsDate() {
		d, err := dates.ParseDateIn(t.Value, c.g.Location())
		if err != nil {
			return false
		}
		md.SetDate(t.Field, d.UnixMilli())
		return true
	}

	v := strings.TrimSpace(t.Value)
	if v == "" {
		return false
	}

	switch t.Field {
	case model.FieldPriority:
		p, ok := grammar.ParsePriority(v)
		if !ok {
			return false
		}
		md.Priority = p
	case model.FieldProject:
		md.Project = v
	case model.FieldContext:
		md.Context = v
	case model.FieldRecurrence:
		md.Recurrence = v
	case model.FieldOnCompletion:
		md.OnCompletion = v
	case model.FieldID:
		md.ID = v
	case model.FieldDependsOn:
		ids := splitList(v)
		if len(ids) == 0 {
			return false
		}
		md.DependsOn = ids
	default:
		return false
	}
	return true
}

func (c *Codec) applyTags(md *model.TaskMetadata, t grammar.Token) bool {
	var values []string
	if t.Kind == grammar.KindField {
		for _, v := range splitList(t.Value) {
			values = append(values, strings.TrimPrefix(v, "#"))
		}
	} else {
		values = []string{t.Value}
	}

	added := false
	for _, v := range values {
		before := len(md.Tags)
		md.AddTag(v)
		if len(md.Tags) > before {
			added = true
		}
	}
	return added
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
