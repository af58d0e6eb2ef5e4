// Package mutate rewrites task lines.
//
// A mutation touches only what it must: a status change replaces the mark
// byte-for-byte and inserts or removes date stamps; a content change swaps the
// content and keeps the trailing token run verbatim. Only an update that names
// metadata fields regenerates the run.
package mutate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aidanlsb/taskmark/internal/codec"
	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/grammar"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/recurrence"
)

var (
	// ErrNotTask is returned when the line has no checkbox.
	ErrNotTask = errors.New("line is not a task")

	// ErrInvalidStatus is returned for a status that is not a single character.
	ErrInvalidStatus = errors.New("status must be a single character")
)

// Update is a partial change to a task line. Nil pointers leave the
// corresponding part untouched.
type Update struct {
	// Status is the requested mark. It wins over Completed.
	Status *string

	// Completed requests the completed mark, or the not-started mark when
	// false and the task is currently completed.
	Completed *bool

	// Content replaces the task text. Empty content is ignored.
	Content *string

	// Metadata supplies values for Fields.
	Metadata model.TaskMetadata

	// Fields lists the metadata fields to take from Metadata. A listed field
	// that is absent in Metadata is removed.
	Fields []model.Field
}

// Result is the outcome of a mutation.
type Result struct {
	// Lines replaces the original line: the updated line, followed by the
	// next occurrence when a recurring task was completed.
	Lines   []string
	Changed bool

	// Next is set when a recurrence sibling was created.
	Next *recurrence.Resolution
}

// Mutator applies updates to task lines.
type Mutator struct {
	codec    *codec.Codec
	resolver *recurrence.Resolver
	cfg      config.Config

	// projectRe matches an inline project hashtag with its leading whitespace.
	projectRe *regexp.Regexp

	// Now returns the current time used for date stamps. Defaults to time.Now.
	Now func() time.Time
}

// New creates a mutator. The resolver computes next occurrences of
// recurring tasks.
func New(c *codec.Codec, r *recurrence.Resolver) *Mutator {
	prefix := regexp.QuoteMeta(c.Grammar().ProjectPrefix())
	return &Mutator{
		codec:     c,
		resolver:  r,
		cfg:       c.Config(),
		projectRe: regexp.MustCompile(`(?:^|[ \t]+)#` + prefix + `/[^\s\x00]+`),
		Now:       time.Now,
	}
}

func (m *Mutator) today() time.Time {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return dates.StartOfDay(now().In(m.codec.Grammar().Location()))
}

// Apply applies u to line.
func (m *Mutator) Apply(line string, u Update) (Result, error) {
	l := m.codec.Decode(line)
	if !l.IsTask {
		return Result{}, ErrNotTask
	}

	out := line
	if len(u.Fields) > 0 {
		out = m.regenerate(l, u)
	} else if u.Content != nil {
		out = replaceContent(l, *u.Content)
	}

	mark, err := m.requestedMark(l.Mark, u)
	if err != nil {
		return Result{}, err
	}

	res := Result{Lines: []string{out}}
	if mark != l.Mark {
		res = m.transition(m.codec.Decode(out), mark)
	}
	res.Changed = len(res.Lines) != 1 || res.Lines[0] != line
	return res, nil
}

func (m *Mutator) requestedMark(current string, u Update) (string, error) {
	switch {
	case u.Status != nil:
		if utf8.RuneCountInString(*u.Status) != 1 {
			return "", fmt.Errorf("%w: %q", ErrInvalidStatus, *u.Status)
		}
		return *u.Status, nil
	case u.Completed != nil:
		if *u.Completed {
			if m.cfg.IsCompleted(current) {
				return current, nil
			}
			return m.cfg.TaskStatusCompletedMark, nil
		}
		if m.cfg.IsCompleted(current) {
			return m.cfg.NotStartedMark(), nil
		}
	}
	return current, nil
}

// replaceContent swaps the content of l and keeps everything after it.
func replaceContent(l codec.Line, content string) string {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	if content == "" {
		return l.Raw
	}
	rest := l.Raw[l.ContentEnd:]
	if rest != "" && !startsWithSpace(rest) {
		rest = " " + rest
	}
	return l.Raw[:l.ContentStart] + content + rest
}

// regenerate rebuilds the trailing run from the merged metadata.
func (m *Mutator) regenerate(l codec.Line, u Update) string {
	merged := model.Merge(l.Metadata, u.Metadata, u.Fields)

	content := l.Content
	if u.Content != nil {
		if c := strings.TrimSpace(strings.ReplaceAll(*u.Content, "\n", " ")); c != "" {
			content = c
		}
	}
	if containsField(u.Fields, model.FieldProject) {
		content = m.scrubProject(content)
	}

	var extras []grammar.Token
	for _, t := range l.Extras {
		if t.Known && containsField(u.Fields, t.Field) {
			continue
		}
		extras = append(extras, t)
	}
	tail := m.codec.EncodeWithExtras(merged, extras, l.Raw)

	body := joinNonEmpty(content, tail)
	return l.Raw[:l.ContentStart] + body + l.BlockRef
}

// scrubProject removes inline project hashtags from content, outside masked
// regions.
func (m *Mutator) scrubProject(content string) string {
	masked := codec.Mask(content)

	var b strings.Builder
	last := 0
	for _, loc := range m.projectRe.FindAllStringIndex(masked, -1) {
		b.WriteString(content[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(content[last:])
	return strings.TrimSpace(b.String())
}

// transition replaces the mark of l with mark and applies date stamping.
func (m *Mutator) transition(l codec.Line, mark string) Result {
	prevKind := m.cfg.Kind(l.Mark)
	newKind := m.cfg.Kind(mark)
	policy := m.cfg.AutoDateManager
	today := m.today()

	line := l.Raw[:l.MarkStart] + mark + l.Raw[l.MarkStart+len(l.Mark):]
	l = m.codec.Decode(line)

	switch {
	case newKind == config.StatusCompleted && prevKind != config.StatusCompleted:
		if policy.ManageCompletedDate && !l.HasToken(model.FieldCompletion) {
			line = m.insertStamp(l, model.FieldCompletion, today)
			l = m.codec.Decode(line)
		}
	case newKind == config.StatusCancelled && prevKind != config.StatusCancelled:
		if policy.ManageCancelledDate && !l.HasToken(model.FieldCancelled) {
			line = m.insertStamp(l, model.FieldCancelled, today)
			l = m.codec.Decode(line)
		}
	case newKind == config.StatusInProgress && (prevKind == config.StatusNotStarted || prevKind == config.StatusPlanned):
		if policy.ManageStartDate && !l.HasToken(model.FieldStart) {
			line = m.insertStamp(l, model.FieldStart, today)
			l = m.codec.Decode(line)
		}
	}

	if prevKind == config.StatusCompleted && newKind != config.StatusCompleted && policy.ManageCompletedDate {
		line = removeToken(l, model.FieldCompletion)
		l = m.codec.Decode(line)
	}
	if prevKind == config.StatusCancelled && newKind != config.StatusCancelled && policy.ManageCancelledDate {
		line = removeToken(l, model.FieldCancelled)
		l = m.codec.Decode(line)
	}

	res := Result{Lines: []string{line}}
	if newKind == config.StatusCompleted && prevKind != config.StatusCompleted && l.Metadata.Recurrence != "" {
		next, sibling := m.sibling(l, today)
		res.Lines = append(res.Lines, sibling)
		res.Next = &next
	}
	return res
}

// insertStamp inserts a date token for f before the first token that sorts
// after f, or at the end of the run. A block reference always stays last.
func (m *Mutator) insertStamp(l codec.Line, f model.Field, day time.Time) string {
	var md model.TaskMetadata
	md.SetDate(f, day.UnixMilli())
	text := m.codec.Grammar().Render(f, md)

	for _, t := range l.Tokens {
		if t.Known && t.Field.Rank() > f.Rank() {
			return l.Raw[:t.Start] + text + " " + l.Raw[t.Start:]
		}
	}

	pos := l.ContentEnd
	if n := len(l.Tokens); n > 0 {
		pos = l.Tokens[n-1].End
	}
	sep := " "
	if pos > 0 && (l.Raw[pos-1] == ' ' || l.Raw[pos-1] == '\t') {
		sep = ""
	}
	return l.Raw[:pos] + sep + text + l.Raw[pos:]
}

// removeToken deletes the first token of field f together with the
// whitespace before it.
func removeToken(l codec.Line, f model.Field) string {
	t, ok := l.Token(f)
	if !ok {
		return l.Raw
	}
	start := t.Start
	for start > l.ContentEnd && (l.Raw[start-1] == ' ' || l.Raw[start-1] == '\t') {
		start--
	}
	return l.Raw[:start] + l.Raw[t.End:]
}

func containsField(fields []model.Field, f model.Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}
