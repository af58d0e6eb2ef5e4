// Package derive synthesizes file-level tasks from a document's front matter
// fields and tags.
package derive

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
)

// Field error kinds.
const (
	KindField = "field"
	KindTag   = "tag"
)

// FieldError reports a front matter field or tag that could not be turned
// into task metadata. The affected task is still produced without it.
type FieldError struct {
	Kind string
	Name string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Result holds the derived tasks of one document and the per-item errors.
type Result struct {
	Tasks  []model.Task
	Errors []*FieldError
}

type fieldSpec struct {
	name string
	role FieldRole
}

// Deriver turns document metadata into synthetic tasks.
type Deriver struct {
	cfg    config.Config
	loc    *time.Location
	fields []fieldSpec

	Logger *slog.Logger
}

// New creates a deriver for cfg. Field roles are classified once here.
func New(cfg config.Config) *Deriver {
	d := &Deriver{
		cfg:    cfg,
		loc:    cfg.Location(),
		Logger: slog.Default(),
	}
	for _, name := range cfg.FileParsing.MetadataFieldsToParseAsTasks {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d.fields = append(d.fields, fieldSpec{name: name, role: ClassifyField(name)})
	}
	return d
}

// Role returns the role of a configured metadata field, and false when the
// field is not configured for task parsing.
func (d *Deriver) Role(field string) (FieldRole, bool) {
	for _, f := range d.fields {
		if f.name == field {
			return f.role, true
		}
	}
	return RoleGeneric, false
}

// Derive returns the synthetic tasks of doc: one per configured front matter
// field present on it, then one per configured tag it carries.
func (d *Deriver) Derive(doc model.DocumentMeta) Result {
	var res Result
	fp := d.cfg.FileParsing
	if !fp.EnableFileMetadataParsing && !fp.EnableTagBasedTaskParsing {
		return res
	}

	base, errs := d.baseMetadata(doc)
	res.Errors = append(res.Errors, errs...)
	content := d.content(doc)

	if fp.EnableFileMetadataParsing {
		for _, f := range d.fields {
			value, ok := doc.Fields[f.name]
			if !ok {
				continue
			}
			md := base.Copy()
			md.Source = model.SourceFileMetadata
			md.SourceField = f.name
			md.SourceValue = toString(value)

			status := d.status(f.role, value)
			res.Tasks = append(res.Tasks, model.Task{
				ID:        doc.Path + "#" + string(model.SourceFileMetadata) + ":" + f.name,
				FilePath:  doc.Path,
				Line:      model.FileTaskLine,
				Content:   content,
				Status:    status,
				Completed: d.cfg.IsCompleted(status),
				Metadata:  md,
			})
		}
	}

	if fp.EnableTagBasedTaskParsing {
		for _, tag := range fp.TagsToParseAsTasks {
			tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
			if tag == "" {
				continue
			}
			if !hasTag(doc.Tags, tag) {
				continue
			}
			md := base.Copy()
			md.Source = model.SourceFileTag
			md.SourceTag = tag

			status := d.defaultStatus()
			res.Tasks = append(res.Tasks, model.Task{
				ID:        doc.Path + "#" + string(model.SourceFileTag) + ":" + tag,
				FilePath:  doc.Path,
				Line:      model.FileTaskLine,
				Content:   content,
				Status:    status,
				Completed: d.cfg.IsCompleted(status),
				Metadata:  md,
			})
		}
	}

	for _, err := range res.Errors {
		d.logger().Debug("skipped front matter value", "path", doc.Path, "kind", err.Kind, "name", err.Name, "error", err.Err)
	}
	return res
}

func (d *Deriver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

var dateAliases = []struct {
	field model.Field
	keys  []string
}{
	{model.FieldDue, []string{"dueDate", "due"}},
	{model.FieldStart, []string{"startDate", "start"}},
	{model.FieldScheduled, []string{"scheduledDate", "scheduled"}},
}

// baseMetadata extracts the metadata shared by every task of doc.
func (d *Deriver) baseMetadata(doc model.DocumentMeta) (model.TaskMetadata, []*FieldError) {
	var md model.TaskMetadata
	var errs []*FieldError

	for _, alias := range dateAliases {
		for _, key := range alias.keys {
			v, ok := doc.Fields[key]
			if !ok {
				continue
			}
			ms, err := toMillis(v, d.loc)
			if err != nil {
				errs = append(errs, &FieldError{Kind: KindField, Name: key, Err: err})
				continue
			}
			md.SetDate(alias.field, ms)
			break
		}
	}

	if v, ok := doc.Fields["priority"]; ok && v != nil {
		p, err := toPriority(v)
		if err != nil {
			errs = append(errs, &FieldError{Kind: KindField, Name: "priority", Err: err})
		} else {
			md.Priority = p
		}
	}

	md.Context = toString(doc.Fields["context"])
	md.Area = toString(doc.Fields["area"])

	for _, tag := range doc.Tags {
		md.AddTag(strings.TrimPrefix(tag, "#"))
	}
	if len(doc.Tags) == 0 {
		for _, tag := range toStrings(doc.Fields["tags"]) {
			md.AddTag(strings.TrimPrefix(tag, "#"))
		}
	}

	md.Project = d.project(doc)
	return md, errs
}

// project infers the project of doc: configured metadata key, then
// configured tag, then configured link filter. The legacy "project" field is
// read only when none of those matched.
func (d *Deriver) project(doc model.DocumentMeta) string {
	pd := d.cfg.ProjectDetection

	if key := strings.TrimSpace(pd.MetadataKey); key != "" {
		if v := toString(doc.Fields[key]); v != "" {
			return v
		}
	}

	if tag := strings.TrimPrefix(strings.TrimSpace(pd.Tag), "#"); tag != "" {
		for _, t := range doc.Tags {
			t = strings.TrimPrefix(t, "#")
			if strings.EqualFold(t, tag) {
				return documentName(doc)
			}
			if len(t) > len(tag)+1 && strings.EqualFold(t[:len(tag)+1], tag+"/") {
				return t[len(tag)+1:]
			}
		}
	}

	if filter := strings.TrimSpace(pd.LinkFilter); filter != "" {
		for _, link := range doc.Links {
			if strings.Contains(link, filter) {
				return documentName(doc)
			}
		}
	}

	return toString(doc.Fields["project"])
}

// content returns the task text: the configured metadata field, else the
// filename without its extension.
func (d *Deriver) content(doc model.DocumentMeta) string {
	if key := d.cfg.FileParsing.TaskContentFromMetadata; key != "" {
		if v := toString(doc.Fields[key]); v != "" {
			return v
		}
	}
	return baseName(doc.Path)
}

// ContentFromField reports whether the task content of doc comes from the
// configured metadata field rather than the filename.
func (d *Deriver) ContentFromField(doc model.DocumentMeta) bool {
	key := d.cfg.FileParsing.TaskContentFromMetadata
	return key != "" && toString(doc.Fields[key]) != ""
}

// status maps a field value to a checkbox mark according to the field role.
func (d *Deriver) status(role FieldRole, value any) string {
	switch role {
	case RoleCompletion:
		if truthy(value) {
			return d.cfg.TaskStatusCompletedMark
		}
		return d.defaultStatus()
	case RoleTodo:
		if b, ok := value.(bool); ok {
			if b {
				return d.cfg.TaskStatusCompletedMark
			}
			return d.defaultStatus()
		}
		if s, ok := value.(string); ok && len([]rune(s)) == 1 {
			return s
		}
		return d.defaultStatus()
	case RoleDue:
		return d.cfg.NotStartedMark()
	}
	return d.defaultStatus()
}

func (d *Deriver) defaultStatus() string {
	if s := d.cfg.FileParsing.DefaultTaskStatus; len([]rune(s)) == 1 {
		return s
	}
	return d.cfg.DefaultTaskStatus
}

// truthy reports whether a completion value means "done".
func truthy(v any) bool {
	if b, ok := toBool(v); ok {
		return b
	}
	switch x := v.(type) {
	case nil:
		return false
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return strings.TrimSpace(x) != ""
	}
	return true
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimPrefix(t, "#"), tag) {
			return true
		}
	}
	return false
}

// documentName is the title, then the name field, then the filename.
func documentName(doc model.DocumentMeta) string {
	for _, key := range []string{"title", "name"} {
		if v := toString(doc.Fields[key]); v != "" {
			return v
		}
	}
	return baseName(doc.Path)
}

func baseName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
