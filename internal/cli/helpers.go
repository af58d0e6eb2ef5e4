package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/derive"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/tasks"
)

// taskTarget is a task addressed on the command line: a 1-based line
// number, or the id of a file-level task.
type taskTarget struct {
	Line   int // 0-based; -1 for file-level tasks
	TaskID string
}

func (t taskTarget) isFileTask() bool { return t.TaskID != "" }

// parseTaskTarget parses the task argument of update-style commands. A
// file-level task id may omit its path ("#file-metadata:todo").
func parseTaskTarget(path, arg string) (taskTarget, error) {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "#") {
		id := arg
		if strings.HasPrefix(arg, "#") {
			id = path + arg
		}
		return taskTarget{Line: -1, TaskID: id}, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return taskTarget{}, withCode(ErrInvalidInput, fmt.Errorf("invalid task %q: want a line number (from 1) or a file task id", arg))
	}
	return taskTarget{Line: n - 1}, nil
}

// metadataFlags binds the metadata flags shared by encode and update.
type metadataFlags struct {
	dates        map[model.Field]*string
	priority     int
	project      string
	context      string
	tags         []string
	recurrence   string
	onCompletion string
	dependsOn    []string
	id           string
	clear        []string
}

var dateFlagNames = []struct {
	name  string
	field model.Field
	usage string
}{
	{"created", model.FieldCreated, "Created date"},
	{"start", model.FieldStart, "Start date"},
	{"scheduled", model.FieldScheduled, "Scheduled date"},
	{"due", model.FieldDue, "Due date"},
	{"completion", model.FieldCompletion, "Completion date"},
	{"cancelled", model.FieldCancelled, "Cancelled date"},
}

func (f *metadataFlags) register(fs *pflag.FlagSet, withClear bool) {
	f.dates = make(map[model.Field]*string, len(dateFlagNames))
	for _, d := range dateFlagNames {
		f.dates[d.field] = fs.String(d.name, "", d.usage+" (YYYY-MM-DD, today, tomorrow, yesterday)")
	}
	fs.IntVar(&f.priority, "priority", 0, "Priority from 1 (lowest) to 5 (highest)")
	fs.StringVar(&f.project, "project", "", "Project name")
	fs.StringVar(&f.context, "context", "", "Context name")
	fs.StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable, without '#')")
	fs.StringVar(&f.recurrence, "recurrence", "", "Recurrence, e.g. 'every week' or 'FREQ=MONTHLY;BYMONTHDAY=1'")
	fs.StringVar(&f.onCompletion, "on-completion", "", "Action on completion (keep, delete, ...)")
	fs.StringSliceVar(&f.dependsOn, "depends-on", nil, "Id of a task this one waits for (repeatable)")
	fs.StringVar(&f.id, "id", "", "Task id")
	if withClear {
		fs.StringSliceVar(&f.clear, "clear", nil, "Fields to remove (due, tags, priority, ...)")
	}
}

// build returns the metadata given on the command line and the fields it
// names. A flag set to an empty value names its field with no value, which
// removes it.
func (f *metadataFlags) build(fs *pflag.FlagSet, now time.Time) (model.TaskMetadata, []model.Field, error) {
	var md model.TaskMetadata
	var fields []model.Field
	add := func(field model.Field) {
		for _, existing := range fields {
			if existing == field {
				return
			}
		}
		fields = append(fields, field)
	}

	for _, d := range dateFlagNames {
		if !fs.Changed(d.name) {
			continue
		}
		add(d.field)
		raw := strings.TrimSpace(*f.dates[d.field])
		if raw == "" {
			continue
		}
		day, err := dates.ParseDateArg(raw, now)
		if err != nil {
			return md, nil, withCode(ErrInvalidDate, fmt.Errorf("--%s: %w", d.name, err))
		}
		md.SetDate(d.field, day.UnixMilli())
	}

	if fs.Changed("priority") {
		if f.priority < 0 || f.priority > 5 {
			return md, nil, withCode(ErrInvalidInput, fmt.Errorf("--priority must be between 1 and 5, got %d", f.priority))
		}
		add(model.FieldPriority)
		md.Priority = f.priority
	}
	if fs.Changed("project") {
		add(model.FieldProject)
		md.Project = strings.TrimSpace(f.project)
	}
	if fs.Changed("context") {
		add(model.FieldContext)
		md.Context = strings.TrimSpace(f.context)
	}
	if fs.Changed("tag") {
		add(model.FieldTags)
		for _, tag := range f.tags {
			if tag = strings.TrimPrefix(strings.TrimSpace(tag), "#"); tag != "" {
				md.Tags = append(md.Tags, tag)
			}
		}
	}
	if fs.Changed("recurrence") {
		add(model.FieldRecurrence)
		md.Recurrence = strings.TrimSpace(f.recurrence)
	}
	if fs.Changed("on-completion") {
		add(model.FieldOnCompletion)
		md.OnCompletion = strings.TrimSpace(f.onCompletion)
	}
	if fs.Changed("depends-on") {
		add(model.FieldDependsOn)
		md.DependsOn = append(md.DependsOn, f.dependsOn...)
	}
	if fs.Changed("id") {
		add(model.FieldID)
		md.ID = strings.TrimSpace(f.id)
	}

	for _, name := range f.clear {
		field, ok := model.ParseField(strings.TrimSpace(name))
		if !ok {
			return md, nil, withCode(ErrInvalidInput, fmt.Errorf("--clear: unknown field %q", name))
		}
		add(field)
		clearField(&md, field)
	}

	return md, fields, nil
}

func clearField(md *model.TaskMetadata, f model.Field) {
	switch f {
	case model.FieldTags:
		md.Tags = nil
	case model.FieldProject:
		md.Project = ""
	case model.FieldContext:
		md.Context = ""
	case model.FieldPriority:
		md.Priority = 0
	case model.FieldRecurrence:
		md.Recurrence = ""
	case model.FieldOnCompletion:
		md.OnCompletion = ""
	case model.FieldDependsOn:
		md.DependsOn = nil
	case model.FieldID:
		md.ID = ""
	default:
		md.SetDate(f, 0)
	}
}

// now returns the current time in the configured timezone.
func now() time.Time {
	return time.Now().In(cfg.Location())
}

func parseDay(flag, raw string, now time.Time) (time.Time, error) {
	day, err := dates.ParseDateArg(strings.TrimSpace(raw), now)
	if err != nil {
		return time.Time{}, withCode(ErrInvalidDate, fmt.Errorf("--%s: %w", flag, err))
	}
	return day, nil
}

// fieldErrorWarnings turns derivation failures into response warnings.
func fieldErrorWarnings(path string, errs []*derive.FieldError) []Warning {
	warnings := make([]Warning, 0, len(errs))
	for _, fe := range errs {
		warnings = append(warnings, Warning{
			Code:    WarnFieldError,
			Message: fe.Error(),
			Path:    path,
			Field:   fe.Name,
		})
	}
	return warnings
}

// lineTask decodes an updated line into a task record.
func lineTask(svc *tasks.Service, path, line string, index int) *model.Task {
	task, ok := svc.Codec().ParseTask(line, index)
	if !ok {
		return nil
	}
	task.ID = tasks.LineTaskID(path, index)
	task.FilePath = path
	return &task
}
