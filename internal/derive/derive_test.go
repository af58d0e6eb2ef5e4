package derive

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
)

func testConfig(adjust func(*config.Config)) config.Config {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.FileParsing.EnableFileMetadataParsing = true
	cfg.FileParsing.EnableTagBasedTaskParsing = true
	if adjust != nil {
		adjust(&cfg)
	}
	return cfg
}

func utcDay(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestClassifyField(t *testing.T) {
	tests := map[string]FieldRole{
		"complete":  RoleCompletion,
		"isDone":    RoleCompletion,
		"todo":      RoleTodo,
		"task":      RoleTodo,
		"dueDate":   RoleDue,
		"reviewed":  RoleGeneric,
		"Completed": RoleCompletion,
	}
	for name, want := range tests {
		if got := ClassifyField(name); got != want {
			t.Errorf("ClassifyField(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestDeriveMetadataTasks(t *testing.T) {
	tests := []struct {
		name      string
		doc       model.DocumentMeta
		wantCount int
		check     func(t *testing.T, task model.Task)
	}{
		{
			name: "due field with title",
			doc: model.DocumentMeta{
				Path:   "notes/release.md",
				Fields: map[string]any{"title": "Ship release", "dueDate": "2024-01-15"},
			},
			wantCount: 1,
			check: func(t *testing.T, task model.Task) {
				if task.Content != "Ship release" || task.Status != " " || task.Completed {
					t.Errorf("task = %+v", task)
				}
				if task.Metadata.DueDate != utcDay(2024, 1, 15) {
					t.Errorf("DueDate = %d", task.Metadata.DueDate)
				}
				if task.Line != model.FileTaskLine || task.ID != "notes/release.md#file-metadata:dueDate" {
					t.Errorf("Line = %d, ID = %q", task.Line, task.ID)
				}
				if task.Metadata.Source != model.SourceFileMetadata || task.Metadata.SourceField != "dueDate" || task.Metadata.SourceValue != "2024-01-15" {
					t.Errorf("provenance = %+v", task.Metadata)
				}
			},
		},
		{
			name: "todo true is completed",
			doc: model.DocumentMeta{
				Path:   "docs.md",
				Fields: map[string]any{"todo": true, "title": "Write docs"},
			},
			wantCount: 1,
			check: func(t *testing.T, task model.Task) {
				if task.Content != "Write docs" || task.Status != "x" || !task.Completed {
					t.Errorf("task = %+v", task)
				}
			},
		},
		{
			name: "todo mark passes through",
			doc: model.DocumentMeta{
				Path:   "a/Plan trip.md",
				Fields: map[string]any{"todo": "/"},
			},
			wantCount: 1,
			check: func(t *testing.T, task model.Task) {
				if task.Content != "Plan trip" || task.Status != "/" || task.Completed {
					t.Errorf("task = %+v", task)
				}
			},
		},
		{
			name: "complete false is open",
			doc: model.DocumentMeta{
				Path:   "x.md",
				Fields: map[string]any{"complete": false},
			},
			wantCount: 1,
			check: func(t *testing.T, task model.Task) {
				if task.Status != " " || task.Completed {
					t.Errorf("task = %+v", task)
				}
			},
		},
		{
			name: "yaml date and priority keyword",
			doc: model.DocumentMeta{
				Path: "x.md",
				Fields: map[string]any{
					"task":          "x",
					"scheduledDate": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
					"start":         utcDay(2024, 1, 30),
					"priority":      "urgent",
					"context":       "office",
					"area":          "work",
				},
				Tags: []string{"alpha", "#beta"},
			},
			wantCount: 1,
			check: func(t *testing.T, task model.Task) {
				md := task.Metadata
				if md.ScheduledDate != utcDay(2024, 2, 1) || md.StartDate != utcDay(2024, 1, 30) {
					t.Errorf("dates = %d %d", md.ScheduledDate, md.StartDate)
				}
				if md.Priority != 3 || md.Context != "office" || md.Area != "work" {
					t.Errorf("metadata = %+v", md)
				}
				if !reflect.DeepEqual(md.Tags, []string{"alpha", "beta"}) {
					t.Errorf("Tags = %q", md.Tags)
				}
				if !task.Completed {
					t.Error("expected completed")
				}
			},
		},
		{
			name:      "no configured fields",
			doc:       model.DocumentMeta{Path: "x.md", Fields: map[string]any{"title": "x"}},
			wantCount: 0,
		},
	}

	d := New(testConfig(nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Derive(tt.doc)
			if len(res.Errors) != 0 {
				t.Errorf("unexpected errors: %v", res.Errors)
			}
			if len(res.Tasks) != tt.wantCount {
				t.Fatalf("got %d tasks, want %d: %+v", len(res.Tasks), tt.wantCount, res.Tasks)
			}
			if tt.check != nil {
				tt.check(t, res.Tasks[0])
			}
		})
	}
}

func TestDerivePriorityClamp(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{5, 3},
		{0, 1},
		{2, 2},
		{2.6, 3},
		{"high", 3},
		{"normal", 2},
		{"low", 1},
		{"7", 3},
	}
	for _, tt := range tests {
		got, err := toPriority(tt.value)
		if err != nil || got != tt.want {
			t.Errorf("toPriority(%v) = %d, %v; want %d", tt.value, got, err, tt.want)
		}
	}
}

func TestDeriveTagTasks(t *testing.T) {
	d := New(testConfig(nil))
	res := d.Derive(model.DocumentMeta{
		Path:   "inbox/Call plumber.md",
		Fields: map[string]any{"due": "2024-03-01"},
		Tags:   []string{"Todo", "home"},
	})
	if len(res.Tasks) != 1 {
		t.Fatalf("got %d tasks: %+v", len(res.Tasks), res.Tasks)
	}
	task := res.Tasks[0]
	if task.ID != "inbox/Call plumber.md#file-tag:todo" || task.Content != "Call plumber" {
		t.Errorf("task = %+v", task)
	}
	if task.Metadata.Source != model.SourceFileTag || task.Metadata.SourceTag != "todo" {
		t.Errorf("provenance = %+v", task.Metadata)
	}
	if task.Metadata.DueDate != utcDay(2024, 3, 1) || task.Status != " " {
		t.Errorf("task = %+v", task)
	}
}

func TestDeriveSwitches(t *testing.T) {
	doc := model.DocumentMeta{
		Path:   "x.md",
		Fields: map[string]any{"todo": false},
		Tags:   []string{"task"},
	}

	d := New(testConfig(func(c *config.Config) { c.FileParsing.EnableTagBasedTaskParsing = false }))
	if res := d.Derive(doc); len(res.Tasks) != 1 || res.Tasks[0].Metadata.Source != model.SourceFileMetadata {
		t.Errorf("metadata only: %+v", res.Tasks)
	}

	d = New(testConfig(func(c *config.Config) { c.FileParsing.EnableFileMetadataParsing = false }))
	if res := d.Derive(doc); len(res.Tasks) != 1 || res.Tasks[0].Metadata.Source != model.SourceFileTag {
		t.Errorf("tags only: %+v", res.Tasks)
	}

	d = New(config.Default())
	if res := d.Derive(doc); len(res.Tasks) != 0 {
		t.Errorf("disabled: %+v", res.Tasks)
	}
}

func TestDeriveCollectsFieldErrors(t *testing.T) {
	d := New(testConfig(nil))
	res := d.Derive(model.DocumentMeta{
		Path: "x.md",
		Fields: map[string]any{
			"dueDate":  "next tuesday-ish",
			"todo":     true,
			"priority": []any{"a"},
		},
	})

	if len(res.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(res.Tasks))
	}
	for _, task := range res.Tasks {
		if task.Metadata.DueDate != 0 || task.Metadata.Priority != 0 {
			t.Errorf("bad values leaked into %+v", task.Metadata)
		}
	}

	names := map[string]bool{}
	for _, err := range res.Errors {
		names[err.Name] = true
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Kind != KindField {
			t.Errorf("error %v is not a field error", err)
		}
	}
	if !names["dueDate"] || !names["priority"] {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestDeriveProject(t *testing.T) {
	detection := config.ProjectDetection{MetadataKey: "proj", Tag: "project", LinkFilter: "Projects/"}

	tests := []struct {
		name string
		doc  model.DocumentMeta
		want string
	}{
		{
			name: "metadata key wins",
			doc: model.DocumentMeta{
				Path:   "n.md",
				Fields: map[string]any{"todo": true, "proj": "Alpha", "project": "Legacy"},
				Tags:   []string{"project"},
			},
			want: "Alpha",
		},
		{
			name: "tag uses title",
			doc: model.DocumentMeta{
				Path:   "n.md",
				Fields: map[string]any{"todo": true, "title": "Beta", "project": "Legacy"},
				Tags:   []string{"project"},
			},
			want: "Beta",
		},
		{
			name: "nested tag names the project",
			doc: model.DocumentMeta{
				Path:   "n.md",
				Fields: map[string]any{"todo": true},
				Tags:   []string{"project/gamma"},
			},
			want: "gamma",
		},
		{
			name: "link filter falls back to name then filename",
			doc: model.DocumentMeta{
				Path:   "notes/Delta plan.md",
				Fields: map[string]any{"todo": true},
				Links:  []string{"Projects/Delta"},
			},
			want: "Delta plan",
		},
		{
			name: "legacy project field",
			doc: model.DocumentMeta{
				Path:   "n.md",
				Fields: map[string]any{"todo": true, "project": "Legacy"},
			},
			want: "Legacy",
		},
	}

	d := New(testConfig(func(c *config.Config) { c.ProjectDetection = detection }))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Derive(tt.doc)
			if len(res.Tasks) == 0 {
				t.Fatal("no tasks")
			}
			if got := res.Tasks[0].Metadata.Project; got != tt.want {
				t.Errorf("Project = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveDatesInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	d := New(testConfig(func(c *config.Config) { c.Timezone = "America/New_York" }))
	res := d.Derive(model.DocumentMeta{
		Path:   "x.md",
		Fields: map[string]any{"dueDate": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	})
	if len(res.Tasks) != 1 {
		t.Fatalf("got %d tasks", len(res.Tasks))
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, loc).UnixMilli()
	if got := res.Tasks[0].Metadata.DueDate; got != want {
		t.Errorf("DueDate = %d, want %d", got, want)
	}
}
