package tasks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/mutate"
	"github.com/aidanlsb/taskmark/internal/testutil"
	"github.com/aidanlsb/taskmark/internal/vault"
)

var fixedNow = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, v *testutil.TestVault) *Service {
	t.Helper()
	store, err := vault.Open(v.Path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.FileParsing.EnableFileMetadataParsing = true
	cfg.FileParsing.EnableTagBasedTaskParsing = true
	s := New(store, cfg, nil)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

const inbox = `---
title: Inbox
tags: [todo]
---
# Inbox

- [ ] Buy milk 📅 2024-01-15
- [x] Call mom ✅ 2024-01-10

` + "```markdown\n- [ ] not a task\n```" + `
  * [/] Nested #work
Plain text`

func TestListTasks(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("inbox.md", inbox).Build()
	s := newTestService(t, v)

	res, err := s.ListTasks("inbox.md")
	if err != nil {
		t.Fatal(err)
	}

	var lineIDs []string
	var tagTasks int
	for _, task := range res.Tasks {
		if task.IsFileTask() {
			tagTasks++
			if task.Metadata.Source != model.SourceFileTag || task.Content != "Inbox" {
				t.Errorf("file task = %+v", task)
			}
			continue
		}
		lineIDs = append(lineIDs, task.ID)
	}

	want := []string{"inbox.md:6", "inbox.md:7", "inbox.md:12"}
	if strings.Join(lineIDs, ",") != strings.Join(want, ",") {
		t.Errorf("line task ids = %v, want %v", lineIDs, want)
	}
	if tagTasks != 1 {
		t.Errorf("got %d tag tasks, want 1", tagTasks)
	}

	first := res.Tasks[0]
	if first.Content != "Buy milk" || first.Line != 6 || first.OriginalMarkdown != "- [ ] Buy milk 📅 2024-01-15" {
		t.Errorf("first = %+v", first)
	}
	if !res.Tasks[1].Completed || res.Tasks[2].Status != "/" {
		t.Errorf("statuses = %q %q", res.Tasks[1].Status, res.Tasks[2].Status)
	}
}

func TestUpdateTask(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("inbox.md", inbox).Build()
	s := newTestService(t, v)

	res, err := s.UpdateTask("inbox.md", 6, mutate.Update{Completed: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Error("expected change")
	}
	v.AssertLine("inbox.md", 6, "- [x] Buy milk 📅 2024-01-15 ✅ 2024-01-20")
	v.AssertLine("inbox.md", 7, "- [x] Call mom ✅ 2024-01-10")

	// Repeating the completion leaves the document untouched.
	again, err := s.UpdateTask("inbox.md", 6, mutate.Update{Completed: boolPtr(true)})
	if err != nil || again.Changed {
		t.Errorf("second completion: changed=%v err=%v", again.Changed, err)
	}
}

func TestUpdateTaskRecurrenceInsertsLine(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("daily.md", "- [ ] Water plants 🔁 every week 📅 2024-01-15\r\n- [ ] Other\r\n").
		Build()
	s := newTestService(t, v)

	res, err := s.UpdateTask("daily.md", 0, mutate.Update{Status: strPtr("x")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Next == nil || len(res.Lines) != 2 {
		t.Fatalf("result = %+v", res)
	}
	want := "- [x] Water plants 🔁 every week 📅 2024-01-15 ✅ 2024-01-20\r\n" +
		"- [ ] Water plants 🔁 every week 📅 2024-01-22\r\n" +
		"- [ ] Other\r\n"
	if got := v.ReadFile("daily.md"); got != want {
		t.Errorf("document =\n%q\nwant\n%q", got, want)
	}
}

func TestUpdateTaskTargetErrors(t *testing.T) {
	v := testutil.NewTestVault(t).WithFile("inbox.md", inbox).Build()
	s := newTestService(t, v)

	tests := []struct {
		name string
		path string
		line int
		code string
	}{
		{"missing document", "nope.md", 0, CodeDocumentNotFound},
		{"line out of range", "inbox.md", 99, CodeLineOutOfRange},
		{"negative line", "inbox.md", -1, CodeLineOutOfRange},
		{"heading", "inbox.md", 4, CodeNotATask},
		{"fenced task", "inbox.md", 10, CodeNotATask},
		{"front matter", "inbox.md", 1, CodeNotATask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateTask(tt.path, tt.line, mutate.Update{Completed: boolPtr(true)})
			if !errors.Is(err, ErrInvalidTarget) {
				t.Fatalf("err = %v, want ErrInvalidTarget", err)
			}
			var te *TargetError
			if !errors.As(err, &te) || te.Code != tt.code {
				t.Errorf("err = %#v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := s.UpdateTask("inbox.md", 6, mutate.Update{Status: strPtr("xx")}); !errors.Is(err, mutate.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
	v.AssertFileContains("inbox.md", "- [ ] Buy milk 📅 2024-01-15")
}

func TestUpdateFileTaskStatus(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("docs.md", "---\ntodo: true\ntitle: Write docs\n---\nBody\n").
		WithFile("review.md", "---\ncomplete: false\n---\n").
		Build()
	s := newTestService(t, v)

	res, err := s.UpdateFileTask("docs.md", "docs.md#file-metadata:todo", mutate.Update{Completed: boolPtr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.Task.Completed || res.Task.Status != " " {
		t.Errorf("result = %+v", res)
	}
	v.AssertFileContains("docs.md", "todo: false")
	v.AssertFileContains("docs.md", "title: Write docs")
	v.AssertFileContains("docs.md", "---\nBody\n")

	res, err = s.UpdateFileTask("docs.md", "docs.md#file-metadata:todo", mutate.Update{Status: strPtr("/")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Task.Status != "/" {
		t.Errorf("status = %q", res.Task.Status)
	}
	v.AssertFileContains("docs.md", "todo: /")

	res, err = s.UpdateFileTask("review.md", "review.md#file-metadata:complete", mutate.Update{Completed: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Task.Completed {
		t.Errorf("task = %+v", res.Task)
	}
	v.AssertFileContains("review.md", "complete: true")
}

func TestUpdateFileTaskContent(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("notes/titled.md", "---\ntitle: Old title\ntodo: false\n---\n").
		WithFile("notes/old name.md", "---\ntodo: false\n---\n").
		Build()
	s := newTestService(t, v)

	res, err := s.UpdateFileTask("notes/titled.md", "notes/titled.md#file-metadata:todo", mutate.Update{Content: strPtr("New title")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != "notes/titled.md" || res.Task.Content != "New title" {
		t.Errorf("result = %+v", res)
	}
	v.AssertFileContains("notes/titled.md", "title: New title")

	res, err = s.UpdateFileTask("notes/old name.md", "notes/old name.md#file-metadata:todo", mutate.Update{Content: strPtr("Fresh: name?")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != "notes/Fresh name.md" || res.Task.ID != "notes/Fresh name.md#file-metadata:todo" {
		t.Errorf("result = %+v", res)
	}
	v.AssertFileNotExists("notes/old name.md")
	v.AssertFileExists("notes/Fresh name.md")
}

func TestUpdateFileTaskErrors(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "---\ndueDate: 2024-01-15\ntags: [todo]\n---\n").
		Build()
	s := newTestService(t, v)

	tests := []struct {
		name string
		path string
		id   string
		code string
	}{
		{"tag task", "a.md", "a.md#file-tag:todo", CodeNotFileTask},
		{"line task id", "a.md", "a.md:3", CodeNotFileTask},
		{"unknown field", "a.md", "a.md#file-metadata:todo", CodeTaskNotFound},
		{"due field has no status", "a.md", "a.md#file-metadata:dueDate", CodeFieldNotWritable},
		{"missing document", "b.md", "b.md#file-metadata:todo", CodeDocumentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateFileTask(tt.path, tt.id, mutate.Update{Completed: boolPtr(true)})
			var te *TargetError
			if !errors.As(err, &te) || te.Code != tt.code {
				t.Fatalf("err = %v, want code %s", err, tt.code)
			}
			if !errors.Is(err, ErrInvalidTarget) {
				t.Errorf("err = %v does not match ErrInvalidTarget", err)
			}
		})
	}
}

func TestAssignID(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "- [ ] Buy milk 📅 2024-01-15\n- [ ] Has id 🆔 keep1\n").
		Build()
	s := newTestService(t, v)

	id, err := s.AssignID("a.md", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 26 || id != strings.ToLower(id) {
		t.Errorf("id = %q", id)
	}
	v.AssertLine("a.md", 0, "- [ ] Buy milk 📅 2024-01-15 🆔 "+id)

	again, err := s.AssignID("a.md", 0)
	if err != nil || again != id {
		t.Errorf("second AssignID = %q, %v", again, err)
	}

	if kept, err := s.AssignID("a.md", 1); err != nil || kept != "keep1" {
		t.Errorf("existing id = %q, %v", kept, err)
	}

	next, err := s.NewID()
	if err != nil || next <= id {
		t.Errorf("NewID = %q, want > %q (%v)", next, id, err)
	}
}
