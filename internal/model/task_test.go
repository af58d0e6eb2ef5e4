package model

import "testing"

func TestTaskLocation(t *testing.T) {
	line := Task{ID: "notes/a.md:3", FilePath: "notes/a.md", Line: 2}
	if got := line.GetLocation(); got != "notes/a.md:3" {
		t.Errorf("GetLocation = %q", got)
	}

	file := Task{FilePath: "notes/a.md", Line: FileTaskLine, Metadata: TaskMetadata{Source: SourceFileTag}}
	if got := file.GetLocation(); got != "notes/a.md" {
		t.Errorf("GetLocation = %q", got)
	}
	if !file.IsFileTask() || line.IsFileTask() {
		t.Error("IsFileTask mismatch")
	}
}

func TestNumber(t *testing.T) {
	items := Number([]Task{{ID: "a", Content: "first"}, {ID: "b", Content: "second"}})
	if len(items) != 2 || items[0].Num != 1 || items[1].Num != 2 {
		t.Fatalf("Number = %+v", items)
	}
	if items[1].Task.Content != "second" {
		t.Errorf("items[1] = %+v", items[1])
	}
	if got := Number(nil); len(got) != 0 {
		t.Errorf("Number(nil) = %+v", got)
	}
}

func TestMerge(t *testing.T) {
	base := TaskMetadata{DueDate: 10, Priority: 2, Tags: []string{"a"}, ID: "x"}
	patch := TaskMetadata{Priority: 5, Tags: []string{"b"}}

	got := Merge(base, patch, []Field{FieldPriority, FieldDue, FieldTags})
	if got.Priority != 5 || got.DueDate != 0 || got.ID != "x" {
		t.Errorf("Merge = %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "b" {
		t.Errorf("Tags = %v", got.Tags)
	}

	got.Tags[0] = "changed"
	if patch.Tags[0] != "b" {
		t.Error("Merge aliased patch tags")
	}
}

func TestParseField(t *testing.T) {
	for _, f := range CanonicalFields {
		got, ok := ParseField(f.String())
		if !ok || got != f {
			t.Errorf("ParseField(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseField("nope"); ok {
		t.Error("ParseField accepted unknown name")
	}
}
