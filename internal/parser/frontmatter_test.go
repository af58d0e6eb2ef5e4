package parser

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantNil     bool
		wantEndLine int
		check       func(t *testing.T, fm *Frontmatter)
	}{
		{
			name: "basic frontmatter",
			content: `---
title: Ship release
dueDate: 2024-01-15
todo: true
---

# Release

Some content`,
			// Closing --- is line 5.
			wantEndLine: 5,
			check: func(t *testing.T, fm *Frontmatter) {
				if fm.Fields["title"] != "Ship release" {
					t.Errorf("title = %#v", fm.Fields["title"])
				}
				if fm.Fields["todo"] != true {
					t.Errorf("todo = %#v", fm.Fields["todo"])
				}
				if _, ok := fm.Fields["dueDate"].(time.Time); !ok {
					t.Errorf("dueDate = %#v, want time.Time", fm.Fields["dueDate"])
				}
			},
		},
		{
			name:    "no frontmatter",
			content: "# Just a heading\n\nSome content",
			wantNil: true,
		},
		{
			name:    "unclosed frontmatter",
			content: "---\ntitle: x\n\nbody",
			wantNil: true,
		},
		{
			name: "empty frontmatter still counts as frontmatter",
			content: `---
---

# Title
Content`,
			wantEndLine: 2,
			check: func(t *testing.T, fm *Frontmatter) {
				if len(fm.Fields) != 0 {
					t.Errorf("Fields = %v", fm.Fields)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, err := ParseFrontmatter(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantNil {
				if fm != nil {
					t.Error("expected nil frontmatter")
				}
				return
			}

			if fm == nil {
				t.Fatal("expected non-nil frontmatter")
			}
			if tt.wantEndLine != 0 && fm.EndLine != tt.wantEndLine {
				t.Errorf("EndLine = %d, want %d", fm.EndLine, tt.wantEndLine)
			}
			if tt.check != nil {
				tt.check(t, fm)
			}
		})
	}
}

func TestParseFrontmatterInvalidYAML(t *testing.T) {
	if _, err := ParseFrontmatter("---\ntitle: [unclosed\n---\n"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestFrontmatterTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"list", "---\ntags: [todo, \"#work\"]\n---\n", []string{"todo", "work"}},
		{"string", "---\ntags: todo, work\n---\n", []string{"todo", "work"}},
		{"singular key", "---\ntag: task\n---\n", []string{"task"}},
		{"none", "---\ntitle: x\n---\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, err := ParseFrontmatter(tt.content)
			if err != nil {
				t.Fatal(err)
			}
			if got := fm.Tags(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tags = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitBody(t *testing.T) {
	body, start := SplitBody("---\na: 1\n---\nline one\nline two")
	if body != "line one\nline two" || start != 3 {
		t.Errorf("SplitBody = %q, %d", body, start)
	}

	body, start = SplitBody("no frontmatter")
	if body != "no frontmatter" || start != 0 {
		t.Errorf("SplitBody = %q, %d", body, start)
	}
}

func TestSetFrontmatterField(t *testing.T) {
	t.Run("replaces existing key and keeps order", func(t *testing.T) {
		in := "---\ntitle: Write docs\ntodo: false\ntags: [a]\n---\nBody\n"
		out, err := SetFrontmatterField(in, "todo", true)
		if err != nil {
			t.Fatal(err)
		}
		want := "---\ntitle: Write docs\ntodo: true\ntags: [a]\n---\nBody\n"
		if out != want {
			t.Errorf("got:\n%s\nwant:\n%s", out, want)
		}
	})

	t.Run("appends missing key", func(t *testing.T) {
		out, err := SetFrontmatterField("---\ntitle: x\n---\n", "task", "x")
		if err != nil {
			t.Fatal(err)
		}
		fm, err := ParseFrontmatter(out)
		if err != nil || fm == nil {
			t.Fatalf("reparse failed: %v", err)
		}
		if fm.Fields["task"] != "x" || fm.Fields["title"] != "x" {
			t.Errorf("Fields = %v", fm.Fields)
		}
	})

	t.Run("creates frontmatter", func(t *testing.T) {
		out, err := SetFrontmatterField("Body only", "todo", false)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "---\ntodo: false\n---\nBody only") {
			t.Errorf("got %q", out)
		}
	})
}
