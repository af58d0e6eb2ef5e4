package parser

import (
	"reflect"
	"testing"
)

func TestExtractInlineTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "simple tags",
			content: "Plan #todo and #work/clients later",
			want:    []string{"todo", "work/clients"},
		},
		{
			name:    "heading is not a tag",
			content: "# Title\n## Sub\n#real",
			want:    []string{"real"},
		},
		{
			name:    "numbers alone are not tags",
			content: "Issue #42 needs #v2",
			want:    []string{"v2"},
		},
		{
			name:    "glued hash is not a tag",
			content: "see page#anchor",
			want:    nil,
		},
		{
			name:    "inline code and fences skipped",
			content: "`#nope` #yes\n```\n#fenced\n```\n#after",
			want:    []string{"yes", "after"},
		},
		{
			name:    "duplicates collapsed",
			content: "#a #b #a",
			want:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractInlineTags(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractInlineTags = %q, want %q", got, tt.want)
			}
		})
	}
}
