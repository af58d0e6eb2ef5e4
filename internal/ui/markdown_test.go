package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownTaskNote(t *testing.T) {
	doc := "# Inbox\n\n- [ ] Buy milk 📅 2024-01-15\n- [x] Call mom\n"

	out, err := RenderMarkdown(doc, 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	for _, want := range []string{"Inbox", "Buy milk", "Call mom"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("want exactly one trailing newline, got %q", out[max(0, len(out)-8):])
	}
}

func TestRenderMarkdownNonPositiveWidth(t *testing.T) {
	out, err := RenderMarkdown("hello", -5)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("output = %q", out)
	}
}

func TestMarkdownStyle(t *testing.T) {
	style := markdownStyle()

	for name, underline := range map[string]*bool{"h1": style.H1.Underline, "h2": style.H2.Underline} {
		if underline == nil || !*underline {
			t.Errorf("%s is not underlined", name)
		}
	}
	if style.Code.Color == nil || style.CodeBlock.StylePrimitive.Color == nil {
		t.Error("code spans and blocks need a color")
	}
	if style.CodeBlock.Theme != markdownCodeTheme {
		t.Errorf("code block theme = %q, want %q", style.CodeBlock.Theme, markdownCodeTheme)
	}
}

func TestConfigureMarkdownCodeTheme(t *testing.T) {
	saved := markdownCodeTheme
	t.Cleanup(func() { markdownCodeTheme = saved })

	tests := []struct {
		in   string
		want string
	}{
		{"nord", "nord"},
		{" Gruvbox ", "gruvbox"},
		{"DRACULA", "dracula"},
		{"", defaultCodeTheme},
		{"no-such-theme", defaultCodeTheme},
	}
	for _, tt := range tests {
		ConfigureMarkdownCodeTheme(tt.in)
		if markdownCodeTheme != tt.want {
			t.Errorf("ConfigureMarkdownCodeTheme(%q) set %q, want %q", tt.in, markdownCodeTheme, tt.want)
		}
	}
}
