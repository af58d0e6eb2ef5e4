package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin of rendered documents.
const MarkdownRenderMargin = 2

const defaultCodeTheme = "monokai"

// codeThemes are the Chroma styles accepted for fenced code.
var codeThemes = []string{
	"catppuccin-latte", "catppuccin-mocha", "dracula", "friendly",
	"github", "github-dark", "gruvbox", "monokai", "native", "nord",
	"onedark", "solarized-dark", "solarized-light", "vim",
}

var markdownCodeTheme = defaultCodeTheme

// ConfigureMarkdownCodeTheme selects the code block theme. Unknown names
// select the default.
func ConfigureMarkdownCodeTheme(theme string) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !slices.Contains(codeThemes, theme) {
		theme = defaultCodeTheme
	}
	markdownCodeTheme = theme
}

// RenderMarkdown renders a document for the terminal, wrapped at width.
// The result ends in exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func markdownStyle() ansi.StyleConfig {
	accent := defaultAccent
	if c, ok := AccentColor(); ok {
		accent = c
	}
	muted := ptr("8")

	heading := func(level int) ansi.StyleBlock {
		return ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Prefix:    strings.Repeat("#", level) + " ",
			Underline: ptr(level <= 2),
		}}
	}

	s := ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         ptr(uint(MarkdownRenderMargin)),
		},
		Heading: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			BlockSuffix: "\n",
			Color:       ptr(accent),
			Bold:        ptr(true),
		}},
		H1: heading(1),
		H2: heading(2),
		H3: heading(3),
		H4: heading(4),
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted},
			Indent:         ptr(uint(1)),
			IndentToken:    ptr("│ "),
		},
		List:          ansi.StyleList{LevelIndent: 2},
		Item:          ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration:   ansi.StylePrimitive{BlockPrefix: ". "},
		Task:          ansi.StyleTask{Ticked: SymbolSuccess + " ", Unticked: "○ "},
		Emph:          ansi.StylePrimitive{Italic: ptr(true)},
		Strong:        ansi.StylePrimitive{Bold: ptr(true)},
		Strikethrough: ansi.StylePrimitive{CrossedOut: ptr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n────────\n",
		},
		Link:     ansi.StylePrimitive{Color: muted, Underline: ptr(true)},
		LinkText: ansi.StylePrimitive{Color: ptr(accent), Bold: ptr(true)},
		Code: ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
			Color:  ptr("203"),
			Prefix: "`",
			Suffix: "`",
		}},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{Color: muted},
				Margin:         ptr(uint(MarkdownRenderMargin)),
			},
			Theme: markdownCodeTheme,
		},
		Table: ansi.StyleTable{
			CenterSeparator: ptr("┼"),
			ColumnSeparator: ptr("│"),
			RowSeparator:    ptr("─"),
		},
	}
	return s
}

func ptr[T any](v T) *T { return &v }
