package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA unless configured): paths, open tasks, highlights
// - Muted (gray): Secondary info, line numbers, finished tasks
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// accentColor is the configured accent, or "" for the default palette.
	accentColor string

	// Accent style for file paths, task ids, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)

	// Done renders completed and cancelled task text.
	Done = Muted.Strikethrough(true)
)

// ConfigureTheme applies the accent color from configuration. "none" and
// "off" drop the accent color; an empty, "default" or invalid value keeps
// the default palette.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	switch {
	case ok:
		accentColor = color
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		AccentBold = Accent.Bold(true)
	case isAccentOff(accent):
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = Bold
	default:
		accentColor = ""
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
		AccentBold = Accent.Bold(true)
	}
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func isAccentOff(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none", "off":
		return true
	}
	return false
}

// normalizeAccentColor validates an ANSI code ("0".."255") or hex color
// ("#RGB" or "#RRGGBB") and returns it in canonical form.
func normalizeAccentColor(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
