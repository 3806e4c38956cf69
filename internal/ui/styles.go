package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA unless configured): church names, paths, section names
// - Muted (gray): Secondary info, counts, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, section names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)

	// accentColor is the user-configured accent, empty when unset.
	accentColor string
)

// ConfigureTheme applies the [ui] accent setting. Empty, "default" and
// invalid values keep the built-in palette; "none" and "off" drop the
// accent color entirely.
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

func isAccentOff(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "off":
		return true
	}
	return false
}

// normalizeAccentColor accepts an ANSI 256 color code or a #RGB/#RRGGBB hex
// color. Short hex colors are expanded.
func normalizeAccentColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
