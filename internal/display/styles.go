// Package display formats panel answers for a terminal: clipping for
// one-line summaries and styled, markdown-rendered blocks for full answers.
package display

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	lightPrimary = lipgloss.Color("#101F38")
	darkPrimary  = lipgloss.Color("#8BC34A")
	lightMuted   = lipgloss.Color("#6b7280")
	darkMuted    = lipgloss.Color("#9ca3af")
	destructive  = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	IsDark bool

	Label   lipgloss.Style
	Answer  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles builds the style set for a dark or light terminal.
func NewStyles(dark bool) Styles {
	primary, muted := lightPrimary, lightMuted
	if dark {
		primary, muted = darkPrimary, darkMuted
	}
	return Styles{
		IsDark: dark,
		Label: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Answer: lipgloss.NewStyle().
			PaddingLeft(2),
		Error: lipgloss.NewStyle().
			Foreground(destructive).
			PaddingLeft(2),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Divider: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// DetectDark reports whether the terminal background is dark.
// ASKPANEL_DARK_MODE (any strconv.ParseBool value) overrides the terminal query.
func DetectDark() bool {
	if v := os.Getenv("ASKPANEL_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			return dark
		}
	}
	return lipgloss.HasDarkBackground()
}
