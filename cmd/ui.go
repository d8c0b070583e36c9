package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	err     lipgloss.Style
	success lipgloss.Style
	path    lipgloss.Style
	status  lipgloss.Style
}

// newStyles binds styles to w. Color is dropped when disabled in the config
// or when w is not a terminal.
func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		err: r.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true),
		path: r.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")),
		status: r.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true),
	}
}
