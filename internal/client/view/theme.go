package view

import "github.com/charmbracelet/lipgloss"

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorAccent = lipgloss.Color("#74c7ec")
	colorOK     = lipgloss.Color("#a6e3a1")
	colorAlert  = lipgloss.Color("#f38ba8")
	colorBorder = lipgloss.Color("#45475a")
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	user    lipgloss.Style
	control lipgloss.Style
	alert   lipgloss.Style
	notice  lipgloss.Style
	border  lipgloss.Style
	total   lipgloss.Style
}

// newStyles binds the palette to r so that color is dropped when the output
// is not a terminal.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Foreground(colorAccent).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		user:    r.NewStyle().Foreground(colorText).Bold(true),
		control: r.NewStyle().Foreground(colorAccent).Underline(true),
		alert:   r.NewStyle().Foreground(colorAlert).Bold(true),
		notice:  r.NewStyle().Foreground(colorOK),
		border:  r.NewStyle().Foreground(colorBorder),
		total:   r.NewStyle().Foreground(colorOK).Bold(true),
	}
}
