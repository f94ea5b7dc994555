package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: calm purples and teals on a dark slate background.
var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Tier colours, mildest first: green, yellow, orange, red.
var Tiers = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(Success).Bold(true),
	lipgloss.NewStyle().Foreground(Warning).Bold(true),
	lipgloss.NewStyle().Foreground(Accent).Bold(true),
	lipgloss.NewStyle().Foreground(Error).Bold(true),
}

// Tier returns the style for tier i, clamped to the known tiers.
func Tier(i int) lipgloss.Style {
	if i < 0 {
		i = 0
	}
	if i >= len(Tiers) {
		i = len(Tiers) - 1
	}
	return Tiers[i]
}
