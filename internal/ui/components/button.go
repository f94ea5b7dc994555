package components

import (
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

// Button is a labelled action in a ButtonRow.
type Button struct {
	Label   string
	Enabled bool
}

var (
	buttonActive = lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2)
	buttonIdle = lipgloss.NewStyle().
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
	buttonDisabled = buttonIdle.
			Foreground(theme.Border)
)

// ButtonRow renders buttons side by side; focus is the highlighted one.
func ButtonRow(buttons []Button, focus int) string {
	parts := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		var r string
		switch {
		case !b.Enabled:
			r = buttonDisabled.Render(b.Label)
		case i == focus:
			r = buttonActive.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary).Render(b.Label)
		default:
			r = buttonIdle.Render(b.Label)
		}
		parts = append(parts, r)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
