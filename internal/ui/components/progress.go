package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Percent (0..1).
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width, Fill: theme.Secondary}
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf(" %3d%%", int(clamp01(p.Percent)*100+0.5))
	}
	w := max(p.Width-lipgloss.Width(out)-len(suffix), 4)
	out += bar(clamp01(p.Percent), w, p.Fill)
	if suffix != "" {
		out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return out
}

// BarRow is one labelled row of a BarChart.
type BarRow struct {
	Label string
	Value float64
	Text  string // shown after the bar; defaults to the value
	Color color.Color
}

// BarChart renders rows as horizontal bars scaled against Max.
func BarChart(rows []BarRow, maxValue float64, width int) string {
	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
	}
	var b strings.Builder
	for _, r := range rows {
		text := r.Text
		if text == "" {
			text = fmt.Sprintf("%.0f", r.Value)
		}
		fill := r.Color
		if fill == nil {
			fill = theme.Secondary
		}
		frac := 0.0
		if maxValue > 0 {
			frac = clamp01(r.Value / maxValue)
		}
		w := max(width-labelW-lipgloss.Width(text)-4, 4)
		fmt.Fprintf(&b, "%s  %s  %s\n",
			lipgloss.NewStyle().Width(labelW).Foreground(theme.TextDim).Render(r.Label),
			bar(frac, w, fill),
			lipgloss.NewStyle().Foreground(theme.Text).Render(text),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func bar(frac float64, width int, fill color.Color) string {
	filled := int(frac*float64(width) + 0.5)
	return lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled))
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}
