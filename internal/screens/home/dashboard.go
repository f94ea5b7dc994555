package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/progress"
	"github.com/mindora-app/mindora/internal/screens/mood"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/tips"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

// contentWidth returns the uniform width shared by every dashboard card.
func contentWidth(width int) int {
	return min(max(width-6, 40), 110)
}

// greeting picks the salutation for the hour of now.
func greeting(name string, now time.Time) string {
	var hello string
	switch h := now.Hour(); {
	case h < 12:
		hello = "Good morning"
	case h < 18:
		hello = "Good afternoon"
	default:
		hello = "Good evening"
	}
	if name != "" {
		hello += ", " + name
	}
	return hello
}

func renderGreeting(name string, now time.Time, zone assessment.MoodZone, cw int) string {
	text := theme.Title.Render(greeting(name, now)) + "\n" +
		theme.Subtitle.Render(now.Format("Monday, 2 January")) + "\n" +
		theme.Hint.Render("How are you feeling today?")
	return lipgloss.JoinHorizontal(lipgloss.Center,
		RenderCompanion(VariantFor(zone)), "   ", lipgloss.NewStyle().Width(cw-14).Render(text))
}

// renderMoodCard shows the latest mood temperature, or an invitation to
// take the first check.
func renderMoodCard(latest *store.MoodEvent, w int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Mood temperature"))
	b.WriteString("\n")
	if latest == nil {
		b.WriteString(theme.Hint.Render("Not measured yet. Take a quick check."))
		return theme.Card.Width(w).Render(b.String())
	}
	zone := assessment.MoodZone(latest.Zone)
	b.WriteString(mood.ZoneStyle(zone).Render(fmt.Sprintf("%.1f  %s", latest.Temperature, assessment.MoodLabel(zone))))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("checked " + latest.Timestamp.Local().Format("Mon 15:04")))
	return theme.Card.Width(w).Render(b.String())
}

func renderStressAlert(cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Foreground(theme.Error).
		Padding(0, 2).
		Width(cw).
		Render(assessment.StressAlert)
}

// renderStressWeek charts the daily stress level for the past week.
func renderStressWeek(points []progress.Point, w int) string {
	rows := make([]components.BarRow, len(points))
	for i, p := range points {
		rows[i] = components.BarRow{Label: p.Label, Value: p.Value, Text: "-"}
		if p.Count > 0 {
			rows[i].Text = fmt.Sprintf("%3.0f%%", p.Value)
		}
	}
	body := theme.Subtitle.Render("Stress this week") + "\n" + components.BarChart(rows, 100, w-6)
	return theme.Card.Width(w).Render(body)
}

func renderTip(tip *tips.Tip, w int) string {
	var body string
	if tip == nil {
		body = theme.Subtitle.Render("Tip of the day") + "\n" + theme.Hint.Render("Finding today's tip...")
	} else {
		body = theme.Subtitle.Render("Tip of the day") + "\n" +
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tip.Title) + "\n" +
			theme.Body.Width(w-6).Render(tip.Body)
	}
	return theme.Card.Width(w).Render(body)
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	text := fmt.Sprintf("New version %s available, run mindora update", latestVersion)
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
