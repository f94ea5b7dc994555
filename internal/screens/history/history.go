// Package history is the progress screen: headline numbers, stress and
// practice trends, and the list of recent exercise sessions.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/progress"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

const trendWeeks = 6

type historyLoadedMsg struct {
	Input progress.Input
	Err   error
}

// HistoryScreen displays progress over time.
type HistoryScreen struct {
	deps     *screens.Deps
	input    progress.Input
	summary  progress.Summary
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps *screens.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     deps,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		return loadHistory(deps)
	}
}

func loadHistory(deps *screens.Deps) tea.Msg {
	if deps == nil || deps.Events == nil {
		return historyLoadedMsg{}
	}
	var journal progress.JournalLister
	if deps.Journal != nil {
		journal = deps.Journal
	}
	in, err := progress.Load(context.Background(), deps.Events, journal)
	return historyLoadedMsg{Input: in, Err: err}
}

func (s *HistoryScreen) Title() string {
	return "Progress"
}

// Summary returns the computed headline numbers.
func (s *HistoryScreen) Summary() progress.Summary { return s.summary }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Sessions"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.input = msg.Input
			s.summary = progress.Summarize(msg.Input, s.deps.Clock())
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.input.Sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Message("Loading progress...", width)
	}
	in := s.input
	if len(in.Moods)+len(in.Sessions)+len(in.Assessments)+len(in.Journal) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\nNothing here yet. Check your mood or try an exercise to start tracking.")
	}

	cw := min(width-4, 100)
	half := (cw - 4) / 2
	now := s.deps.Clock()

	stress := progress.WeeklyStress(in.Moods, now, trendWeeks)
	sessions := progress.WeeklySessions(in.Sessions, now, trendWeeks)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		chart("Stress by week", stressRows(stress), 100, half),
		"    ",
		chart("Sessions by week", sessionRows(sessions), maxValue(sessions), half),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		s.tiles(cw),
		"",
		charts,
		"",
		s.sessionList(cw, max(height-18, 3)),
	)
}

func (s *HistoryScreen) tiles(width int) string {
	sum := s.summary
	stress := "no data"
	if sum.CurrentStress >= 0 {
		stress = fmt.Sprintf("%.0f%%", sum.CurrentStress)
	}
	trend := ""
	if sum.HasTrend {
		switch {
		case sum.Improvement > 0:
			trend = fmt.Sprintf("↓ %.0f pts", sum.Improvement)
		case sum.Improvement < 0:
			trend = fmt.Sprintf("↑ %.0f pts", -sum.Improvement)
		default:
			trend = "steady"
		}
	}
	burnout := "not taken"
	if sum.LatestBurnout != nil {
		burnout = sum.LatestBurnout.Band
	}

	items := []struct{ label, value, note string }{
		{"Streak", fmt.Sprintf("%d days", sum.Streak), ""},
		{"Stress this week", stress, trend},
		{"Sessions this month", fmt.Sprint(sum.SessionsThisMonth), fmt.Sprintf("%d min total", sum.MinutesPracticed)},
		{"Mood checks", fmt.Sprint(sum.MoodChecks), ""},
		{"Journal entries", fmt.Sprint(sum.JournalEntries), ""},
		{"Burnout", burnout, ""},
	}
	tileW := max(width/3-2, 18)
	tiles := make([]string, len(items))
	for i, it := range items {
		body := theme.Subtitle.Render(it.label) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(it.value)
		if it.note != "" {
			body += "  " + theme.Hint.Render(it.note)
		}
		tiles[i] = theme.Card.Width(tileW).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles[3:]...),
	)
}

func chart(title string, rows []components.BarRow, maxV float64, width int) string {
	return theme.Subtitle.Render(title) + "\n" + components.BarChart(rows, maxV, width)
}

func stressRows(points []progress.Point) []components.BarRow {
	rows := make([]components.BarRow, len(points))
	for i, p := range points {
		rows[i] = components.BarRow{Label: p.Label, Value: p.Value, Text: "-"}
		if p.Count > 0 {
			rows[i].Text = fmt.Sprintf("%.0f%%", p.Value)
			rows[i].Color = stressColor(p.Value)
		}
	}
	return rows
}

// stressColor matches the mood zones: green up to 25, yellow up to 62.5.
func stressColor(v float64) color.Color {
	tier := 3
	switch {
	case v <= 25:
		tier = 0
	case v <= 62.5:
		tier = 1
	}
	return theme.Tier(tier).GetForeground()
}

func sessionRows(points []progress.Point) []components.BarRow {
	rows := make([]components.BarRow, len(points))
	for i, p := range points {
		rows[i] = components.BarRow{Label: p.Label, Value: p.Value}
	}
	return rows
}

func maxValue(points []progress.Point) float64 {
	m := 1.0
	for _, p := range points {
		m = max(m, p.Value)
	}
	return m
}

func (s *HistoryScreen) sessionList(width, rows int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Recent sessions"))
	b.WriteString("\n")
	if len(s.input.Sessions) == 0 {
		b.WriteString(theme.Hint.Render("No exercise sessions yet."))
		return b.String()
	}

	start := max(s.selected-rows+1, 0)
	for i := start; i < len(s.input.Sessions) && i < start+rows; i++ {
		sess := s.input.Sessions[i]
		status := "abandoned"
		if sess.Completed {
			status = "completed"
		} else if sess.EndedAt.IsZero() {
			status = "in progress"
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %-28s %s",
			prefix, sess.StartedAt.Local().Format("Jan 02 15:04"), s.exerciseTitle(sess.ExerciseID), status)
		b.WriteString(style.MaxWidth(width).Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d:%02d practised", sess.ElapsedSecs/60, sess.ElapsedSecs%60)
			if !sess.EndedAt.IsZero() {
				detail += ", ended " + sess.EndedAt.Local().Format("15:04")
			}
			b.WriteString(theme.Hint.Render(detail))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *HistoryScreen) exerciseTitle(id string) string {
	if s.deps != nil && s.deps.Catalog != nil {
		if e, err := s.deps.Catalog.Get(id); err == nil {
			return e.Title
		}
	}
	return id
}
