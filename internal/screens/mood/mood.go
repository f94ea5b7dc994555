// Package mood implements the mood temperature check.
package mood

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

type savedMsg struct{ err error }

// MoodScreen asks the quick-check questions one at a time and shows the
// resulting temperature once all are answered.
type MoodScreen struct {
	deps      *screens.Deps
	questions []assessment.MoodQuestion
	current   int
	choice    components.Choice
	scores    []int
	result    *assessment.MoodResult
	saveErr   error
}

var _ screen.Screen = (*MoodScreen)(nil)

func New(deps *screens.Deps) *MoodScreen {
	m := &MoodScreen{
		deps:      deps,
		questions: assessment.MoodQuestions,
		scores:    make([]int, len(assessment.MoodQuestions)),
	}
	m.choice = m.choiceFor(0)
	return m
}

func (m *MoodScreen) choiceFor(i int) components.Choice {
	q := m.questions[i]
	labels := make([]string, len(q.Options))
	for j, o := range q.Options {
		labels[j] = o.Label
	}
	c := components.NewChoice(q.Text, labels)
	if m.scores[i] > 0 {
		for j, o := range q.Options {
			if o.Score == m.scores[i] {
				c = c.WithPicked(j)
			}
		}
	}
	return c
}

func (m *MoodScreen) Init() tea.Cmd { return nil }

func (m *MoodScreen) Title() string { return "Mood Check" }

// Result is the computed temperature, or nil before the last answer.
func (m *MoodScreen) Result() *assessment.MoodResult { return m.result }

func (m *MoodScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saveErr = msg.err
		return m, nil

	case components.ChoicePickedMsg:
		m.scores[m.current] = m.questions[m.current].Options[msg.Index].Score
		if m.current < len(m.questions)-1 {
			m.current++
			m.choice = m.choiceFor(m.current)
			return m, nil
		}
		res := assessment.MoodTemperature(m.scores)
		m.result = &res
		return m, m.save(res)

	case tea.KeyPressMsg:
		if m.result != nil {
			switch msg.String() {
			case "enter", "esc":
				return m, router.Pop
			}
			return m, nil
		}
		if msg.String() == "left" || msg.String() == "backspace" {
			if m.current > 0 {
				m.current--
				m.choice = m.choiceFor(m.current)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MoodScreen) save(res assessment.MoodResult) tea.Cmd {
	if m.deps == nil || m.deps.Events == nil {
		return nil
	}
	events := m.deps.Events
	data := store.MoodEventData{
		Temperature: res.Temperature,
		Zone:        string(res.Zone),
		Answers:     append([]int(nil), m.scores...),
	}
	return func() tea.Msg {
		err := events.AppendMoodEvent(context.Background(), data)
		if err != nil {
			slog.Error("save mood check", "error", err)
		}
		return savedMsg{err: err}
	}
}

func (m *MoodScreen) View(width, height int) string {
	cw := min(width-4, 72)
	var body string
	if m.result != nil {
		body = m.resultView(cw - 6)
	} else {
		step := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", m.current+1, len(m.questions)))
		body = step + "\n\n" + m.choice.View(cw-6)
	}
	return layout.Centered(theme.Card.Width(cw).Render(body), width, height)
}

func (m *MoodScreen) resultView(width int) string {
	res := m.result
	var b strings.Builder
	b.WriteString(theme.Title.Render("Your mood temperature"))
	b.WriteString("\n\n")
	b.WriteString(ZoneStyle(res.Zone).Render(fmt.Sprintf("%.1f / 5  %s", res.Temperature, res.Label)))
	if res.Zone == assessment.MoodRed {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(width).Render(assessment.StressAlert))
	}
	if m.saveErr != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render("Could not save this check: " + m.saveErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("press enter to return"))
	return b.String()
}

func (m *MoodScreen) KeyHints() []layout.KeyHint {
	if m.result != nil {
		return []layout.KeyHint{{Key: "enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "1-5", Description: "Answer"},
		{Key: "←", Description: "Back"},
		{Key: "esc", Description: "Cancel"},
	}
}

// ZoneStyle colours a mood zone: green, yellow or red.
func ZoneStyle(z assessment.MoodZone) lipgloss.Style {
	switch z {
	case assessment.MoodGreen:
		return theme.Tier(0)
	case assessment.MoodYellow:
		return theme.Tier(1)
	case assessment.MoodRed:
		return theme.Tier(3)
	default:
		return theme.Subtitle
	}
}
