package assess

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

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

// ResultsScreen shows the scores of a finished quiz and records them.
type ResultsScreen struct {
	deps       *screens.Deps
	scope      string
	categories []assessment.Category
	answers    *assessment.AnswerSet
	results    map[string]assessment.Result
	overall    assessment.Result
	saved      bool
	saveErr    error
}

var _ screen.Screen = (*ResultsScreen)(nil)

func NewResults(deps *screens.Deps, scope string, categories []assessment.Category, answers *assessment.AnswerSet) *ResultsScreen {
	r := &ResultsScreen{
		deps:       deps,
		scope:      scope,
		categories: categories,
		answers:    answers,
		results:    assessment.ScoreAll(categories, answers),
	}
	if len(categories) == 1 {
		r.overall = r.results[categories[0].ID]
	} else {
		r.overall = assessment.ScoreOverall(categories, answers, assessment.OverallBands)
	}
	return r
}

// Overall is the headline result: the category result for a single
// category, the pooled result otherwise.
func (r *ResultsScreen) Overall() assessment.Result { return r.overall }

func (r *ResultsScreen) Title() string { return "Your Results" }

func (r *ResultsScreen) Init() tea.Cmd {
	if r.saved || r.deps == nil || r.deps.Events == nil {
		return nil
	}
	r.saved = true

	data := store.AssessmentEventData{
		Scope:    r.scope,
		Score:    r.overall.Score,
		Band:     r.overall.Band,
		Answered: r.overall.Answered,
		Total:    r.overall.Total,
		Answers:  r.answers.Map(),
	}
	if len(r.categories) > 1 {
		data.Categories = make(map[string]float64, len(r.results))
		for id, res := range r.results {
			data.Categories[id] = res.Score
		}
	}
	events := r.deps.Events
	return func() tea.Msg {
		err := events.AppendAssessmentEvent(context.Background(), data)
		if err != nil {
			slog.Error("save assessment", "scope", data.Scope, "error", err)
		}
		return savedMsg{err: err}
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		r.saveErr = msg.err
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return r, router.Pop
		case "r":
			quiz := NewQuiz(r.deps, r.scope, r.categories, nil)
			return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: quiz} }
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	cw := min(width-4, 84)
	inner := cw - 6

	var b strings.Builder
	if len(r.categories) == 1 {
		c := r.categories[0]
		b.WriteString(theme.Title.Render(c.Title))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(c.Description))
	} else {
		b.WriteString(theme.Title.Render("Overall burnout"))
	}
	b.WriteString("\n\n")
	b.WriteString(scoreLine(r.overall))
	b.WriteString("\n")
	bar := components.NewProgressBar("", r.overall.Score/assessment.MaxScore, false, inner)
	bar.Fill = levelColor(r.overall.Score)
	b.WriteString(bar.View())

	if len(r.categories) > 1 {
		rows := make([]components.BarRow, 0, len(r.categories))
		for _, c := range r.categories {
			res := r.results[c.ID]
			rows = append(rows, components.BarRow{
				Label: c.Title,
				Value: res.Score,
				Text:  fmt.Sprintf("%.2f  %s", res.Score, res.Band),
				Color: levelColor(res.Score),
			})
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("By category"))
		b.WriteString("\n")
		b.WriteString(components.BarChart(rows, assessment.MaxScore, inner))
	}

	if r.saveErr != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render("Could not save these results: " + r.saveErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("These results are a self-check, not a diagnosis."))

	return layout.Centered(theme.Card.Width(cw).Render(b.String()), width, height)
}

func scoreLine(res assessment.Result) string {
	lvl := assessment.LevelFor(res.Score)
	return theme.Tier(int(lvl)).Render(fmt.Sprintf("%.2f / %d  %s", res.Score, assessment.MaxScore, res.Band)) +
		theme.Subtitle.Render(fmt.Sprintf("   (%d of %d answered)", res.Answered, res.Total))
}

func levelColor(score float64) color.Color {
	return theme.Tier(int(assessment.LevelFor(score))).GetForeground()
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Retake"},
		{Key: "enter", Description: "Done"},
	}
}
