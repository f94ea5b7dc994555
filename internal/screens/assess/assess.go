// Package assess implements the burnout self-assessment: a category
// picker, the question flow and the results page.
package assess

import (
	"context"
	"fmt"
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

type historyMsg struct {
	latest map[string]store.AssessmentEvent
}

// ListScreen lets the user pick a single category or the full
// questionnaire. Unfinished quizzes are kept as drafts for the life of
// the screen.
type ListScreen struct {
	deps       *screens.Deps
	categories []assessment.Category
	drafts     map[string]*assessment.AnswerSet
	latest     map[string]store.AssessmentEvent
	menu       components.Menu
}

var (
	_ screen.Screen    = (*ListScreen)(nil)
	_ router.Refresher = (*ListScreen)(nil)
)

func New(deps *screens.Deps) *ListScreen {
	l := &ListScreen{
		deps:       deps,
		categories: assessment.BurnoutCategories(),
		drafts:     make(map[string]*assessment.AnswerSet),
	}
	l.buildMenu()
	return l
}

func (l *ListScreen) Title() string { return "Self-Assessment" }

func (l *ListScreen) Init() tea.Cmd { return l.loadHistory() }

func (l *ListScreen) Refresh() tea.Cmd {
	l.buildMenu()
	return l.loadHistory()
}

func (l *ListScreen) loadHistory() tea.Cmd {
	if l.deps == nil || l.deps.Events == nil {
		return nil
	}
	events := l.deps.Events
	return func() tea.Msg {
		evs, err := events.QueryAssessmentEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			slog.Error("load assessment history", "error", err)
			return historyMsg{}
		}
		latest := make(map[string]store.AssessmentEvent)
		for _, e := range evs {
			if prev, ok := latest[e.Scope]; !ok || e.Sequence > prev.Sequence {
				latest[e.Scope] = e
			}
		}
		return historyMsg{latest: latest}
	}
}

func (l *ListScreen) draft(scope string) *assessment.AnswerSet {
	d, ok := l.drafts[scope]
	if !ok {
		d = assessment.NewAnswerSet()
		l.drafts[scope] = d
	}
	return d
}

// hint describes draft progress or the last recorded result of scope.
func (l *ListScreen) hint(scope string, total int) string {
	if d := l.drafts[scope]; d != nil && d.Len() > 0 {
		return fmt.Sprintf("in progress %d/%d", d.Len(), total)
	}
	if e, ok := l.latest[scope]; ok {
		return fmt.Sprintf("last %.2f %s", e.Score, e.Band)
	}
	return fmt.Sprintf("%d questions", total)
}

func (l *ListScreen) buildMenu() {
	total := 0
	for _, c := range l.categories {
		total += len(c.Questions)
	}

	items := []components.MenuItem{{
		Label: "Full assessment",
		Hint:  l.hint(store.ScopeFull, total),
		Action: func() tea.Cmd {
			return router.Push(NewQuiz(l.deps, store.ScopeFull, l.categories, l.draft(store.ScopeFull)))
		},
	}}
	for _, c := range l.categories {
		items = append(items, components.MenuItem{
			Label: c.Title,
			Hint:  l.hint(c.ID, len(c.Questions)),
			Action: func() tea.Cmd {
				return router.Push(NewQuiz(l.deps, c.ID, []assessment.Category{c}, l.draft(c.ID)))
			},
		})
	}

	selected := l.menu.Selected
	l.menu = components.NewMenu(items)
	if selected < len(items) {
		l.menu.Selected = selected
	}
}

func (l *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		l.latest = msg.latest
		l.buildMenu()
		return l, nil
	}
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *ListScreen) View(width, height int) string {
	cw := min(width-4, 84)
	var b strings.Builder
	b.WriteString(theme.Title.Render("Burnout self-assessment"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw - 6).Render(
		"Rate how often each statement applies to you. Take the full questionnaire or one area at a time."))
	b.WriteString("\n\n")
	b.WriteString(l.menu.View())
	if l.menu.Selected > 0 {
		c := l.categories[l.menu.Selected-1]
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(c.Description))
	}
	return layout.Centered(theme.Card.Width(cw).Render(b.String()), width, height)
}

func (l *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "enter", Description: "Start"},
		{Key: "esc", Description: "Back"},
	}
}
