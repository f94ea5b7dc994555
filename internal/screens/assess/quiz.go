package assess

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

// item is one question together with the category it belongs to.
type item struct {
	category assessment.Category
	question assessment.Question
}

// QuizScreen walks through the questions of one or more categories.
// Moving forward requires the current question to be answered; the last
// answer opens the results.
type QuizScreen struct {
	deps       *screens.Deps
	scope      string
	categories []assessment.Category
	items      []item
	answers    *assessment.AnswerSet
	current    int
	choice     components.Choice
}

var _ screen.Screen = (*QuizScreen)(nil)

// NewQuiz starts a quiz over categories. answers holds any earlier
// progress and is filled in place; the quiz resumes at its first
// unanswered question.
func NewQuiz(deps *screens.Deps, scope string, categories []assessment.Category, answers *assessment.AnswerSet) *QuizScreen {
	if answers == nil {
		answers = assessment.NewAnswerSet()
	}
	q := &QuizScreen{
		deps:       deps,
		scope:      scope,
		categories: categories,
		answers:    answers,
	}
	var ids []string
	for _, c := range categories {
		for _, qu := range c.Questions {
			q.items = append(q.items, item{category: c, question: qu})
			ids = append(ids, qu.ID)
		}
	}
	q.current = min(answers.ResumeIndex(ids), len(q.items)-1)
	q.choice = q.choiceFor(q.current)
	return q
}

func (q *QuizScreen) choiceFor(i int) components.Choice {
	labels := make([]string, len(assessment.LikertOptions))
	for j, o := range assessment.LikertOptions {
		labels[j] = o.Label
	}
	c := components.NewChoice(q.items[i].question.Text, labels)
	if score, ok := q.answers.Get(q.items[i].question.ID); ok {
		for j, o := range assessment.LikertOptions {
			if o.Score == score {
				c = c.WithPicked(j)
			}
		}
	}
	return c
}

func (q *QuizScreen) Init() tea.Cmd { return nil }

func (q *QuizScreen) Title() string {
	if len(q.categories) == 1 {
		return q.categories[0].Title
	}
	return "Burnout Assessment"
}

// Current is the index of the question on screen.
func (q *QuizScreen) Current() int { return q.current }

// CanProgress reports whether the current question has an answer.
func (q *QuizScreen) CanProgress() bool {
	_, ok := q.answers.Get(q.items[q.current].question.ID)
	return ok
}

func (q *QuizScreen) last() bool { return q.current == len(q.items)-1 }

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoicePickedMsg:
		q.answers.Record(q.items[q.current].question.ID, assessment.LikertOptions[msg.Index].Score)
		return q, q.next()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "right", "tab":
			return q, q.next()
		case "left", "shift+tab", "backspace":
			q.prev()
			return q, nil
		}
		var cmd tea.Cmd
		q.choice, cmd = q.choice.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) next() tea.Cmd {
	if !q.CanProgress() {
		return nil
	}
	if q.last() {
		return q.finish()
	}
	q.current++
	q.choice = q.choiceFor(q.current)
	return nil
}

func (q *QuizScreen) prev() {
	if q.current > 0 {
		q.current--
		q.choice = q.choiceFor(q.current)
	}
}

// finish hands a copy of the answers to the results screen and clears
// the draft so the next visit starts fresh.
func (q *QuizScreen) finish() tea.Cmd {
	answers := assessment.AnswerSetFrom(q.answers.Map())
	q.answers.Clear()
	res := NewResults(q.deps, q.scope, q.categories, answers)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} }
}

func (q *QuizScreen) View(width, height int) string {
	cw := min(width-4, 76)
	it := q.items[q.current]

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s  ·  Question %d of %d",
		it.category.Title, q.current+1, len(q.items))))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(q.answers.Len())/float64(len(q.items)), true, cw-6)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(q.choice.View(cw - 6))
	b.WriteString("\n\n")

	nextLabel := "Next →"
	if q.last() {
		nextLabel = "See Results"
	}
	buttons := []components.Button{
		{Label: "← Back", Enabled: q.current > 0},
		{Label: nextLabel, Enabled: q.CanProgress()},
	}
	b.WriteString(components.ButtonRow(buttons, 1))

	return layout.Centered(theme.Card.Width(cw).Render(b.String()), width, height)
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "1-5", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "esc", Description: "Save & leave"},
	}
}
