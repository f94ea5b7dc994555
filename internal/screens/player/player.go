// Package player runs a guided exercise: a countdown that walks through
// the exercise steps one second at a time.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/sequencer"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

// tickMsg carries the generation it was scheduled under. Pausing or
// resetting bumps the generation so ticks already in flight are dropped.
type tickMsg struct {
	gen int
}

type loggedMsg struct{ err error }

// PlayerScreen plays one exercise.
type PlayerScreen struct {
	deps      *screens.Deps
	exercise  exercises.Exercise
	seq       *sequencer.Sequencer
	sessionID string
	gen       int
}

var (
	_ screen.Screen = (*PlayerScreen)(nil)
	_ router.Leaver = (*PlayerScreen)(nil)
)

func New(deps *screens.Deps, ex exercises.Exercise) (*PlayerScreen, error) {
	seq, err := ex.NewSequencer()
	if err != nil {
		return nil, fmt.Errorf("exercise %s: %w", ex.ID, err)
	}
	return &PlayerScreen{deps: deps, exercise: ex, seq: seq}, nil
}

func (p *PlayerScreen) Init() tea.Cmd { return nil }

func (p *PlayerScreen) Title() string { return p.exercise.Title }

// Sequencer exposes the countdown state.
func (p *PlayerScreen) Sequencer() *sequencer.Sequencer { return p.seq }

// SessionID is the id of the session in progress, or "" when idle.
func (p *PlayerScreen) SessionID() string { return p.sessionID }

func (p *PlayerScreen) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != p.gen || p.seq.State() != sequencer.Running {
			return p, nil
		}
		p.seq.Tick()
		if p.seq.State() == sequencer.Completed {
			cmd := p.record(store.ActionComplete)
			p.sessionID = ""
			return p, cmd
		}
		return p, p.tick()

	case loggedMsg:
		return p, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "space", " ", "enter":
			return p, p.toggle()
		case "r":
			return p, p.reset()
		}
	}
	return p, nil
}

func (p *PlayerScreen) toggle() tea.Cmd {
	switch p.seq.State() {
	case sequencer.Idle:
		p.seq.Start()
		p.sessionID = uuid.NewString()
		p.gen++
		return tea.Batch(p.record(store.ActionStart), p.tick())
	case sequencer.Running:
		p.seq.Pause()
		p.gen++
		return nil
	case sequencer.Paused:
		p.seq.Resume()
		p.gen++
		return p.tick()
	default:
		// Completed: play again from the top.
		p.seq.Reset()
		return p.toggle()
	}
}

func (p *PlayerScreen) reset() tea.Cmd {
	var cmd tea.Cmd
	if p.sessionID != "" {
		cmd = p.record(store.ActionAbandon)
		p.sessionID = ""
	}
	p.seq.Reset()
	p.gen++
	return cmd
}

// Leave records an unfinished session as abandoned.
func (p *PlayerScreen) Leave() tea.Cmd {
	p.gen++
	if p.sessionID == "" {
		return nil
	}
	cmd := p.record(store.ActionAbandon)
	p.sessionID = ""
	return cmd
}

func (p *PlayerScreen) record(action string) tea.Cmd {
	if p.deps == nil || p.deps.Events == nil || p.sessionID == "" {
		return nil
	}
	events := p.deps.Events
	data := store.ExerciseEventData{
		SessionID:   p.sessionID,
		ExerciseID:  p.exercise.ID,
		Action:      action,
		ElapsedSecs: p.seq.Elapsed(),
	}
	return func() tea.Msg {
		err := events.AppendExerciseEvent(context.Background(), data)
		if err != nil {
			slog.Error("record exercise event", "action", data.Action, "exercise", data.ExerciseID, "error", err)
		}
		return loggedMsg{err: err}
	}
}

func (p *PlayerScreen) View(width, height int) string {
	cw := min(width-4, 76)
	inner := cw - 6

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.exercise.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(inner).Render(p.exercise.Description))
	b.WriteString("\n\n")

	clock := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(exercises.FormatClock(p.seq.TotalRemaining()))
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, clock+"  "+stateLabel(p.seq.State())))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", p.seq.Progress(), true, inner).View())
	b.WriteString("\n\n")

	for i, step := range p.seq.Steps() {
		b.WriteString(p.stepLine(i, step))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.seq.State() == sequencer.Completed {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Well done. Take a moment before you carry on."))
	} else {
		label := "Start"
		switch p.seq.State() {
		case sequencer.Running:
			label = "Pause"
		case sequencer.Paused:
			label = "Resume"
		}
		b.WriteString(components.ButtonRow([]components.Button{
			{Label: label, Enabled: true},
			{Label: "Reset", Enabled: p.seq.State() != sequencer.Idle},
		}, 0))
	}

	return layout.Centered(theme.Card.Width(cw).Render(b.String()), width, height)
}

func (p *PlayerScreen) stepLine(i int, step string) string {
	state := p.seq.State()
	cur := p.seq.CurrentStep()
	switch {
	case state == sequencer.Completed || (state != sequencer.Idle && i < cur):
		return lipgloss.NewStyle().Foreground(theme.Success).Render("✓ " + step)
	case state != sequencer.Idle && i == cur:
		return theme.Selected.Render("▸ "+step) + "  " +
			theme.Hint.Render(exercises.FormatClock(p.seq.CurrentStepRemaining()))
	default:
		return theme.Subtitle.Render("  " + step)
	}
}

func stateLabel(s sequencer.State) string {
	switch s {
	case sequencer.Running:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("running")
	case sequencer.Paused:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render("paused")
	case sequencer.Completed:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("complete")
	default:
		return theme.Subtitle.Render("ready")
	}
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "space", Description: "Start/Pause"},
		{Key: "r", Description: "Reset"},
		{Key: "esc", Description: "Back"},
	}
}
