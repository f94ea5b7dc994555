// Package welcome is the splash shown at start-up: a short breathing
// animation, then the banner.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 4000 * time.Millisecond

	// breathPeriod is one full in-and-out cycle of the orb.
	breathPeriod = 40
)

// orbFrames grow from a dot to a full circle.
var orbFrames = []string{
	"\n\n     ·     \n\n",
	"\n\n    (·)    \n\n",
	"\n    ╭─╮    \n    │ │    \n    ╰─╯    \n",
	"\n   ╭───╮   \n   │   │   \n   ╰───╯   \n",
	"  ╭─────╮  \n  │     │  \n  │     │  \n  │     │  \n  ╰─────╯  ",
}

type tickMsg time.Time

// WelcomeScreen shows a splash animation until a key is pressed, then
// replaces itself with the screen produced by homeFactory.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// orbFrame maps the tick count onto a breathe-in, breathe-out cycle.
func (w *WelcomeScreen) orbFrame() string {
	pos := w.tickCount % breathPeriod
	half := breathPeriod / 2
	if pos >= half {
		pos = breathPeriod - 1 - pos
	}
	return orbFrames[pos*len(orbFrames)/half]
}

func (w *WelcomeScreen) breathCue() string {
	if w.tickCount%breathPeriod < breathPeriod/2 {
		return "breathe in"
	}
	return "breathe out"
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.orbFrame()),
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(w.breathCue()),
	)

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("A calmer workday starts here."),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
