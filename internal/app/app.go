// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/home"
	"github.com/mindora-app/mindora/internal/screens/welcome"
	"github.com/mindora-app/mindora/internal/ui/layout"
)

// Options configures the interactive app.
type Options struct {
	Deps *screens.Deps

	// SkipWelcome opens the dashboard directly.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *screens.Deps
	status layout.Status
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen, or
// the dashboard when opts.SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	deps := opts.Deps
	if deps == nil {
		deps = &screens.Deps{}
	}
	var root screen.Screen
	if opts.SkipWelcome {
		root = home.New(deps)
	} else {
		root = welcome.New(func() screen.Screen { return home.New(deps) })
	}
	return AppModel{
		router: router.New(root),
		deps:   deps,
		status: layout.Status{User: deps.UserName()},
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screens.StatusMsg:
		m.status.Streak = msg.Streak
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			if m.router.Depth() > 1 && !m.capturing() {
				return m, router.Pop
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// quit lets the active screen record what it was doing before exiting.
func (m AppModel) quit() tea.Cmd {
	if l, ok := m.router.Active().(router.Leaver); ok {
		return tea.Sequence(l.Leave(), tea.Quit)
	}
	return tea.Quit
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		slog.Error("program exited", "error", err)
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
