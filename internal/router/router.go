package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Push returns a command that emits PushScreenMsg.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns a command that emits PopScreenMsg.
func Pop() tea.Msg { return PopScreenMsg{} }

// Router keeps a stack of screens; only the top one receives messages.
// The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		if r.Depth() == 1 {
			return nil
		}
		var leave tea.Cmd
		if l, ok := r.Active().(Leaver); ok {
			leave = l.Leave()
		}
		r.Pop()
		// The revealed screen may show stale data; let it refresh.
		if rf, ok := r.Active().(Refresher); ok {
			return tea.Batch(leave, rf.Refresh())
		}
		return leave
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

// Refresher is implemented by screens that reload their data when they
// become active again after a pop.
type Refresher interface {
	Refresh() tea.Cmd
}

// Leaver is implemented by screens that need to act when they are popped,
// such as recording an abandoned activity. The returned command runs
// alongside the revealed screen's refresh.
type Leaver interface {
	Leave() tea.Cmd
}
