package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/screen"
)

type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
	got       []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Refresh() tea.Cmd {
	s.refreshed++
	return nil
}

func TestPushPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	journal := &stubScreen{title: "journal"}
	r.Update(PushScreenMsg{Screen: journal})
	if r.Depth() != 2 || r.Active() != journal {
		t.Fatalf("push failed: depth %d active %q", r.Depth(), r.Active().Title())
	}
	if !journal.initRan {
		t.Fatal("pushed screen was not initialized")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("pop failed: depth %d", r.Depth())
	}
	if home.refreshed != 1 {
		t.Fatalf("revealed screen refreshed %d times, want 1", home.refreshed)
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "assessment"})

	results := &stubScreen{title: "results"}
	r.Update(ReplaceScreenMsg{Screen: results})

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active() != results || !results.initRan {
		t.Fatal("replacement not active or not initialized")
	}
}

func TestForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "mood"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if len(top.got) != 1 || len(home.got) != 0 {
		t.Fatalf("message routed to wrong screen: top %d home %d", len(top.got), len(home.got))
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	if msg, ok := Push(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Fatal("Push helper produced wrong message")
	}
	if _, ok := Pop().(PopScreenMsg); !ok {
		t.Fatal("Pop helper produced wrong message")
	}
}

type leavingScreen struct {
	stubScreen
	left int
}

func (s *leavingScreen) Leave() tea.Cmd {
	s.left++
	return nil
}

func TestPopCallsLeave(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	player := &leavingScreen{stubScreen: stubScreen{title: "player"}}
	r.Push(player)

	r.Update(PopScreenMsg{})
	if player.left != 1 {
		t.Fatalf("Leave called %d times, want 1", player.left)
	}

	// Popping the root does nothing, not even Leave.
	root := &leavingScreen{stubScreen: stubScreen{title: "root"}}
	r = New(root)
	r.Update(PopScreenMsg{})
	if root.left != 0 {
		t.Fatalf("root Leave called %d times, want 0", root.left)
	}
}
