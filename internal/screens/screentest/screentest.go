// Package screentest has helpers for driving screens in tests.
package screentest

import (
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/store"
)

var namedKeys = map[string]rune{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
}

// Key builds a key press from its string form: a named key such as
// "enter", a single character, or "ctrl+" followed by a character.
func Key(s string) tea.KeyPressMsg {
	if code, ok := namedKeys[s]; ok {
		return tea.KeyPressMsg{Code: code}
	}
	if len(s) == 6 && s[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(s[5]), Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// Type returns one key press per character of s.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// Patience bounds how long Run waits for a single command.
var Patience = 250 * time.Millisecond

// Run executes cmd and returns the messages it produced, expanding
// batches. Commands still running after Patience, such as cursor blinks
// and timers, are abandoned. A nil cmd yields nothing.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(Patience):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// OpenStore opens a store in a temporary directory that is closed when
// the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Deps returns screen dependencies backed by a fresh store, the built-in
// exercise catalog and a fixed clock.
func Deps(t *testing.T, now time.Time) *screens.Deps {
	t.Helper()
	st := OpenStore(t)
	return &screens.Deps{
		Events:   st.EventRepo(),
		Journal:  st.JournalRepo(),
		Calendar: st.CalendarRepo(),
		Catalog:  exercises.Default(),
		Now:      func() time.Time { return now },
	}
}
