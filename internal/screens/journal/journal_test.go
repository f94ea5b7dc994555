package journal

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/screentest"
	"github.com/mindora-app/mindora/internal/store"
)

var now = time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)

// settle runs cmd and feeds every resulting message back into j, until
// nothing is left. Cursor blink ticks are dropped.
func settle(j *JournalScreen, cmd tea.Cmd) {
	for _, msg := range screentest.Run(cmd) {
		switch msg.(type) {
		case loadedMsg, savedMsg, promptMsg:
			_, next := j.Update(msg)
			settle(j, next)
		}
	}
}

func send(j *JournalScreen, msgs ...tea.Msg) {
	for _, m := range msgs {
		_, cmd := j.Update(m)
		settle(j, cmd)
	}
}

// typeText sends s one key at a time. Typing only yields cursor
// commands, which are dropped.
func typeText(j *JournalScreen, s string) {
	for _, m := range screentest.Type(s) {
		j.Update(m)
	}
}

func open(t *testing.T, deps *screens.Deps) *JournalScreen {
	t.Helper()
	j := New(deps)
	settle(j, j.Init())
	return j
}

func TestJournal_WriteNewEntry(t *testing.T) {
	deps := screentest.Deps(t, now)
	require.NoError(t, deps.Events.AppendMoodEvent(context.Background(), store.MoodEventData{
		Temperature: 4.5, Zone: string(assessment.MoodRed), Answers: []int{5, 4, 5, 4},
	}))
	j := open(t, deps)
	assert.Contains(t, j.View(100, 30), "No entries yet")

	send(j, screentest.Key("n"))
	assert.True(t, j.CapturingInput())
	assert.NotEmpty(t, j.prompt, "a prompt is offered for new entries")
	assert.Equal(t, assessment.MoodRed, j.zone)

	typeText(j, "Long day")
	send(j, screentest.Key("tab"))
	typeText(j, "Too many meetings.")
	send(j, screentest.Key("ctrl+s"))

	assert.False(t, j.CapturingInput())
	require.Len(t, j.Entries(), 1)
	e := j.Entries()[0]
	assert.Equal(t, "Long day", e.Title)
	assert.Equal(t, "Too many meetings.", e.Body)
	assert.Equal(t, string(assessment.MoodRed), e.Mood)
}

func TestJournal_TitleRequired(t *testing.T) {
	j := open(t, screentest.Deps(t, now))
	send(j, screentest.Key("n"), screentest.Key("ctrl+s"))

	assert.True(t, j.CapturingInput(), "editor stays open")
	require.Error(t, j.err)
	assert.Empty(t, j.Entries())
}

func TestJournal_EditExisting(t *testing.T) {
	deps := screentest.Deps(t, now)
	require.NoError(t, deps.Journal.Create(context.Background(), &store.JournalEntry{Title: "Draft", Body: "first"}))
	j := open(t, deps)
	require.Len(t, j.Entries(), 1)

	send(j, screentest.Key("enter"))
	assert.Equal(t, "Draft", j.title.Value())
	typeText(j, " v2")
	send(j, screentest.Key("ctrl+s"))

	require.Len(t, j.Entries(), 1)
	assert.Equal(t, "Draft v2", j.Entries()[0].Title)
	assert.Equal(t, "first", j.Entries()[0].Body)
}

func TestJournal_DeleteNeedsConfirmation(t *testing.T) {
	deps := screentest.Deps(t, now)
	ctx := context.Background()
	require.NoError(t, deps.Journal.Create(ctx, &store.JournalEntry{Title: "Keep me"}))
	j := open(t, deps)

	send(j, screentest.Key("d"))
	assert.True(t, j.CapturingInput())
	send(j, screentest.Key("n"))
	assert.Len(t, j.Entries(), 1, "any key but y keeps the entry")

	send(j, screentest.Key("d"), screentest.Key("y"))
	assert.Empty(t, j.Entries())
}

func TestJournal_EscDiscardsEdits(t *testing.T) {
	j := open(t, screentest.Deps(t, now))
	send(j, screentest.Key("n"))
	typeText(j, "Never mind")
	send(j, screentest.Key("esc"))

	assert.False(t, j.CapturingInput())
	assert.Empty(t, j.Entries())
}
