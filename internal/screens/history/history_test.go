package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindora-app/mindora/internal/screens/screentest"
	"github.com/mindora-app/mindora/internal/store"
)

var now = time.Now()

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msgs := screentest.Run(s.Init())
	require.Len(t, msgs, 1)
	s.Update(msgs[0])
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(nil)
	if s.Title() != "Progress" {
		t.Errorf("Title = %q, want %q", s.Title(), "Progress")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(screentest.Deps(t, now))
	assert.Contains(t, s.View(100, 30), "Loading")
	load(t, s)
	assert.Contains(t, s.View(100, 30), "Nothing here yet")
}

func TestHistoryScreen_Summary(t *testing.T) {
	deps := screentest.Deps(t, now)
	ctx := context.Background()
	require.NoError(t, deps.Events.AppendMoodEvent(ctx, store.MoodEventData{Temperature: 3, Zone: "yellow", Answers: []int{3, 3, 3, 3}}))
	for _, action := range []string{store.ActionStart, store.ActionComplete} {
		require.NoError(t, deps.Events.AppendExerciseEvent(ctx, store.ExerciseEventData{
			SessionID: "s1", ExerciseID: "box-breathing", Action: action, ElapsedSecs: 240,
		}))
	}
	require.NoError(t, deps.Journal.Create(ctx, &store.JournalEntry{Title: "Today"}))

	s := New(deps)
	load(t, s)

	sum := s.Summary()
	assert.Equal(t, 1, sum.MoodChecks)
	assert.Equal(t, 1, sum.SessionsCompleted)
	assert.Equal(t, 4, sum.MinutesPracticed)
	assert.Equal(t, 1, sum.JournalEntries)
	assert.Equal(t, 1, sum.Streak)
	assert.InDelta(t, 50.0, sum.CurrentStress, 1e-9)

	view := s.View(110, 40)
	assert.Contains(t, view, "Box Breathing")
	assert.Contains(t, view, "completed")

	s.Update(screentest.Key("enter"))
	assert.Contains(t, s.View(110, 40), "4:00 practised")
}
