package home

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/mood"
	"github.com/mindora-app/mindora/internal/screens/player"
	"github.com/mindora-app/mindora/internal/screens/screentest"
	"github.com/mindora-app/mindora/internal/selfupdate"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/tips"
)

type fakeUpdates struct {
	latest string
	err    error
}

func (f fakeUpdates) Check(_ context.Context, in *selfupdate.CheckInput) (*selfupdate.CheckResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &selfupdate.CheckResult{
		CurrentVersion:  in.Version,
		LatestVersion:   f.latest,
		UpdateAvailable: f.latest != in.Version,
	}, nil
}

// settle feeds every message produced by cmd back into h and returns the
// messages h did not consume.
func settle(h *HomeScreen, cmd tea.Cmd) []tea.Msg {
	var rest []tea.Msg
	for _, msg := range screentest.Run(cmd) {
		switch msg.(type) {
		case dashboardMsg, tipMsg, updateMsg:
			_, next := h.Update(msg)
			rest = append(rest, settle(h, next)...)
		default:
			rest = append(rest, msg)
		}
	}
	return rest
}

func TestHome_EmptyDashboard(t *testing.T) {
	now := time.Now()
	h := New(screentest.Deps(t, now))
	rest := settle(h, h.Init())

	require.Contains(t, rest, tea.Msg(screens.StatusMsg{Streak: 0}))
	assert.Equal(t, assessment.MoodUnmeasured, h.Zone())

	view := h.View(120, 50)
	assert.Contains(t, view, "Not measured yet")
	assert.Contains(t, view, "Tip of the day")
	assert.Contains(t, view, tips.FallbackTip(now).Title)
	assert.Contains(t, view, "Check my mood")
	assert.Contains(t, view, "Quick: Quick Meditation")
	assert.NotContains(t, view, "Your stress levels are high")
}

func TestHome_RedMoodShowsAlertAndStreak(t *testing.T) {
	now := time.Now()
	deps := screentest.Deps(t, now)
	require.NoError(t, deps.Events.AppendMoodEvent(context.Background(), store.MoodEventData{
		Temperature: 4.5,
		Zone:        string(assessment.MoodRed),
		Answers:     []int{5, 4, 5, 4},
	}))

	h := New(deps)
	rest := settle(h, h.Init())

	assert.Contains(t, rest, tea.Msg(screens.StatusMsg{Streak: 1}))
	assert.Equal(t, assessment.MoodRed, h.Zone())
	view := h.View(120, 50)
	assert.Contains(t, view, "Your stress levels are high")
	assert.Contains(t, view, "4.5")
	assert.Contains(t, view, "Stress this week")
}

func TestHome_RefreshPicksUpNewMood(t *testing.T) {
	now := time.Now()
	deps := screentest.Deps(t, now)
	h := New(deps)
	settle(h, h.Init())
	require.Equal(t, assessment.MoodUnmeasured, h.Zone())

	require.NoError(t, deps.Events.AppendMoodEvent(context.Background(), store.MoodEventData{
		Temperature: 1.5,
		Zone:        string(assessment.MoodGreen),
		Answers:     []int{1, 2, 2, 1},
	}))
	settle(h, h.Refresh())
	assert.Equal(t, assessment.MoodGreen, h.Zone())
}

func TestHome_MenuPushesScreens(t *testing.T) {
	h := New(screentest.Deps(t, time.Now()))

	_, cmd := h.Update(screentest.Key("enter"))
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &mood.MoodScreen{}, push.Screen)

	// Check my mood, assessment, exercises, then the quick exercises.
	for range 3 {
		h.Update(screentest.Key("down"))
	}
	_, cmd = h.Update(screentest.Key("enter"))
	msgs = screentest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok = msgs[0].(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &player.PlayerScreen{}, push.Screen)
}

func TestHome_UpdateNote(t *testing.T) {
	deps := screentest.Deps(t, time.Now())
	deps.Version = "v1.0.0"
	deps.Updates = fakeUpdates{latest: "v1.2.0"}
	h := New(deps)
	settle(h, h.Init())
	assert.Contains(t, h.View(120, 50), "New version v1.2.0 available")
}

func TestHome_UpdateCheckFailureIsQuiet(t *testing.T) {
	deps := screentest.Deps(t, time.Now())
	deps.Version = "v1.0.0"
	deps.Updates = fakeUpdates{err: errors.New("offline")}
	h := New(deps)
	settle(h, h.Init())
	assert.NotContains(t, h.View(120, 50), "New version")
}

func TestGreeting(t *testing.T) {
	day := func(hour int) time.Time { return time.Date(2026, 3, 2, hour, 0, 0, 0, time.Local) }
	assert.Equal(t, "Good morning, Sam", greeting("Sam", day(8)))
	assert.Equal(t, "Good afternoon", greeting("", day(13)))
	assert.Equal(t, "Good evening, Sam", greeting("Sam", day(21)))
}

func TestVariantFor(t *testing.T) {
	assert.Equal(t, CompanionCalm, VariantFor(assessment.MoodGreen))
	assert.Equal(t, CompanionConcerned, VariantFor(assessment.MoodYellow))
	assert.Equal(t, CompanionCaring, VariantFor(assessment.MoodRed))
}
