package calendar

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/screentest"
	"github.com/mindora-app/mindora/internal/store"
)

// Wednesday.
var now = time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)

func send(c *CalendarScreen, msgs ...tea.Msg) {
	for _, m := range msgs {
		_, cmd := c.Update(m)
		settle(c, cmd)
	}
}

func settle(c *CalendarScreen, cmd tea.Cmd) {
	for _, msg := range screentest.Run(cmd) {
		switch msg.(type) {
		case loadedMsg, savedMsg:
			_, next := c.Update(msg)
			settle(c, next)
		}
	}
}

func typeText(c *CalendarScreen, s string) {
	for _, m := range screentest.Type(s) {
		c.Update(m)
	}
}

func open(t *testing.T, deps *screens.Deps) *CalendarScreen {
	t.Helper()
	c := New(deps)
	settle(c, c.Init())
	return c
}

func TestCalendar_Navigation(t *testing.T) {
	c := open(t, screentest.Deps(t, now))
	assert.Equal(t, "2026-06-03", c.Selected().Format(store.DayLayout))

	send(c, screentest.Key("right"))
	assert.Equal(t, "2026-06-04", c.Selected().Format(store.DayLayout))
	send(c, screentest.Key("up"))
	assert.Equal(t, "2026-05-28", c.Selected().Format(store.DayLayout))
	send(c, screentest.Key("n"))
	assert.Equal(t, "2026-06-28", c.Selected().Format(store.DayLayout))
	send(c, screentest.Key("t"))
	assert.Equal(t, "2026-06-03", c.Selected().Format(store.DayLayout))

	view := c.View(110, 30)
	assert.Contains(t, view, "June 2026")
	assert.Contains(t, view, "Wednesday 3 June")
}

func TestCalendar_AddEvent(t *testing.T) {
	deps := screentest.Deps(t, now)
	c := open(t, deps)

	send(c, screentest.Key("a"))
	assert.True(t, c.CapturingInput())
	typeText(c, "Lunch walk")
	send(c, screentest.Key("tab"))
	typeText(c, "12:30")
	send(c, screentest.Key("enter"))

	assert.False(t, c.CapturingInput())
	require.NoError(t, c.err)
	evs := c.DayEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "Lunch walk", evs[0].Title)
	assert.Equal(t, "12:30", evs[0].Time)
	assert.Contains(t, c.View(110, 30), "Lunch walk")
}

func TestCalendar_AddRejectsBadTime(t *testing.T) {
	c := open(t, screentest.Deps(t, now))
	send(c, screentest.Key("a"))
	typeText(c, "Yoga")
	send(c, screentest.Key("tab"))
	typeText(c, "25:99")
	send(c, screentest.Key("enter"))

	assert.True(t, c.CapturingInput(), "form stays open")
	assert.Error(t, c.err)
	assert.Empty(t, c.DayEvents())
}

func TestCalendar_DeleteEvent(t *testing.T) {
	deps := screentest.Deps(t, now)
	ctx := context.Background()
	require.NoError(t, deps.Calendar.Add(ctx, &store.CalendarEvent{Day: "2026-06-03", Time: "08:00", Title: "Stretch"}))
	require.NoError(t, deps.Calendar.Add(ctx, &store.CalendarEvent{Day: "2026-06-03", Time: "18:00", Title: "Run"}))
	c := open(t, deps)
	require.Len(t, c.DayEvents(), 2)

	send(c, screentest.Key("tab"), screentest.Key("down"), screentest.Key("d"))
	evs := c.DayEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "Stretch", evs[0].Title)
}

func TestCalendar_MonthChangeReloads(t *testing.T) {
	deps := screentest.Deps(t, now)
	require.NoError(t, deps.Calendar.Add(context.Background(), &store.CalendarEvent{Day: "2026-07-03", Title: "Holiday"}))
	c := open(t, deps)
	assert.Empty(t, c.events)

	send(c, screentest.Key("n"))
	require.Len(t, c.DayEvents(), 1)
	assert.Equal(t, "Holiday", c.DayEvents()[0].Title)
}
