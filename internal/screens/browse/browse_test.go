package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screens/player"
	"github.com/mindora-app/mindora/internal/screens/screentest"
)

var now = time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)

func TestBrowse_TabsFilterByCategory(t *testing.T) {
	b := New(screentest.Deps(t, now))
	all := len(b.Visible())
	require.NotZero(t, all)

	b.Update(screentest.Key("right"))
	cat := b.tabs[b.tab].ID
	require.NotEmpty(t, b.Visible())
	assert.Less(t, len(b.Visible()), all)
	for _, e := range b.Visible() {
		assert.Equal(t, cat, e.Category)
	}

	b.Update(screentest.Key("left"))
	assert.Len(t, b.Visible(), all)
}

func TestBrowse_SearchCapturesInput(t *testing.T) {
	b := New(screentest.Deps(t, now))
	assert.False(t, b.CapturingInput())

	b.Update(screentest.Key("/"))
	assert.True(t, b.CapturingInput())

	for _, msg := range screentest.Type("box") {
		b.Update(msg)
	}
	require.NotEmpty(t, b.Visible())
	for _, e := range b.Visible() {
		assert.Contains(t, e.Title+e.Description, "Box")
	}

	b.Update(screentest.Key("esc"))
	assert.False(t, b.CapturingInput())
	assert.Equal(t, "box", b.search.Value(), "leaving the box keeps the filter")
}

func TestBrowse_NoMatches(t *testing.T) {
	b := New(nil)
	b.Update(screentest.Key("/"))
	for _, msg := range screentest.Type("zzzzzz") {
		b.Update(msg)
	}
	assert.Empty(t, b.Visible())
	assert.Contains(t, b.View(100, 30), "No exercises match.")

	b.Update(screentest.Key("esc"))
	_, cmd := b.Update(screentest.Key("enter"))
	assert.Nil(t, cmd)
}

func TestBrowse_EnterOpensPlayer(t *testing.T) {
	b := New(screentest.Deps(t, now))
	b.Update(screentest.Key("down"))
	want := b.Visible()[1]

	_, cmd := b.Update(screentest.Key("enter"))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	p, ok := push.Screen.(*player.PlayerScreen)
	require.True(t, ok)
	assert.Equal(t, want.Title, p.Title())
}
