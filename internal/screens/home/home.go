// Package home is the dashboard: greeting, mood, stress trend, the tip
// of the day and the main menu.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/progress"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/assess"
	"github.com/mindora-app/mindora/internal/screens/browse"
	"github.com/mindora-app/mindora/internal/screens/calendar"
	"github.com/mindora-app/mindora/internal/screens/history"
	"github.com/mindora-app/mindora/internal/screens/journal"
	"github.com/mindora-app/mindora/internal/screens/mood"
	"github.com/mindora-app/mindora/internal/screens/player"
	"github.com/mindora-app/mindora/internal/selfupdate"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/tips"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

type (
	dashboardMsg struct {
		latest *store.MoodEvent
		daily  []progress.Point
		streak int
		err    error
	}
	tipMsg struct {
		tip tips.Tip
	}
	updateMsg struct {
		latest string
	}
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps          *screens.Deps
	menu          components.Menu
	latest        *store.MoodEvent
	daily         []progress.Point
	tip           *tips.Tip
	latestVersion string
	err           error
}

var (
	_ screen.Screen    = (*HomeScreen)(nil)
	_ router.Refresher = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	if deps == nil {
		deps = &screens.Deps{}
	}
	if deps.Catalog == nil {
		deps.Catalog = exercises.Default()
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd { return router.Push(build()) }
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	d := h.deps
	items := []components.MenuItem{
		{Label: "Check my mood", Hint: "4 questions", Action: push(func() screen.Screen { return mood.New(d) })},
		{Label: "Burnout self-assessment", Action: push(func() screen.Screen { return assess.New(d) })},
		{Label: "Exercises", Hint: "breathing, meditation, movement", Action: push(func() screen.Screen { return browse.New(d) })},
	}
	for _, ex := range d.Catalog.Quick() {
		items = append(items, components.MenuItem{
			Label: "Quick: " + ex.Title,
			Hint:  exercises.FormatDuration(ex.Duration),
			Action: func() tea.Cmd {
				p, err := player.New(d, ex)
				if err != nil {
					slog.Error("open quick exercise", "exercise", ex.ID, "error", err)
					return nil
				}
				return router.Push(p)
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Journal", Action: push(func() screen.Screen { return journal.New(d) })},
		components.MenuItem{Label: "Calendar", Action: push(func() screen.Screen { return calendar.New(d) })},
		components.MenuItem{Label: "Progress", Action: push(func() screen.Screen { return history.New(d) })},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.loadDashboard(), h.loadTip(), h.checkUpdate())
}

func (h *HomeScreen) Refresh() tea.Cmd { return h.loadDashboard() }

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) loadDashboard() tea.Cmd {
	d := h.deps
	if d.Events == nil {
		return nil
	}
	return func() tea.Msg {
		now := d.Clock()
		var journal progress.JournalLister
		if d.Journal != nil {
			journal = d.Journal
		}
		in, err := progress.Load(context.Background(), d.Events, journal)
		if err != nil {
			return dashboardMsg{err: err}
		}

		msg := dashboardMsg{
			daily:  progress.DailyStress(in.Moods, now),
			streak: progress.Summarize(in, now).Streak,
		}
		if len(in.Moods) > 0 {
			// Query results are newest first.
			latest := in.Moods[0]
			msg.latest = &latest
		}
		return msg
	}
}

func (h *HomeScreen) loadTip() tea.Cmd {
	d := h.deps
	return func() tea.Msg {
		now := d.Clock()
		if d.Tips == nil {
			return tipMsg{tip: tips.FallbackTip(now)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return tipMsg{tip: d.Tips.DailyTip(ctx, now)}
	}
}

func (h *HomeScreen) checkUpdate() tea.Cmd {
	d := h.deps
	if d.Updates == nil || d.Version == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		res, err := d.Updates.Check(ctx, &selfupdate.CheckInput{Version: d.Version})
		if err != nil {
			slog.Debug("update check failed", "error", err)
			return nil
		}
		if !res.UpdateAvailable {
			return nil
		}
		return updateMsg{latest: res.LatestVersion}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		h.err = msg.err
		if msg.err != nil {
			slog.Error("load dashboard", "error", msg.err)
			return h, nil
		}
		h.latest = msg.latest
		h.daily = msg.daily
		streak := msg.streak
		return h, func() tea.Msg { return screens.StatusMsg{Streak: streak} }
	case tipMsg:
		h.tip = &msg.tip
		return h, nil
	case updateMsg:
		h.latestVersion = msg.latest
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Zone is the latest measured mood zone.
func (h *HomeScreen) Zone() assessment.MoodZone {
	if h.latest == nil {
		return assessment.MoodUnmeasured
	}
	return assessment.MoodZone(h.latest.Zone)
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := width < layout.CompactWidth || height < 34
	now := h.deps.Clock()

	var sections []string
	sections = append(sections, renderGreeting(h.deps.UserName(), now, h.Zone(), cw))
	if h.Zone() == assessment.MoodRed {
		sections = append(sections, renderStressAlert(cw))
	}

	half := (cw - 2) / 2
	if compact {
		sections = append(sections, renderMoodCard(h.latest, cw))
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			renderMoodCard(h.latest, half), "  ", renderTip(h.tip, half)))
		if len(h.daily) > 0 {
			sections = append(sections, renderStressWeek(h.daily, cw))
		}
	}

	sections = append(sections, h.menu.View())
	if h.latestVersion != "" {
		sections = append(sections, renderUpdateNote(h.latestVersion, cw))
	}
	if h.err != nil {
		sections = append(sections, theme.ErrorText.Render(fmt.Sprintf("Could not load your data: %v", h.err)))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "enter", Description: "Open"},
		{Key: "ctrl+c", Description: "Quit"},
	}
}
