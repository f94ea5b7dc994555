// Package calendar shows a month grid with the user's wellness events
// and lets them add and remove events.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

type focus int

const (
	focusGrid focus = iota
	focusList
	focusForm
)

type (
	loadedMsg struct {
		month  time.Time
		events []store.CalendarEvent
		err    error
	}
	savedMsg struct {
		err error
	}
)

// CalendarScreen is a month view with a per-day event list.
type CalendarScreen struct {
	deps     *screens.Deps
	today    time.Time
	selected time.Time
	events   []store.CalendarEvent
	focus    focus
	eventIdx int
	err      error

	timeField  components.Field
	titleField components.Field
}

var (
	_ screen.Screen        = (*CalendarScreen)(nil)
	_ screen.InputCapturer = (*CalendarScreen)(nil)
)

func New(deps *screens.Deps) *CalendarScreen {
	now := time.Now()
	if deps != nil {
		now = deps.Clock()
	}
	today := dayOf(now)
	return &CalendarScreen{deps: deps, today: today, selected: today}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (c *CalendarScreen) Title() string { return "Calendar" }

func (c *CalendarScreen) CapturingInput() bool { return c.focus == focusForm }

// Selected is the highlighted day.
func (c *CalendarScreen) Selected() time.Time { return c.selected }

// DayEvents returns the loaded events on the selected day.
func (c *CalendarScreen) DayEvents() []store.CalendarEvent {
	day := c.selected.Format(store.DayLayout)
	var out []store.CalendarEvent
	for _, e := range c.events {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

func (c *CalendarScreen) Init() tea.Cmd { return c.load() }

func (c *CalendarScreen) repo() screens.CalendarStore {
	if c.deps == nil {
		return nil
	}
	return c.deps.Calendar
}

func (c *CalendarScreen) load() tea.Cmd {
	repo := c.repo()
	if repo == nil {
		return nil
	}
	month := c.selected
	return func() tea.Msg {
		evs, err := repo.ForMonth(context.Background(), month)
		return loadedMsg{month: month, events: evs, err: err}
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func (c *CalendarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if !sameMonth(msg.month, c.selected) {
			return c, nil
		}
		c.events, c.err = msg.events, msg.err
		c.eventIdx = min(c.eventIdx, max(len(c.DayEvents())-1, 0))
		return c, nil

	case savedMsg:
		c.err = msg.err
		return c, c.load()

	case tea.KeyPressMsg:
		switch c.focus {
		case focusForm:
			return c, c.updateForm(msg)
		case focusList:
			return c, c.updateList(msg)
		}
		return c, c.updateGrid(msg)
	}

	if c.focus == focusForm {
		return c, c.forwardToForm(msg)
	}
	return c, nil
}

func (c *CalendarScreen) moveTo(day time.Time) tea.Cmd {
	prev := c.selected
	c.selected = day
	c.eventIdx = 0
	if !sameMonth(prev, day) {
		c.events = nil
		return c.load()
	}
	return nil
}

func (c *CalendarScreen) updateGrid(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "left", "h":
		return c.moveTo(c.selected.AddDate(0, 0, -1))
	case "right", "l":
		return c.moveTo(c.selected.AddDate(0, 0, 1))
	case "up", "k":
		return c.moveTo(c.selected.AddDate(0, 0, -7))
	case "down", "j":
		return c.moveTo(c.selected.AddDate(0, 0, 7))
	case "p", "pgup":
		return c.moveTo(c.selected.AddDate(0, -1, 0))
	case "n", "pgdown":
		return c.moveTo(c.selected.AddDate(0, 1, 0))
	case "t":
		return c.moveTo(c.today)
	case "a":
		return c.openForm()
	case "tab":
		if len(c.DayEvents()) > 0 {
			c.focus = focusList
		}
	}
	return nil
}

func (c *CalendarScreen) updateList(key tea.KeyPressMsg) tea.Cmd {
	evs := c.DayEvents()
	switch key.String() {
	case "tab":
		c.focus = focusGrid
	case "up", "k":
		if c.eventIdx > 0 {
			c.eventIdx--
		}
	case "down", "j":
		if c.eventIdx < len(evs)-1 {
			c.eventIdx++
		}
	case "a":
		return c.openForm()
	case "d", "delete":
		if len(evs) == 0 {
			return nil
		}
		id := evs[c.eventIdx].ID
		if len(evs) == 1 {
			c.focus = focusGrid
		}
		return c.remove(id)
	}
	return nil
}

func (c *CalendarScreen) openForm() tea.Cmd {
	c.focus = focusForm
	c.err = nil
	c.timeField = components.NewField("Time ", "HH:MM (optional)", 5)
	c.titleField = components.NewField("Title", "Lunch walk, yoga class...", 80)
	return c.titleField.Focus()
}

func (c *CalendarScreen) updateForm(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		c.focus = focusGrid
		return nil
	case "tab", "shift+tab":
		if c.titleField.Focused() {
			c.titleField.Blur()
			return c.timeField.Focus()
		}
		c.timeField.Blur()
		return c.titleField.Focus()
	case "enter":
		return c.add()
	}
	return c.forwardToForm(key)
}

func (c *CalendarScreen) forwardToForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.titleField.Focused() {
		c.titleField, cmd = c.titleField.Update(msg)
	} else if c.timeField.Focused() {
		c.timeField, cmd = c.timeField.Update(msg)
	}
	return cmd
}

func (c *CalendarScreen) add() tea.Cmd {
	e := store.CalendarEvent{
		Day:   c.selected.Format(store.DayLayout),
		Time:  strings.TrimSpace(c.timeField.Value()),
		Title: strings.TrimSpace(c.titleField.Value()),
	}
	if e.Title == "" {
		c.err = fmt.Errorf("an event needs a title")
		return nil
	}
	repo := c.repo()
	if repo == nil {
		c.focus = focusGrid
		return nil
	}
	// Validate up front so a bad time keeps the form open.
	if e.Time != "" {
		if _, err := time.Parse("15:04", e.Time); err != nil {
			c.err = fmt.Errorf("time must look like 09:30")
			return nil
		}
	}
	c.focus = focusGrid
	return func() tea.Msg {
		err := repo.Add(context.Background(), &e)
		if err != nil {
			slog.Error("add calendar event", "day", e.Day, "error", err)
		}
		return savedMsg{err: err}
	}
}

func (c *CalendarScreen) remove(id int) tea.Cmd {
	repo := c.repo()
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		err := repo.Delete(context.Background(), id)
		if err != nil {
			slog.Error("delete calendar event", "id", id, "error", err)
		}
		return savedMsg{err: err}
	}
}

func (c *CalendarScreen) View(width, height int) string {
	cw := min(width-4, 96)
	inner := cw - 6

	grid := c.gridView()
	side := c.dayView(max(inner-lipgloss.Width(grid)-4, 20))
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", side)

	if c.focus == focusForm {
		body += "\n\n" + c.timeField.View(inner/2) + "\n" + c.titleField.View(inner)
	}
	if c.err != nil {
		body += "\n\n" + theme.ErrorText.Render(c.err.Error())
	}
	return layout.Centered(theme.Card.Width(cw).Render(body), width, height)
}

// gridView renders the month with weeks starting on Monday.
func (c *CalendarScreen) gridView() string {
	first := time.Date(c.selected.Year(), c.selected.Month(), 1, 0, 0, 0, 0, c.selected.Location())
	busy := make(map[string]bool)
	for _, e := range c.events {
		busy[e.Day] = true
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(27, lipgloss.Center, theme.Title.Render(first.Format("January 2006"))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", offset))
	col := offset
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		b.WriteString(c.cell(d, busy[d.Format(store.DayLayout)]))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString("  ")
		}
	}
	return strings.TrimRight(b.String(), "\n ")
}

func (c *CalendarScreen) cell(d time.Time, busy bool) string {
	label := fmt.Sprintf("%2d", d.Day())
	style := theme.Unselected
	switch {
	case d.Equal(c.selected):
		style = lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.Text).Bold(true)
	case d.Equal(c.today):
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	case busy:
		style = lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true)
	}
	return style.Render(label)
}

func (c *CalendarScreen) dayView(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(c.selected.Format("Monday 2 January")))
	b.WriteString("\n\n")
	evs := c.DayEvents()
	if len(evs) == 0 {
		b.WriteString(theme.Hint.Render("Nothing planned. Press a to add an event."))
		return b.String()
	}
	for i, e := range evs {
		at := e.Time
		if at == "" {
			at = "all day"
		}
		line := fmt.Sprintf("%-7s %s", at, e.Title)
		style := theme.Unselected
		prefix := "  "
		if c.focus == focusList && i == c.eventIdx {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.MaxWidth(width).Render(prefix + line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *CalendarScreen) KeyHints() []layout.KeyHint {
	switch c.focus {
	case focusForm:
		return []layout.KeyHint{
			{Key: "tab", Description: "Field"},
			{Key: "enter", Description: "Save"},
			{Key: "esc", Description: "Cancel"},
		}
	case focusList:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Event"},
			{Key: "d", Description: "Delete"},
			{Key: "tab", Description: "Grid"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: "Day"},
		{Key: "p/n", Description: "Month"},
		{Key: "a", Description: "Add"},
		{Key: "tab", Description: "Events"},
		{Key: "esc", Description: "Back"},
	}
}
