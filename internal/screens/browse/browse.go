// Package browse lists the exercise catalog by category with a search
// box, and opens the player for the chosen exercise.
package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/exercises"
	"github.com/mindora-app/mindora/internal/router"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/screens/player"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

// BrowseScreen shows the catalog filtered by a category tab and a search
// term.
type BrowseScreen struct {
	deps    *screens.Deps
	catalog *exercises.Catalog
	tabs    []exercises.Category
	tab     int
	search  components.Field
	visible []exercises.Exercise
	cursor  int
	err     error
}

var (
	_ screen.Screen        = (*BrowseScreen)(nil)
	_ screen.InputCapturer = (*BrowseScreen)(nil)
)

func New(deps *screens.Deps) *BrowseScreen {
	catalog := exercises.Default()
	if deps != nil && deps.Catalog != nil {
		catalog = deps.Catalog
	}
	tabs := append([]exercises.Category{{ID: exercises.AllCategories, Name: "All"}}, catalog.Categories()...)
	b := &BrowseScreen{
		deps:    deps,
		catalog: catalog,
		tabs:    tabs,
		search:  components.NewField("Search", "title or description", 40),
	}
	b.filter()
	return b
}

func (b *BrowseScreen) Init() tea.Cmd { return nil }

func (b *BrowseScreen) Title() string { return "Exercises" }

func (b *BrowseScreen) CapturingInput() bool { return b.search.Focused() }

// Visible returns the exercises matching the current tab and search.
func (b *BrowseScreen) Visible() []exercises.Exercise { return b.visible }

func (b *BrowseScreen) filter() {
	b.visible = b.catalog.Filter(b.tabs[b.tab].ID, b.search.Value())
	if b.cursor >= len(b.visible) {
		b.cursor = max(len(b.visible)-1, 0)
	}
}

func (b *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if b.search.Focused() {
			var cmd tea.Cmd
			b.search, cmd = b.search.Update(msg)
			return b, cmd
		}
		return b, nil
	}

	if b.search.Focused() {
		switch key.String() {
		case "esc", "enter", "down":
			b.search.Blur()
			return b, nil
		}
		var cmd tea.Cmd
		b.search, cmd = b.search.Update(msg)
		b.filter()
		return b, cmd
	}

	switch key.String() {
	case "/":
		return b, b.search.Focus()
	case "left", "shift+tab":
		b.tab = (b.tab + len(b.tabs) - 1) % len(b.tabs)
		b.filter()
	case "right", "tab":
		b.tab = (b.tab + 1) % len(b.tabs)
		b.filter()
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.visible)-1 {
			b.cursor++
		}
	case "enter":
		return b, b.open()
	}
	return b, nil
}

func (b *BrowseScreen) open() tea.Cmd {
	if len(b.visible) == 0 {
		return nil
	}
	p, err := player.New(b.deps, b.visible[b.cursor])
	if err != nil {
		b.err = err
		return nil
	}
	b.err = nil
	return router.Push(p)
}

func (b *BrowseScreen) View(width, height int) string {
	cw := min(width-4, 96)
	inner := cw - 6

	var out strings.Builder
	out.WriteString(b.renderTabs())
	out.WriteString("\n\n")
	out.WriteString(b.search.View(inner))
	out.WriteString("\n\n")

	if len(b.visible) == 0 {
		out.WriteString(theme.Hint.Render("No exercises match."))
	}
	// Keep the cursor in view: each entry takes two lines.
	rows := max((height-12)/2, 3)
	start := max(b.cursor-rows+1, 0)
	for i := start; i < len(b.visible) && i < start+rows; i++ {
		out.WriteString(b.entry(i, inner))
		out.WriteString("\n")
	}
	if b.err != nil {
		out.WriteString("\n")
		out.WriteString(theme.ErrorText.Render(b.err.Error()))
	}
	return layout.Centered(theme.Card.Width(cw).Render(strings.TrimRight(out.String(), "\n")), width, height)
}

func (b *BrowseScreen) renderTabs() string {
	parts := make([]string, len(b.tabs))
	for i, t := range b.tabs {
		style := theme.Subtitle.Padding(0, 1)
		if i == b.tab {
			style = lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.Text).Bold(true).Padding(0, 1)
		}
		parts[i] = style.Render(t.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (b *BrowseScreen) entry(i, width int) string {
	e := b.visible[i]
	title := theme.Unselected.Render("  " + e.Title)
	if i == b.cursor {
		title = theme.Selected.Render("▸ " + e.Title)
	}
	meta := theme.Hint.Render(fmt.Sprintf("%s · %s", b.catalog.CategoryName(e.Category), exercises.FormatDuration(e.Duration)))
	desc := theme.Subtitle.MaxWidth(width - 4).Render(e.Description)
	return title + "  " + meta + "\n    " + desc
}

func (b *BrowseScreen) KeyHints() []layout.KeyHint {
	if b.search.Focused() {
		return []layout.KeyHint{
			{Key: "type", Description: "Filter"},
			{Key: "enter/esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "↑↓", Description: "Move"},
		{Key: "/", Description: "Search"},
		{Key: "enter", Description: "Play"},
		{Key: "esc", Description: "Back"},
	}
}
