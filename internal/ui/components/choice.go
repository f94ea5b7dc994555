package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

// Choice is a single-select list of options for a question. The cursor
// moves with the arrows; space, enter or the option's number picks it.
// Picked is -1 until an option is chosen.
type Choice struct {
	Prompt  string
	Options []string
	Cursor  int
	Picked  int
}

func NewChoice(prompt string, options []string) Choice {
	return Choice{Prompt: prompt, Options: options, Picked: -1}
}

// WithPicked preselects option i, e.g. when revisiting an answered
// question.
func (c Choice) WithPicked(i int) Choice {
	if i >= 0 && i < len(c.Options) {
		c.Picked, c.Cursor = i, i
	}
	return c
}

// ChoicePickedMsg is sent when the user picks an option.
type ChoicePickedMsg struct {
	Index int
}

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	s := key.String()
	switch s {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "space", " ", "enter":
		return c.pick(c.Cursor)
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if i := int(s[0] - '1'); i < len(c.Options) {
			return c.pick(i)
		}
	}
	return c, nil
}

func (c Choice) pick(i int) (Choice, tea.Cmd) {
	c.Picked, c.Cursor = i, i
	return c, func() tea.Msg { return ChoicePickedMsg{Index: i} }
}

func (c Choice) View(width int) string {
	var b strings.Builder
	if c.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(c.Prompt))
		b.WriteString("\n\n")
	}
	for i, opt := range c.Options {
		mark := "( )"
		if i == c.Picked {
			mark = "(•)"
		}
		cursor := "  "
		style := theme.Unselected
		if i == c.Cursor {
			cursor = "▸ "
			style = theme.Selected
		}
		if i == c.Picked && i != c.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %d. %s", cursor, mark, i+1, opt)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
