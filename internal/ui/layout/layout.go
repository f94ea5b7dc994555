package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidth = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the right-hand side of the header.
type Status struct {
	User   string
	Streak int
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf(
			"Please make the terminal a little larger.\n\nNeeded: %d x %d\nNow: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the brand on the left, the title in the middle and
// the user's name and streak on the right.
func RenderHeader(title string, st Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" Mindora")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	var right string
	if st.User != "" {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(st.User)
	}
	if st.Streak > 0 {
		if right != "" {
			right += "  "
		}
		right += lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d-day streak", st.Streak))
	}

	inner := width - 4
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return bar(line, width)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return bar(" "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// ContentHeight is what remains of height once header and footer are
// drawn.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Centered places content in the middle of a width x height box.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Message renders a dim single-line notice near the top of the content
// area, used for loading and empty states.
func Message(text string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + text)
}
