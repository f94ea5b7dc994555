package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with text fields. While it
// reports true the app stops treating esc and q as navigation keys and
// forwards them to the screen.
type InputCapturer interface {
	CapturingInput() bool
}
