package components

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

// Field is a labelled single-line input.
type Field struct {
	Label string
	Model textinput.Model
}

func NewField(label, placeholder string, limit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	return Field{Label: label, Model: ti}
}

// NewSecretField masks what is typed, for passwords.
func NewSecretField(label, placeholder string) Field {
	f := NewField(label, placeholder, 0)
	f.Model.EchoMode = textinput.EchoPassword
	f.Model.EchoCharacter = '•'
	return f
}

func (f *Field) Focus() tea.Cmd { return f.Model.Focus() }
func (f *Field) Blur()          { f.Model.Blur() }
func (f Field) Focused() bool   { return f.Model.Focused() }
func (f Field) Value() string   { return f.Model.Value() }
func (f *Field) SetValue(v string) {
	f.Model.SetValue(v)
}

func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

func (f Field) View(width int) string {
	f.Model.SetWidth(max(width-lipgloss.Width(f.Label)-4, 10))
	label := theme.Subtitle
	if f.Model.Focused() {
		label = theme.Selected
	}
	return label.Render(f.Label) + "  " + f.Model.View()
}

// Editor is a multi-line text area for journal bodies.
type Editor struct {
	Model textarea.Model
}

func NewEditor(placeholder string) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return Editor{Model: ta}
}

func (e *Editor) Focus() tea.Cmd { return e.Model.Focus() }
func (e *Editor) Blur()          { e.Model.Blur() }
func (e Editor) Focused() bool   { return e.Model.Focused() }
func (e Editor) Value() string   { return e.Model.Value() }
func (e *Editor) SetValue(v string) {
	e.Model.SetValue(v)
}

func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

func (e Editor) View(width, height int) string {
	e.Model.SetWidth(width)
	e.Model.SetHeight(max(height, 3))
	return e.Model.View()
}
