package cmd

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

var errCancelled = errors.New("cancelled")

// promptField describes one value to ask for.
type promptField struct {
	Label  string
	Secret bool
}

// promptModel asks for a few values inline, one field at a time.
type promptModel struct {
	specs     []promptField
	fields    []components.Field
	focus     int
	done      bool
	cancelled bool
	errMsg    string
}

func newPromptModel(specs []promptField) *promptModel {
	m := &promptModel{specs: specs}
	for _, s := range specs {
		f := components.NewField(s.Label, "", 256)
		if s.Secret {
			f = components.NewSecretField(s.Label, "")
		}
		m.fields = append(m.fields, f)
	}
	return m
}

func (m *promptModel) Init() tea.Cmd {
	if len(m.fields) == 0 {
		return tea.Quit
	}
	return m.fields[0].Focus()
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if strings.TrimSpace(m.fields[m.focus].Value()) == "" {
				m.errMsg = m.fields[m.focus].Label + " is required"
				return m, nil
			}
			m.errMsg = ""
			m.fields[m.focus].Blur()
			if m.focus == len(m.fields)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.focus++
			return m, m.fields[m.focus].Focus()
		}
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *promptModel) View() tea.View {
	if m.done || m.cancelled {
		return tea.NewView("")
	}
	var b strings.Builder
	for i := 0; i <= m.focus; i++ {
		b.WriteString(m.fields[i].View(60))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(m.errMsg))
		b.WriteString("\n")
	}
	return tea.NewView(b.String())
}

func (m *promptModel) values() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Value()
		if !m.specs[i].Secret {
			out[i] = strings.TrimSpace(out[i])
		}
	}
	return out
}

// ask prompts for every field whose preset value is empty and returns
// all values in order.
func ask(preset []string, specs []promptField) ([]string, error) {
	var missing []promptField
	var idx []int
	for i, s := range specs {
		if preset[i] == "" {
			missing = append(missing, s)
			idx = append(idx, i)
		}
	}
	out := append([]string(nil), preset...)
	if len(missing) == 0 {
		return out, nil
	}

	m := newPromptModel(missing)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return nil, err
	}
	if m.cancelled {
		return nil, errCancelled
	}
	for j, v := range m.values() {
		out[idx[j]] = v
	}
	return out, nil
}
