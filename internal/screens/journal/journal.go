// Package journal lists, writes and deletes reflective journal entries.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mindora-app/mindora/internal/assessment"
	"github.com/mindora-app/mindora/internal/screen"
	"github.com/mindora-app/mindora/internal/screens"
	"github.com/mindora-app/mindora/internal/store"
	"github.com/mindora-app/mindora/internal/tips"
	"github.com/mindora-app/mindora/internal/ui/components"
	"github.com/mindora-app/mindora/internal/ui/layout"
	"github.com/mindora-app/mindora/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modeConfirmDelete
)

type (
	loadedMsg struct {
		entries []store.JournalEntry
		err     error
	}
	savedMsg struct {
		err error
	}
	promptMsg struct {
		prompt string
		zone   assessment.MoodZone
	}
)

// JournalScreen is the journal list with an inline editor.
type JournalScreen struct {
	deps    *screens.Deps
	entries []store.JournalEntry
	cursor  int
	mode    mode
	loaded  bool
	err     error

	// Editor state. editing is nil for a new entry.
	editing *store.JournalEntry
	title   components.Field
	body    components.Editor
	prompt  string
	zone    assessment.MoodZone
}

var (
	_ screen.Screen        = (*JournalScreen)(nil)
	_ screen.InputCapturer = (*JournalScreen)(nil)
)

func New(deps *screens.Deps) *JournalScreen {
	return &JournalScreen{deps: deps, zone: assessment.MoodUnmeasured}
}

func (j *JournalScreen) Title() string { return "Journal" }

func (j *JournalScreen) CapturingInput() bool { return j.mode != modeList }

// Entries returns the loaded entries, newest first.
func (j *JournalScreen) Entries() []store.JournalEntry { return j.entries }

func (j *JournalScreen) Init() tea.Cmd { return j.load() }

func (j *JournalScreen) repo() screens.JournalStore {
	if j.deps == nil {
		return nil
	}
	return j.deps.Journal
}

func (j *JournalScreen) load() tea.Cmd {
	repo := j.repo()
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := repo.List(context.Background(), 0)
		return loadedMsg{entries: entries, err: err}
	}
}

// fetchPrompt asks for a reflection prompt matched to the latest mood.
func (j *JournalScreen) fetchPrompt() tea.Cmd {
	deps := j.deps
	return func() tea.Msg {
		ctx := context.Background()
		zone := assessment.MoodUnmeasured
		now := time.Now()
		if deps != nil {
			now = deps.Clock()
			if deps.Events != nil {
				if m, err := deps.Events.LatestMood(ctx); err != nil {
					slog.Warn("latest mood for journal prompt", "error", err)
				} else if m != nil {
					zone = assessment.MoodZone(m.Zone)
				}
			}
			if deps.Tips != nil {
				return promptMsg{prompt: deps.Tips.JournalPrompt(ctx, zone, now), zone: zone}
			}
		}
		return promptMsg{prompt: tips.FallbackPrompt(zone, now), zone: zone}
	}
}

func (j *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		j.loaded = true
		j.err = msg.err
		j.entries = msg.entries
		j.cursor = min(j.cursor, max(len(j.entries)-1, 0))
		return j, nil

	case savedMsg:
		if msg.err != nil {
			j.err = msg.err
			return j, nil
		}
		j.err = nil
		return j, j.load()

	case promptMsg:
		j.prompt = msg.prompt
		j.zone = msg.zone
		return j, nil

	case tea.KeyPressMsg:
		switch j.mode {
		case modeEdit:
			return j, j.updateEditor(msg)
		case modeConfirmDelete:
			return j, j.updateConfirm(msg)
		}
		return j, j.updateList(msg)
	}

	if j.mode == modeEdit {
		return j, j.forwardToFocused(msg)
	}
	return j, nil
}

func (j *JournalScreen) updateList(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if j.cursor > 0 {
			j.cursor--
		}
	case "down", "j":
		if j.cursor < len(j.entries)-1 {
			j.cursor++
		}
	case "n":
		return j.openEditor(nil)
	case "enter", "e":
		if len(j.entries) > 0 {
			e := j.entries[j.cursor]
			return j.openEditor(&e)
		}
	case "d", "delete":
		if len(j.entries) > 0 {
			j.mode = modeConfirmDelete
		}
	}
	return nil
}

func (j *JournalScreen) updateConfirm(key tea.KeyPressMsg) tea.Cmd {
	j.mode = modeList
	if key.String() != "y" {
		return nil
	}
	repo := j.repo()
	if repo == nil || len(j.entries) == 0 {
		return nil
	}
	id := j.entries[j.cursor].ID
	return func() tea.Msg {
		err := repo.Delete(context.Background(), id)
		if err != nil {
			slog.Error("delete journal entry", "id", id, "error", err)
		}
		return savedMsg{err: err}
	}
}

func (j *JournalScreen) openEditor(e *store.JournalEntry) tea.Cmd {
	j.mode = modeEdit
	j.editing = e
	j.err = nil
	j.title = components.NewField("Title", "What is on your mind?", 120)
	j.body = components.NewEditor("Write freely...")
	if e != nil {
		j.title.SetValue(e.Title)
		j.body.SetValue(e.Body)
		return j.title.Focus()
	}
	j.prompt = ""
	return tea.Batch(j.title.Focus(), j.fetchPrompt())
}

func (j *JournalScreen) updateEditor(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "esc":
		j.mode = modeList
		j.editing = nil
		return nil
	case "tab", "shift+tab":
		if j.title.Focused() {
			j.title.Blur()
			return j.body.Focus()
		}
		j.body.Blur()
		return j.title.Focus()
	case "ctrl+s":
		return j.save()
	}
	return j.forwardToFocused(key)
}

func (j *JournalScreen) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if j.title.Focused() {
		j.title, cmd = j.title.Update(msg)
	} else if j.body.Focused() {
		j.body, cmd = j.body.Update(msg)
	}
	return cmd
}

func (j *JournalScreen) save() tea.Cmd {
	title := strings.TrimSpace(j.title.Value())
	if title == "" {
		j.err = fmt.Errorf("give the entry a title before saving")
		return nil
	}
	repo := j.repo()
	j.mode = modeList
	if repo == nil {
		return nil
	}

	var entry store.JournalEntry
	isNew := j.editing == nil
	if isNew {
		entry.Mood = string(j.zone)
	} else {
		entry = *j.editing
	}
	entry.Title = title
	entry.Body = j.body.Value()
	j.editing = nil
	if isNew {
		j.cursor = 0
	}

	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if isNew {
			err = repo.Create(ctx, &entry)
		} else {
			err = repo.Update(ctx, &entry)
		}
		if err != nil {
			slog.Error("save journal entry", "id", entry.ID, "error", err)
		}
		return savedMsg{err: err}
	}
}

func (j *JournalScreen) View(width, height int) string {
	cw := min(width-4, 96)
	inner := cw - 6
	var body string
	if j.mode == modeEdit {
		body = j.editorView(inner, height)
	} else {
		body = j.listView(inner, height)
	}
	if j.err != nil {
		body += "\n\n" + theme.ErrorText.Render(j.err.Error())
	}
	return layout.Centered(theme.Card.Width(cw).Render(body), width, height)
}

func (j *JournalScreen) listView(width, height int) string {
	if j.loaded && len(j.entries) == 0 {
		return theme.Title.Render("Your journal") + "\n\n" +
			theme.Hint.Render("No entries yet. Press n to write your first one.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your journal"))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d entries", len(j.entries))))
	b.WriteString("\n\n")

	rows := max((height-10)/2, 3)
	start := max(j.cursor-rows+1, 0)
	for i := start; i < len(j.entries) && i < start+rows; i++ {
		e := j.entries[i]
		title := theme.Unselected.Render("  " + e.Title)
		if i == j.cursor {
			title = theme.Selected.Render("▸ " + e.Title)
		}
		date := theme.Hint.Render(e.CreatedAt.Local().Format("Mon 2 Jan 15:04"))
		b.WriteString(title + "  " + date + "\n")
		b.WriteString(theme.Subtitle.MaxWidth(width).Render("    " + e.Excerpt(width-8)))
		b.WriteString("\n")
	}
	if j.mode == modeConfirmDelete {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(fmt.Sprintf("Delete %q? y to confirm, any other key to keep it.", j.entries[j.cursor].Title)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (j *JournalScreen) editorView(width, height int) string {
	var b strings.Builder
	heading := "New entry"
	if j.editing != nil {
		heading = "Edit entry"
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")
	if j.prompt != "" && j.editing == nil {
		b.WriteString(theme.Hint.Width(width).Render("Prompt: " + j.prompt))
		b.WriteString("\n\n")
	}
	b.WriteString(j.title.View(width))
	b.WriteString("\n\n")
	b.WriteString(j.body.View(width, max(height-16, 4)))
	return b.String()
}

func (j *JournalScreen) KeyHints() []layout.KeyHint {
	switch j.mode {
	case modeEdit:
		return []layout.KeyHint{
			{Key: "tab", Description: "Title/Body"},
			{Key: "ctrl+s", Description: "Save"},
			{Key: "esc", Description: "Discard"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{{Key: "y", Description: "Delete"}, {Key: "any", Description: "Keep"}}
	}
	return []layout.KeyHint{
		{Key: "n", Description: "New"},
		{Key: "enter", Description: "Edit"},
		{Key: "d", Description: "Delete"},
		{Key: "esc", Description: "Back"},
	}
}
