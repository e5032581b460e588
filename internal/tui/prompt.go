package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/hay-kot/omiquji/internal/core/styles"
	"github.com/hay-kot/omiquji/internal/core/validate"
)

type promptKind int

const (
	promptUnsaved promptKind = iota
	promptOpen
	promptSaveAs
)

const (
	choiceSave    = "save"
	choiceDiscard = "discard"
	choiceCancel  = "cancel"
)

// Prompt is a huh form shown as a modal inside the editor.
type Prompt struct {
	kind   promptKind
	form   *huh.Form
	choice string
	path   string
}

func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

// newUnsavedPrompt asks what to do with unsaved changes before the
// document is closed.
func newUnsavedPrompt(name string) *Prompt {
	p := &Prompt{kind: promptUnsaved, choice: choiceSave}
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("%s has unsaved changes", name)).
			Description("Do you want to save your changes?").
			Options(
				huh.NewOption("Save", choiceSave),
				huh.NewOption("Discard", choiceDiscard),
				huh.NewOption("Cancel", choiceCancel),
			).
			Value(&p.choice),
	)).WithTheme(styles.FormTheme()).WithKeyMap(promptKeyMap()).WithShowHelp(true)
	return p
}

// newPathPrompt asks for a file path.
func newPathPrompt(kind promptKind, initial string, suggestions []string) *Prompt {
	title := "Open collection"
	if kind == promptSaveAs {
		title = "Save collection as"
	}

	p := &Prompt{kind: kind, path: initial}
	p.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description("Files ending in .omi are saved as omifiles, anything else as strfile text.").
			Suggestions(suggestions).
			Validate(validate.DocumentPath).
			Value(&p.path),
	)).WithTheme(styles.FormTheme()).WithKeyMap(promptKeyMap()).WithShowHelp(true).WithWidth(60)
	return p
}

func (p *Prompt) Init() tea.Cmd {
	return p.form.Init()
}

func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	m, cmd := p.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		p.form = f
	}
	return cmd
}

// Done reports whether the form was submitted or aborted.
func (p *Prompt) Done() bool {
	return p.form.State != huh.StateNormal
}

// Aborted reports whether the form was closed with esc.
func (p *Prompt) Aborted() bool {
	return p.form.State == huh.StateAborted
}

// Choice returns the selected option of an unsaved-changes prompt. An
// aborted prompt counts as cancel.
func (p *Prompt) Choice() string {
	if p.Aborted() {
		return choiceCancel
	}
	return p.choice
}

// Path returns the entered path.
func (p *Prompt) Path() string {
	return strings.TrimSpace(p.path)
}

func (p *Prompt) View() string {
	return styles.ModalStyle.Render(p.form.View())
}
