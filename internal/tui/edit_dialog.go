package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/styles"
)

// editMode says what an accepted edit dialog does with its text.
type editMode int

const (
	editAdd editMode = iota
	editInsert
	editReplace
)

// EditDialog edits the text of one entry. ctrl+s accepts, esc cancels.
type EditDialog struct {
	title    string
	mode     editMode
	area     textarea.Model
	done     bool
	accepted bool
}

func NewEditDialog(title string, mode editMode, text string, width, height int) EditDialog {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Placeholder = "Type the entry text..."
	ta.SetWidth(max(min(width-10, 80), 20))
	ta.SetHeight(max(min(height-12, 12), 3))
	ta.SetValue(text)
	ta.Focus()

	return EditDialog{title: title, mode: mode, area: ta}
}

func (d EditDialog) Update(msg tea.Msg) (EditDialog, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+s":
			d.done, d.accepted = true, true
			return d, nil
		case "esc":
			d.done = true
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.area, cmd = d.area.Update(msg)
	return d, cmd
}

// Done reports whether the dialog was closed.
func (d EditDialog) Done() bool { return d.done }

// Accepted reports whether the dialog was closed with ctrl+s.
func (d EditDialog) Accepted() bool { return d.accepted }

// Value returns the edited text.
func (d EditDialog) Value() string { return d.area.Value() }

func (d EditDialog) View() string {
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(d.title),
		d.area.View(),
		styles.ModalHelpStyle.Render("ctrl+s accept • esc cancel"),
	))
}
