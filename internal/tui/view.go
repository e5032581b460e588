package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := styles.TitleStyle.Render(m.editor.Title())
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panes[omidoc.Comments].View(m.editor.Focus() == omidoc.Comments),
		m.panes[omidoc.Fortunes].View(m.editor.Focus() == omidoc.Fortunes),
	)

	status := styles.StatusStyle.Render(m.help.View(m.keys))
	if m.toasts.HasToasts() {
		status = m.toasts.View(m.width)
	}

	base := lipgloss.JoinVertical(lipgloss.Left, title, panes, status)

	modal := m.modalView()
	if modal == "" {
		return base
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}

// modalView renders the dialog of the current state, empty in the normal
// state.
func (m Model) modalView() string {
	switch m.state {
	case stateEditing:
		return m.edit.View()
	case stateFinding:
		return m.find.View()
	case statePrompting:
		if m.prompt != nil {
			return m.prompt.View()
		}
	case statePickingRecent:
		return m.recent.View()
	case stateShowingHelp:
		return m.helpView.View()
	case stateConfirmingReload:
		return m.confirm.View()
	}
	return ""
}
