package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/styles"
)

// ConfirmModal is a simple yes/no confirmation dialog.
type ConfirmModal struct {
	message   string
	confirmed bool
	cancelled bool
}

func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{message: message}
}

func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	}
	return m, nil
}

func (m ConfirmModal) View() string {
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningStyle.Render(m.message),
		styles.ModalHelpStyle.Render("Continue? (y/n)"),
	))
}

func (m ConfirmModal) Confirmed() bool { return m.confirmed }
func (m ConfirmModal) Cancelled() bool { return m.cancelled }
