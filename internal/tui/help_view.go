package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/docs"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

const (
	helpMaxWidth  = 90
	helpMaxHeight = 30
)

// HelpView shows the keybinding guide rendered with glamour.
type HelpView struct {
	viewport viewport.Model
	done     bool
}

func NewHelpView(cfg *config.Config, width, height int) HelpView {
	w := max(min(width-6, helpMaxWidth), 20)
	h := max(min(height-6, helpMaxHeight), 5)

	md := docs.Keybindings(cfg)
	content, err := docs.Render(md, w-2)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render help markdown, showing raw content")
		content = md
	}

	vp := viewport.New(w, h)
	vp.SetContent(strings.TrimSpace(content))
	return HelpView{viewport: vp}
}

func (v HelpView) Update(msg tea.Msg) (HelpView, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q", "?":
			v.done = true
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v HelpView) Done() bool { return v.done }

func (v HelpView) View() string {
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		v.viewport.View(),
		styles.ModalHelpStyle.Render("↑/↓ scroll • esc close"),
	))
}
