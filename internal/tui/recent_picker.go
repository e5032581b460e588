package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/omiquji/internal/core/styles"
)

type recentItem struct {
	path string
}

func (i recentItem) Title() string       { return filepath.Base(i.path) }
func (i recentItem) Description() string { return i.path }
func (i recentItem) FilterValue() string { return i.path }

// RecentPicker lists recently opened files.
type RecentPicker struct {
	list     list.Model
	chosen   string
	done     bool
	accepted bool
}

func NewRecentPicker(paths []string, width, height int) RecentPicker {
	items := make([]list.Item, len(paths))
	for i, p := range paths {
		items[i] = recentItem{path: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.CurrentPalette.Primary).
		BorderForeground(styles.CurrentPalette.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.CurrentPalette.Secondary).
		BorderForeground(styles.CurrentPalette.Primary)

	l := list.New(items, delegate, max(min(width-8, 80), 30), max(min(height-8, 20), 8))
	l.Title = "Recent files"
	l.Styles.Title = styles.ModalTitleStyle
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("file", "files")

	return RecentPicker{list: l}
}

func (p RecentPicker) Update(msg tea.Msg) (RecentPicker, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && p.list.FilterState() != list.Filtering {
		switch km.String() {
		case "esc":
			if p.list.FilterState() == list.FilterApplied {
				p.list.ResetFilter()
				return p, nil
			}
			p.done = true
			return p, nil
		case "enter":
			if it, ok := p.list.SelectedItem().(recentItem); ok {
				p.chosen = it.path
				p.done, p.accepted = true, true
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p RecentPicker) Done() bool     { return p.done }
func (p RecentPicker) Accepted() bool { return p.accepted }
func (p RecentPicker) Chosen() string { return p.chosen }

func (p RecentPicker) View() string {
	return styles.ModalStyle.Render(p.list.View())
}

