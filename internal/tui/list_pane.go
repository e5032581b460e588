package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

type entryItem struct {
	index int
	text  string
}

func (i entryItem) FilterValue() string { return i.text }

// entryDelegate renders one entry per row: its index and the first line of
// its text, with a marker when the entry spans several lines.
type entryDelegate struct{}

func (d entryDelegate) Height() int                         { return 1 }
func (d entryDelegate) Spacing() int                        { return 0 }
func (d entryDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(entryItem)
	if !ok {
		return
	}

	text, more := firstLine(it.text)
	if more {
		text += styles.MutedStyle.Render(" …")
	}
	if it.text == "" {
		text = styles.MutedStyle.Render("(empty)")
	}

	num := styles.IndexStyle.Render(fmt.Sprint(it.index))
	row := num + "  " + text

	style := lipgloss.NewStyle().MaxWidth(max(m.Width(), 1))
	if index == m.Index() {
		style = style.Foreground(styles.CurrentPalette.Primary).Bold(true)
		row = "> " + row
	} else {
		row = "  " + row
	}
	_, _ = fmt.Fprint(w, style.Render(row))
}

func firstLine(s string) (string, bool) {
	s = strings.TrimRight(s, "\n")
	line, _, more := strings.Cut(s, "\n")
	return line, more
}

// ListPane shows one document list.
type ListPane struct {
	which  omidoc.List
	list   list.Model
	width  int
	height int
}

func newListPane(which omidoc.List) ListPane {
	l := list.New(nil, entryDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = styles.MutedStyle.Padding(0, 2)
	l.SetStatusBarItemName("entry", "entries")

	return ListPane{which: which, list: l}
}

// SetEntries replaces the rows and moves the cursor to selected.
func (p *ListPane) SetEntries(entries []string, selected int) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{index: i, text: e}
	}
	p.list.SetItems(items)
	if selected >= 0 && selected < len(entries) {
		p.list.Select(selected)
	}
}

// SetSize sets the outer size including the border.
func (p *ListPane) SetSize(w, h int) {
	p.width, p.height = w, h
	p.list.SetSize(max(w-2, 1), max(h-3, 1))
}

// Index returns the cursor position, or -1 when the list is empty.
func (p *ListPane) Index() int {
	if len(p.list.Items()) == 0 {
		return -1
	}
	return p.list.Index()
}

// Update handles navigation keys.
func (p ListPane) Update(msg tea.Msg) (ListPane, tea.Cmd) {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p ListPane) View(focused bool) string {
	title := styles.IconFortune + " Fortunes"
	if p.which == omidoc.Comments {
		title = styles.IconComment + " Comments"
	}
	title = fmt.Sprintf("%s (%d)", title, len(p.list.Items()))

	box := styles.PaneStyle
	if focused {
		box = styles.PaneFocusedStyle
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.PaneTitleStyle.Render(title),
		p.list.View(),
	)
	return box.Width(max(p.width-2, 1)).Height(max(p.height-2, 1)).Render(body)
}
