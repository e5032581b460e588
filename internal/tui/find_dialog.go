package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/search"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

type findOption struct {
	label string
	get   func(*search.Request) *bool
}

var findOptions = []findOption{
	{"From start", func(r *search.Request) *bool { return &r.FromStart }},
	{"Match case", func(r *search.Request) *bool { return &r.MatchCase }},
	{"Whole words", func(r *search.Request) *bool { return &r.MatchWholeWords }},
	{"Regular expression", func(r *search.Request) *bool { return &r.IsRegexp }},
	{"Search backwards", func(r *search.Request) *bool { return &r.SearchBackwards }},
}

// FindDialog collects a search request. Focus 0 is the text input, the
// rest are the option toggles.
type FindDialog struct {
	input   textinput.Model
	req     search.Request
	focus   int
	history []string
	histPos int
	err     string

	done     bool
	accepted bool
}

// NewFindDialog opens the dialog preset with req. history holds recent
// search terms, newest first.
func NewFindDialog(req search.Request, history []string) FindDialog {
	ti := textinput.New()
	ti.Prompt = styles.IconSearch + " "
	ti.Placeholder = "search text"
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(req.Text)
	ti.CursorEnd()
	ti.Focus()

	return FindDialog{input: ti, req: req, history: history, histPos: -1}
}

func (d FindDialog) Update(msg tea.Msg) (FindDialog, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	switch km.String() {
	case "esc":
		d.done = true
		return d, nil
	case "enter":
		return d.submit(), nil
	case "tab":
		return d.moveFocus(1), nil
	case "shift+tab":
		return d.moveFocus(-1), nil
	}

	if d.focus > 0 {
		switch km.String() {
		case " ", "x":
			opt := findOptions[d.focus-1].get(&d.req)
			*opt = !*opt
		case "up", "k":
			d = d.moveFocus(-1)
		case "down", "j":
			d = d.moveFocus(1)
		}
		return d, nil
	}

	switch km.String() {
	case "up":
		d.recall(1)
		return d, nil
	case "down":
		d.recall(-1)
		return d, nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	d.err = ""
	return d, cmd
}

func (d FindDialog) moveFocus(delta int) FindDialog {
	n := len(findOptions) + 1
	d.focus = (d.focus + delta + n) % n
	if d.focus == 0 {
		d.input.Focus()
	} else {
		d.input.Blur()
	}
	return d
}

// recall steps through the search history; delta 1 goes to older terms.
func (d *FindDialog) recall(delta int) {
	if len(d.history) == 0 {
		return
	}
	pos := d.histPos + delta
	if pos < -1 || pos >= len(d.history) {
		return
	}
	d.histPos = pos
	if pos == -1 {
		d.input.SetValue("")
		return
	}
	d.input.SetValue(d.history[pos])
	d.input.CursorEnd()
}

func (d FindDialog) submit() FindDialog {
	req := d.Request()
	if err := config.ValidateSearch(req); err != nil {
		d.err = validationMessage(err)
		return d
	}
	d.done, d.accepted = true, true
	return d
}

// Request returns the request as currently entered.
func (d FindDialog) Request() search.Request {
	req := d.req
	req.Text = d.input.Value()
	return req
}

func (d FindDialog) Done() bool     { return d.done }
func (d FindDialog) Accepted() bool { return d.accepted }

func (d FindDialog) View() string {
	rows := []string{
		styles.ModalTitleStyle.Render("Find"),
		d.input.View(),
		"",
	}

	for i, opt := range findOptions {
		req := d.req
		on := *opt.get(&req)

		box := styles.ToggleOffStyle.Render("[ ]")
		if on {
			box = styles.ToggleOnStyle.Render("[x]")
		}
		label := opt.label
		if d.focus == i+1 {
			label = styles.HeaderStyle.Render(label)
		}
		rows = append(rows, box+" "+label)
	}

	if d.err != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(d.err))
	}
	rows = append(rows, styles.ModalHelpStyle.Render("enter find • tab next field • space toggle • ↑/↓ history • esc close"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// validationMessage strips the field prefix criterio adds.
func validationMessage(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, "text: "); ok {
		return rest
	}
	return msg
}
