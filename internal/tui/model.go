package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/logging"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/search"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/tui/notify"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateEditing
	stateFinding
	statePrompting
	statePickingRecent
	stateShowingHelp
	stateConfirmingReload
)

// nextStep is what runs once an unsaved-changes prompt or a save has
// finished.
type nextStep int

const (
	stepNone nextStep = iota
	stepQuit
	stepOpenPrompt
	stepOpenPath
)

type pendingStep struct {
	step nextStep
	path string
}

// Options configures the TUI behavior.
type Options struct {
	Path      string // file to open on start; empty starts an untitled document
	SessionID string // editing session ID for logs; generated when empty
}

// Model is the main Bubble Tea model for the editor.
type Model struct {
	ctx context.Context
	app *omiquji.App
	cfg *config.Config
	log zerolog.Logger

	editor *Editor
	panes  [2]ListPane
	keys   KeyMap
	help   help.Model
	state  UIState

	// Modals
	edit     EditDialog
	find     FindDialog
	prompt   *Prompt
	recent   RecentPicker
	helpView HelpView
	confirm  ConfirmModal

	// Search
	engine     *search.Engine
	lastSearch search.Request
	hasSearch  bool

	// Deferred steps
	pending   pendingStep
	afterSave pendingStep

	watcher *docio.Watcher

	// Notifications
	bus          *notify.Bus
	toasts       *ToastController
	toastTicking bool

	openPath string
	width    int
	height   int
	quitting bool
}

// New creates the editor model. The document named by opts.Path is loaded
// by Init.
func New(ctx context.Context, app *omiquji.App, opts Options) Model {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ctx = logging.WithSessionID(ctx, sessionID)

	bus := notify.NewBus(0)
	toasts := NewToastController()
	bus.Subscribe(toasts.Push)

	engine := search.NewEngine()
	engine.OnFound(func(term string) {
		app.Recent.AddSearch(ctx, term)
	})

	m := Model{
		ctx:        ctx,
		app:        app,
		cfg:        app.Config,
		log:        logging.Component("tui"),
		editor:     NewEditor(omidoc.New(), "", 0),
		panes:      [2]ListPane{newListPane(omidoc.Comments), newListPane(omidoc.Fortunes)},
		keys:       NewKeyMap(app.Config),
		help:       help.New(),
		engine:     engine,
		lastSearch: app.Config.Search.Request(""),
		bus:        bus,
		toasts:     toasts,
		openPath:   opts.Path,
		width:      80,
		height:     24,
	}
	m.layout()
	m.syncPanes()
	return m
}

// Editor returns the editing session.
func (m Model) Editor() *Editor {
	return m.editor
}

// Notifications returns the notification bus.
func (m Model) Notifications() *notify.Bus {
	return m.bus
}

func (m Model) Init() tea.Cmd {
	if m.openPath == "" {
		return nil
	}
	return loadCmd(m.ctx, m.app, m.openPath)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		cmd = m.updateActive(msg)
	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toastTicking = false
		return m, nil
	case docLoadedMsg:
		cmd = m.handleLoaded(msg)
	case docSavedMsg:
		cmd = m.handleSaved(msg)
	case fileChangedMsg:
		cmd = m.handleFileChanged(msg)
	case tea.KeyMsg:
		if m.state == stateNormal {
			cmd = m.handleKey(msg)
		} else {
			cmd = m.updateActive(msg)
		}
	default:
		cmd = m.updateActive(msg)
	}

	return m, tea.Batch(cmd, m.ensureToastTick())
}

func (m *Model) ensureToastTick() tea.Cmd {
	if m.toastTicking || !m.toasts.HasToasts() {
		return nil
	}
	m.toastTicking = true
	return scheduleToastTick()
}

// handleKey runs the action bound to msg, or moves the list cursor.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Action(msg)
	if !ok {
		focus := m.editor.Focus()
		var cmd tea.Cmd
		m.panes[focus], cmd = m.panes[focus].Update(msg)
		m.editor.Select(focus, m.panes[focus].Index())
		return cmd
	}

	m.log.Debug().Ctx(m.ctx).Str("action", action).Msg("key action")

	switch action {
	case config.ActionSwitchList:
		m.editor.ToggleFocus()
	case config.ActionAdd:
		return m.openEdit("Add "+entryName(m.editor.Focus()), editAdd, "")
	case config.ActionInsert:
		return m.openEdit("Insert "+entryName(m.editor.Focus()), editInsert, "")
	case config.ActionEdit:
		text, ok := m.editor.Current()
		if !ok {
			m.bus.Infof("The %s list is empty", m.editor.Focus())
			return nil
		}
		return m.openEdit("Edit "+entryName(m.editor.Focus()), editReplace, text)
	case config.ActionDelete:
		if m.editor.Delete() {
			m.syncPanes()
		}
	case config.ActionFind:
		return m.openFind()
	case config.ActionFindNext:
		if !m.hasSearch {
			return m.openFind()
		}
		m.runFind()
	case config.ActionSave:
		return m.save(pendingStep{})
	case config.ActionSaveAs:
		m.afterSave = pendingStep{}
		return m.openPrompt(newPathPrompt(promptSaveAs, m.editor.Path(), nil))
	case config.ActionOpen:
		return m.guard(pendingStep{step: stepOpenPrompt})
	case config.ActionRecent:
		files := m.app.Recent.Files(m.ctx)
		if len(files) == 0 {
			m.bus.Infof("No recent files")
			return nil
		}
		m.recent = NewRecentPicker(files, m.width, m.height)
		m.state = statePickingRecent
	case config.ActionHelp:
		m.helpView = NewHelpView(m.cfg, m.width, m.height)
		m.state = stateShowingHelp
	case config.ActionQuit:
		return m.guard(pendingStep{step: stepQuit})
	}
	return nil
}

// updateActive forwards msg to the open modal and handles it closing.
func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.state {
	case stateEditing:
		m.edit, cmd = m.edit.Update(msg)
		if m.edit.Done() {
			m.state = stateNormal
			if m.edit.Accepted() {
				m.applyEdit()
			}
		}
	case stateFinding:
		m.find, cmd = m.find.Update(msg)
		if m.find.Done() {
			m.state = stateNormal
			if m.find.Accepted() {
				m.lastSearch = m.find.Request()
				m.hasSearch = true
				m.runFind()
			}
		}
	case statePrompting:
		cmd = m.prompt.Update(msg)
		if m.prompt.Done() {
			p := m.prompt
			m.prompt = nil
			m.state = stateNormal
			cmd = tea.Batch(cmd, m.resolvePrompt(p))
		}
	case statePickingRecent:
		m.recent, cmd = m.recent.Update(msg)
		if m.recent.Done() {
			m.state = stateNormal
			if m.recent.Accepted() {
				cmd = tea.Batch(cmd, m.guard(pendingStep{step: stepOpenPath, path: m.recent.Chosen()}))
			}
		}
	case stateShowingHelp:
		m.helpView, cmd = m.helpView.Update(msg)
		if m.helpView.Done() {
			m.state = stateNormal
		}
	case stateConfirmingReload:
		m.confirm, cmd = m.confirm.Update(msg)
		switch {
		case m.confirm.Confirmed():
			m.state = stateNormal
			cmd = loadCmd(m.ctx, m.app, m.editor.Path())
		case m.confirm.Cancelled():
			m.state = stateNormal
		}
	}
	return cmd
}

func (m *Model) openEdit(title string, mode editMode, text string) tea.Cmd {
	m.edit = NewEditDialog(title, mode, text, m.width, m.height)
	m.state = stateEditing
	return textarea.Blink
}

func (m *Model) applyEdit() {
	text := m.edit.Value()
	switch m.edit.mode {
	case editAdd:
		m.editor.Add(text)
	case editInsert:
		m.editor.Insert(text)
	case editReplace:
		m.editor.Edit(text)
	}
	m.syncPanes()
}

func (m *Model) openFind() tea.Cmd {
	m.find = NewFindDialog(m.lastSearch, m.app.Recent.Searches(m.ctx))
	m.state = stateFinding
	return textinput.Blink
}

// runFind repeats the last search on the focused list and selects the
// match.
func (m *Model) runFind() {
	list := m.editor.Focus()
	entries := m.editor.Doc().Entries(list)

	idx, ok := m.engine.FindNext(list.String(), m.lastSearch, entries, m.editor.Selected(list))
	if !ok {
		m.bus.Infof("%q not found in %s", m.lastSearch.Text, list)
		return
	}
	m.editor.Select(list, idx)
	m.syncPanes()
}

func (m *Model) openPrompt(p *Prompt) tea.Cmd {
	m.prompt = p
	m.state = statePrompting
	return p.Init()
}

// guard runs next right away when there is nothing to lose, otherwise
// asks whether to save first.
func (m *Model) guard(next pendingStep) tea.Cmd {
	if !m.editor.Dirty() || !m.cfg.TUI.ShouldConfirmQuit() {
		return m.continueWith(next)
	}
	m.pending = next
	return m.openPrompt(newUnsavedPrompt(m.editor.Name()))
}

func (m *Model) continueWith(next pendingStep) tea.Cmd {
	switch next.step {
	case stepQuit:
		m.quitting = true
		m.closeWatcher()
		return tea.Quit
	case stepOpenPrompt:
		return m.openPrompt(newPathPrompt(promptOpen, "", m.app.Recent.Files(m.ctx)))
	case stepOpenPath:
		return loadCmd(m.ctx, m.app, next.path)
	}
	return nil
}

func (m *Model) resolvePrompt(p *Prompt) tea.Cmd {
	switch p.kind {
	case promptUnsaved:
		next := m.pending
		m.pending = pendingStep{}
		switch p.Choice() {
		case choiceSave:
			return m.save(next)
		case choiceDiscard:
			return m.continueWith(next)
		}
	case promptOpen:
		if !p.Aborted() {
			return loadCmd(m.ctx, m.app, p.Path())
		}
	case promptSaveAs:
		if p.Aborted() {
			m.afterSave = pendingStep{}
			return nil
		}
		return m.saveTo(p.Path())
	}
	return nil
}

// save writes the document to its path, asking for one when untitled,
// and runs next once the write succeeded.
func (m *Model) save(next pendingStep) tea.Cmd {
	m.afterSave = next
	if m.editor.Path() == "" {
		return m.openPrompt(newPathPrompt(promptSaveAs, "", nil))
	}
	return m.saveTo(m.editor.Path())
}

func (m *Model) saveTo(path string) tea.Cmd {
	var w *docio.Watcher
	if path == m.editor.Path() {
		w = m.watcher
	}
	return saveCmd(m.ctx, m.app, w, path, m.editor.Generation(), m.editor.Doc().Snapshot())
}

func (m *Model) handleSaved(msg docSavedMsg) tea.Cmd {
	if msg.err != nil {
		m.afterSave = pendingStep{}
		m.log.Error().Ctx(m.ctx).Err(msg.err).Str("path", msg.path).Msg("save failed")
		m.bus.Errorf("Save failed: %v", msg.err)
		return nil
	}

	moved := msg.path != m.editor.Path()
	m.editor.Saved(msg.path, msg.digest, msg.gen)
	m.ctx = logging.WithDocument(m.ctx, msg.path)

	m.bus.Infof("Saved %s", m.editor.Name())
	if msg.lossy {
		m.bus.Warnf("Strfile has no comment list; comments will load back as fortunes")
	}

	var cmds []tea.Cmd
	if moved || m.watcher == nil {
		cmds = append(cmds, m.restartWatcher())
	}

	next := m.afterSave
	m.afterSave = pendingStep{}
	cmds = append(cmds, m.continueWith(next))
	return tea.Batch(cmds...)
}

func (m *Model) handleLoaded(msg docLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error().Ctx(m.ctx).Err(msg.err).Str("path", msg.path).Msg("open failed")
		m.bus.Errorf("Cannot open %s: %v", msg.path, msg.err)
		return nil
	}

	m.editor.Replace(msg.loaded, msg.path)
	m.engine.Reset()
	m.ctx = logging.WithDocument(m.ctx, msg.path)
	m.syncPanes()

	if msg.loaded.Skipped > 0 {
		m.bus.Warnf("%d corrupt entries in %s were skipped", msg.loaded.Skipped, m.editor.Name())
	}
	m.log.Info().Ctx(m.ctx).
		Int("comments", msg.loaded.Doc.CommentCount()).
		Int("fortunes", msg.loaded.Doc.FortuneCount()).
		Msg("opened document")

	return m.restartWatcher()
}

func (m *Model) handleFileChanged(msg fileChangedMsg) tea.Cmd {
	if msg.watcher != m.watcher {
		return nil
	}
	next := waitForChange(m.watcher)
	c := msg.change

	switch {
	case c.Removed:
		m.bus.Warnf("%s was removed from disk", m.editor.Name())
	case c.Digest == m.editor.Digest():
	case m.state != stateNormal:
		m.bus.Warnf("%s changed on disk", m.editor.Name())
	case !m.editor.Dirty():
		m.bus.Infof("%s changed on disk and was reloaded", m.editor.Name())
		return tea.Batch(next, loadCmd(m.ctx, m.app, m.editor.Path()))
	default:
		m.confirm = NewConfirmModal(fmt.Sprintf("%s changed on disk. Reload and discard your edits?", m.editor.Name()))
		m.state = stateConfirmingReload
	}
	return next
}

func (m *Model) restartWatcher() tea.Cmd {
	m.closeWatcher()
	w, cmd := startWatcher(m.editor.Path(), m.editor.Digest(), m.log)
	m.watcher = w
	return cmd
}

func (m *Model) closeWatcher() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		m.log.Debug().Err(err).Msg("closing file watcher")
	}
	m.watcher = nil
}

// syncPanes copies the document lists and selections into the panes.
func (m *Model) syncPanes() {
	doc := m.editor.Doc()
	for _, l := range []omidoc.List{omidoc.Comments, omidoc.Fortunes} {
		m.panes[l].SetEntries(doc.Entries(l), m.editor.Selected(l))
	}
}

func (m *Model) layout() {
	paneH := max(m.height-2, 4)
	commentsW := max(m.width/3, 20)
	fortunesW := max(m.width-commentsW, 20)
	m.panes[omidoc.Comments].SetSize(commentsW, paneH)
	m.panes[omidoc.Fortunes].SetSize(fortunesW, paneH)
	m.help.Width = m.width
}

func entryName(l omidoc.List) string {
	if l == omidoc.Comments {
		return "comment"
	}
	return "fortune"
}
