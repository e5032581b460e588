package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/store/jsonfile"
	"github.com/hay-kot/omiquji/internal/tui/notify"
	"github.com/hay-kot/omiquji/pkg/tuitest"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	app := omiquji.NewApp(cfg, jsonfile.NewStateStore(cfg.StateFile()), zerolog.Nop(), omiquji.BuildInfo{})
	return New(context.Background(), app, Options{SessionID: "test"})
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func withDoc(t *testing.T, m Model, path string, snap omidoc.Snapshot) Model {
	t.Helper()
	m, _ = send(t, m, docLoadedMsg{
		path:   path,
		loaded: docio.Loaded{Doc: omidoc.FromSnapshot(snap), Digest: 1},
	})
	m.closeWatcher()
	return m
}

func TestModel_AddFortune(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("a"))
	require.Equal(t, stateEditing, m.state)

	m, _ = send(t, m, tuitest.Type("daikichi"))
	m, _ = send(t, m, tuitest.Key(tea.KeyCtrlS))

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, []string{"daikichi"}, m.editor.Doc().Entries(omidoc.Fortunes))
	assert.Equal(t, "untitled[*]", m.editor.Title())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "untitled[*]")
	assert.Contains(t, view, "daikichi")
}

func TestModel_ResizeLaysOutPanes(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.WindowSize(120, 40))
	assert.Equal(t, 40, m.panes[omidoc.Comments].width)
	assert.Equal(t, 80, m.panes[omidoc.Fortunes].width)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Comments (0)")
	assert.Contains(t, view, "Fortunes (0)")
}

func TestModel_EditCancelled(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("a"))
	m, _ = send(t, m, tuitest.Type("kyo"))
	m, _ = send(t, m, tuitest.Key(tea.KeyEsc))

	assert.Equal(t, stateNormal, m.state)
	assert.Zero(t, m.editor.Doc().Len())
	assert.False(t, m.editor.Dirty())
}

func TestModel_SwitchListAddsComment(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Key(tea.KeyTab))
	require.Equal(t, omidoc.Comments, m.editor.Focus())

	m, _ = send(t, m, tuitest.Type("a"))
	m, _ = send(t, m, tuitest.Type("note"))
	m, _ = send(t, m, tuitest.Key(tea.KeyCtrlS))

	assert.Equal(t, []string{"note"}, m.editor.Doc().Entries(omidoc.Comments))
	assert.Empty(t, m.editor.Doc().Entries(omidoc.Fortunes))
}

func TestModel_DeleteSelected(t *testing.T) {
	m := newTestModel(t)
	m = withDoc(t, m, "", omidoc.Snapshot{Fortunes: []string{"a", "b"}})

	m, _ = send(t, m, tuitest.Type("d"))
	assert.Equal(t, []string{"b"}, m.editor.Doc().Entries(omidoc.Fortunes))
	assert.True(t, m.editor.Dirty())
}

func TestModel_EditEmptyListNotifies(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("e"))
	assert.Equal(t, stateNormal, m.state)
	require.NotEmpty(t, m.bus.History())
	assert.Equal(t, notify.LevelInfo, m.bus.History()[0].Level)
}

func TestModel_FindSelectsMatch(t *testing.T) {
	m := newTestModel(t)
	m = withDoc(t, m, "", omidoc.Snapshot{Fortunes: []string{"kichi", "sue-kichi", "kyo", "dai-kyo"}})

	m, _ = send(t, m, tuitest.Type("/"))
	require.Equal(t, stateFinding, m.state)

	m, _ = send(t, m, tuitest.Type("kyo"))
	m, _ = send(t, m, tuitest.Key(tea.KeyEnter))
	require.Equal(t, stateNormal, m.state)
	assert.Equal(t, 2, m.editor.Selected(omidoc.Fortunes))

	m, _ = send(t, m, tuitest.Type("n"))
	assert.Equal(t, 3, m.editor.Selected(omidoc.Fortunes))

	assert.Equal(t, []string{"kyo"}, m.app.Recent.Searches(m.ctx))
}

func TestModel_FindNextSeesAddedEntry(t *testing.T) {
	m := newTestModel(t)
	m = withDoc(t, m, "", omidoc.Snapshot{Fortunes: []string{"kyo", "kichi"}})

	m, _ = send(t, m, tuitest.Type("/"))
	m, _ = send(t, m, tuitest.Type("kyo"))
	m, _ = send(t, m, tuitest.Key(tea.KeyEnter))
	require.Equal(t, 0, m.editor.Selected(omidoc.Fortunes))

	m, _ = send(t, m, tuitest.Type("a"))
	m, _ = send(t, m, tuitest.Type("dai-kyo"))
	m, _ = send(t, m, tuitest.Key(tea.KeyCtrlS))
	require.Equal(t, []string{"kyo", "kichi", "dai-kyo"}, m.editor.Doc().Entries(omidoc.Fortunes))

	m, _ = send(t, m, tuitest.Type("n"))
	assert.Equal(t, 2, m.editor.Selected(omidoc.Fortunes))
	for _, n := range m.bus.History() {
		assert.NotContains(t, n.Message, "not found")
	}
}

func TestModel_FindNextWithoutSearchOpensDialog(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("n"))
	assert.Equal(t, stateFinding, m.state)

	m, _ = send(t, m, tuitest.Key(tea.KeyEsc))
	assert.Equal(t, stateNormal, m.state)
	assert.False(t, m.hasSearch)
}

func TestModel_QuitClean(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(t, m, tuitest.Type("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestModel_QuitDirtyPrompts(t *testing.T) {
	m := newTestModel(t)
	m.editor.Add("kichi")

	m, _ = send(t, m, tuitest.Type("q"))
	require.Equal(t, statePrompting, m.state)
	require.NotNil(t, m.prompt)
	assert.Equal(t, promptUnsaved, m.prompt.kind)
	assert.Equal(t, stepQuit, m.pending.step)
	assert.False(t, m.quitting)
}

func TestModel_QuitDirtyWithoutConfirm(t *testing.T) {
	m := newTestModel(t)
	off := false
	m.cfg.TUI.ConfirmQuit = &off
	m.editor.Add("kichi")

	m, _ = send(t, m, tuitest.Type("q"))
	assert.True(t, m.quitting)
}

func TestModel_SaveUntitledAsksForPath(t *testing.T) {
	m := newTestModel(t)
	m.editor.Add("kichi")

	m, _ = send(t, m, tuitest.Key(tea.KeyCtrlS))
	require.Equal(t, statePrompting, m.state)
	assert.Equal(t, promptSaveAs, m.prompt.kind)
}

func TestModel_SaveWritesFile(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "lucky.omi")
	m = withDoc(t, m, path, omidoc.Snapshot{})
	m.editor.Add("kichi")

	msg := saveCmd(m.ctx, m.app, nil, path, m.editor.Generation(), m.editor.Doc().Snapshot())()
	saved, ok := msg.(docSavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.False(t, saved.lossy)

	m, _ = send(t, m, saved)
	t.Cleanup(m.closeWatcher)
	assert.False(t, m.editor.Dirty())
	assert.Equal(t, "lucky.omi", m.editor.Title())

	loaded, err := m.app.Files.Load(m.ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kichi"}, loaded.Doc.Entries(omidoc.Fortunes))
}

func TestModel_SaveStrfileWarnsAboutComments(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "fortunes")
	m = withDoc(t, m, path, omidoc.Snapshot{Comments: []string{"note"}, Fortunes: []string{"kichi"}})

	msg := saveCmd(m.ctx, m.app, nil, path, m.editor.Generation(), m.editor.Doc().Snapshot())()
	saved := msg.(docSavedMsg)
	require.NoError(t, saved.err)
	assert.True(t, saved.lossy)

	m, _ = send(t, m, saved)
	t.Cleanup(m.closeWatcher)

	levels := make([]notify.Level, 0)
	for _, n := range m.bus.History() {
		levels = append(levels, n.Level)
	}
	assert.Contains(t, levels, notify.LevelWarning)
}

func TestModel_SaveErrorKeepsDirty(t *testing.T) {
	m := newTestModel(t)
	m.editor.Add("kichi")
	m.afterSave = pendingStep{step: stepQuit}

	m, _ = send(t, m, docSavedMsg{path: "/nope/x.omi", err: assert.AnError})
	assert.True(t, m.editor.Dirty())
	assert.False(t, m.quitting)
	assert.Equal(t, stepNone, m.afterSave.step)
	assert.Equal(t, notify.LevelError, m.bus.History()[0].Level)
}

func TestModel_LoadedReportsSkippedSlots(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, docLoadedMsg{
		path:   "",
		loaded: docio.Loaded{Doc: omidoc.New(), Skipped: 2},
	})
	require.NotEmpty(t, m.bus.History())
	assert.Equal(t, notify.LevelWarning, m.bus.History()[0].Level)
}

func TestModel_FileChangedWhileDirtyAsks(t *testing.T) {
	m := newTestModel(t)
	m = withDoc(t, m, filepath.Join(t.TempDir(), "a.omi"), omidoc.Snapshot{})
	m.editor.Add("kichi")

	m, _ = send(t, m, fileChangedMsg{change: docio.Change{Digest: 99}})
	assert.Equal(t, stateConfirmingReload, m.state)

	m, _ = send(t, m, tuitest.Type("n"))
	assert.Equal(t, stateNormal, m.state)
	assert.True(t, m.editor.Dirty())
}

func TestModel_FileChangedSameDigestIgnored(t *testing.T) {
	m := newTestModel(t)
	m = withDoc(t, m, filepath.Join(t.TempDir(), "a.omi"), omidoc.Snapshot{})

	m, cmd := send(t, m, fileChangedMsg{change: docio.Change{Digest: m.editor.Digest()}})
	assert.Nil(t, cmd)
	assert.Equal(t, stateNormal, m.state)
	assert.Empty(t, m.bus.History())
}

func TestModel_HelpOpensAndCloses(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("?"))
	require.Equal(t, stateShowingHelp, m.state)
	assert.NotEmpty(t, m.View())

	m, _ = send(t, m, tuitest.Key(tea.KeyEsc))
	assert.Equal(t, stateNormal, m.state)
}

func TestModel_RecentEmptyNotifies(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tuitest.Type("r"))
	assert.Equal(t, stateNormal, m.state)
	require.NotEmpty(t, m.bus.History())
}
