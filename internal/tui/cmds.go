package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/omiquji"
)

type docLoadedMsg struct {
	path   string
	loaded docio.Loaded
	err    error
}

type docSavedMsg struct {
	path   string
	gen    uint64
	digest uint64
	lossy  bool
	err    error
}

type fileChangedMsg struct {
	watcher *docio.Watcher
	change  docio.Change
}

func loadCmd(ctx context.Context, app *omiquji.App, path string) tea.Cmd {
	return func() tea.Msg {
		loaded, err := app.OpenOrNew(ctx, path)
		return docLoadedMsg{path: path, loaded: loaded, err: err}
	}
}

// saveCmd writes snap and acknowledges the new contents to w before the
// watcher's debounce can report the write as an outside change.
func saveCmd(ctx context.Context, app *omiquji.App, w *docio.Watcher, path string, gen uint64, snap omidoc.Snapshot) tea.Cmd {
	return func() tea.Msg {
		digest, err := app.Save(ctx, path, snap)
		if err == nil && w != nil {
			w.Acknowledge(digest)
		}
		return docSavedMsg{
			path:   path,
			gen:    gen,
			digest: digest,
			lossy:  docio.Lossy(docio.FormatFor(path), snap),
			err:    err,
		}
	}
}

// waitForChange delivers the next change reported by w. Closing the
// watcher ends the loop.
func waitForChange(w *docio.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	events := w.Events()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-events
		if !ok {
			return nil
		}
		return fileChangedMsg{watcher: w, change: c}
	}
}

// startWatcher watches path for outside edits. Failures only disable the
// notification.
func startWatcher(path string, digest uint64, log zerolog.Logger) (*docio.Watcher, tea.Cmd) {
	if path == "" {
		return nil, nil
	}
	w, err := docio.NewWatcher(path, digest, log)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("file watcher unavailable")
		return nil, nil
	}
	return w, waitForChange(w)
}
