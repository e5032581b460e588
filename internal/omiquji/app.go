// Package omiquji wires the document, recent-list and config services
// that commands and the TUI share.
package omiquji

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/recent"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all omiquji operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Files  *docio.Files
	Recent *recent.Recorder
	State  recent.Store
	Build  BuildInfo
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, state recent.Store, log zerolog.Logger, build BuildInfo) *App {
	return &App{
		Config: cfg,
		Files:  docio.New(log, cfg.Decode.Strict),
		Recent: recent.NewRecorder(state, cfg.Recent.MaxFiles, cfg.Recent.MaxSearches, log),
		State:  state,
		Build:  build,
	}
}

// Open loads path and records it as a recent file.
func (a *App) Open(ctx context.Context, path string) (docio.Loaded, error) {
	loaded, err := a.Files.Load(ctx, path)
	if err != nil {
		return loaded, err
	}
	a.Recent.AddFile(ctx, path)
	return loaded, nil
}

// OpenOrNew loads path, or returns an empty document when it does not
// exist yet.
func (a *App) OpenOrNew(ctx context.Context, path string) (docio.Loaded, error) {
	loaded, err := a.Open(ctx, path)
	if err == nil {
		return loaded, nil
	}
	if !isNotExist(err) {
		return loaded, err
	}
	return docio.Loaded{Doc: omidoc.New(), Format: docio.FormatFor(path)}, nil
}

// Save writes snap to path and records it as a recent file.
func (a *App) Save(ctx context.Context, path string, snap omidoc.Snapshot) (uint64, error) {
	digest, err := a.Files.Save(ctx, path, snap)
	if err != nil {
		return 0, err
	}
	a.Recent.AddFile(ctx, path)
	return digest, nil
}
