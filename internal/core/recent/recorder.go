package recent

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Recorder applies the configured list sizes on top of a Store. Failures
// are logged rather than returned; losing a recent entry must never block
// editing.
type Recorder struct {
	store       Store
	maxFiles    int
	maxSearches int
	log         zerolog.Logger
}

// NewRecorder returns a Recorder keeping at most maxFiles files and
// maxSearches searches.
func NewRecorder(store Store, maxFiles, maxSearches int, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:       store,
		maxFiles:    maxFiles,
		maxSearches: maxSearches,
		log:         log.With().Str("cmp", "recent").Logger(),
	}
}

// AddFile records path, made absolute, as the most recently used file.
func (r *Recorder) AddFile(ctx context.Context, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := r.store.Touch(ctx, Files, path, r.maxFiles); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("failed to record recent file")
	}
}

// AddSearch records term as the most recent search.
func (r *Recorder) AddSearch(ctx context.Context, term string) {
	if term == "" {
		return
	}
	if err := r.store.Touch(ctx, Searches, term, r.maxSearches); err != nil {
		r.log.Warn().Err(err).Str("term", term).Msg("failed to record recent search")
	}
}

// Files returns recently used file paths, newest first.
func (r *Recorder) Files(ctx context.Context) []string {
	return r.values(ctx, Files)
}

// Searches returns recent search terms, newest first.
func (r *Recorder) Searches(ctx context.Context) []string {
	return r.values(ctx, Searches)
}

func (r *Recorder) values(ctx context.Context, kind Kind) []string {
	entries, err := r.store.List(ctx, kind)
	if err != nil {
		r.log.Warn().Err(err).Str("kind", string(kind)).Msg("failed to read recent list")
		return nil
	}
	return Values(entries)
}
