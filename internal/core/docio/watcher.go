package docio

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 8
)

// Change reports that the watched file differs from the last known
// contents.
type Change struct {
	Path    string
	Digest  uint64 // zero when Removed
	Removed bool
	At      time.Time
}

// Watcher notices edits made to one document file by other programs.
// Saves are atomic renames that replace the inode, so the parent
// directory is watched and events are filtered by name.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     zerolog.Logger
	events  chan Change

	mu       sync.Mutex
	known    uint64
	debounce *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. known is the digest of the contents
// the caller currently holds; changes that leave the file at that digest
// are not reported.
func NewWatcher(path string, known uint64, log zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    abs,
		watcher: fw,
		log:     log.With().Str("cmp", "docio-watcher").Str("path", abs).Logger(),
		events:  make(chan Change, eventBufferSize),
		known:   known,
		ctx:     ctx,
		cancel:  cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Events returns the channel of detected changes. It is closed by Close.
func (w *Watcher) Events() <-chan Change {
	return w.events
}

// Acknowledge records digest as the contents the caller now holds,
// typically right after saving.
func (w *Watcher) Acknowledge(digest uint64) {
	w.mu.Lock()
	w.known = digest
	w.mu.Unlock()
}

// Close stops watching and closes the events channel.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	close(w.events)
	w.events = nil
	w.mu.Unlock()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.log.Debug().Str("op", event.Op.String()).Msg("file system event")

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.check)
	w.mu.Unlock()
}

// check compares the file on disk with the known digest and publishes a
// Change when they differ.
func (w *Watcher) check() {
	if w.ctx.Err() != nil {
		return
	}

	change := Change{Path: w.path, At: time.Now()}
	digest, err := DigestFile(w.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		change.Removed = true
	case err != nil:
		w.log.Warn().Err(err).Msg("cannot read changed file")
		return
	default:
		change.Digest = digest
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !change.Removed && digest == w.known {
		return
	}
	w.known = change.Digest
	if w.events == nil {
		return
	}

	select {
	case w.events <- change:
	default:
		// Channel full; the consumer already has a pending change to handle.
	}
}
