// Package jsonfile persists small editor state as a JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hay-kot/omiquji/internal/core/recent"
)

// StateFile is the root JSON structure stored on disk.
type StateFile struct {
	Files    []recent.Entry `json:"files"`
	Searches []recent.Entry `json:"searches"`
}

func (f *StateFile) list(kind recent.Kind) *[]recent.Entry {
	if kind == recent.Searches {
		return &f.Searches
	}
	return &f.Files
}

// StateStore implements recent.Store using a JSON file for persistence.
type StateStore struct {
	path string
	now  func() time.Time
	mu   sync.RWMutex
}

// NewStateStore creates a JSON file state store at the given path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path, now: time.Now}
}

// List returns the entries of kind, newest first.
func (s *StateStore) List(ctx context.Context, kind recent.Kind) ([]recent.Entry, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return *file.list(kind), nil
}

// Touch moves value to the front of kind, pruning to max entries.
func (s *StateStore) Touch(ctx context.Context, kind recent.Kind, value string, max int) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	list := file.list(kind)
	*list = recent.Push(*list, recent.Entry{Value: value, UsedAt: s.now().UTC()}, max)

	return s.save(file)
}

// Clear removes all entries of kind.
func (s *StateStore) Clear(ctx context.Context, kind recent.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	*file.list(kind) = []recent.Entry{}
	return s.save(file)
}

// load reads the state file from disk.
// Returns empty StateFile if file doesn't exist.
func (s *StateStore) load() (StateFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return StateFile{}, nil
		}
		return StateFile{}, err
	}

	if len(data) == 0 {
		return StateFile{}, nil
	}

	var file StateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return StateFile{}, err
	}

	return file, nil
}

// save writes the state file to disk atomically.
func (s *StateStore) save(file StateFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

var _ recent.Store = (*StateStore)(nil)
