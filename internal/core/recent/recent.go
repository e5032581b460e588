// Package recent defines the recently used files and searches lists.
package recent

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind names one of the recent lists.
type Kind string

const (
	Files    Kind = "files"
	Searches Kind = "searches"
)

// ErrUnknownKind is returned for a Kind other than Files or Searches.
var ErrUnknownKind = errors.New("unknown recent list")

// Validate returns ErrUnknownKind for unsupported kinds.
func (k Kind) Validate() error {
	switch k {
	case Files, Searches:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Entry is one remembered value.
type Entry struct {
	Value  string    `json:"value"`
	UsedAt time.Time `json:"used_at"`
}

// Store persists recent lists, newest first.
type Store interface {
	List(ctx context.Context, kind Kind) ([]Entry, error)
	// Touch moves value to the front of the list, adding it when absent,
	// and prunes the list to max entries when max > 0.
	Touch(ctx context.Context, kind Kind, value string, max int) error
	Clear(ctx context.Context, kind Kind) error
}

// Push returns entries with e at the front, any older entry with the same
// value removed, and the result pruned to max when max > 0.
func Push(entries []Entry, e Entry, max int) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, e)
	for _, old := range entries {
		if old.Value != e.Value {
			out = append(out, old)
		}
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// Values extracts the entry values in order.
func Values(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}
