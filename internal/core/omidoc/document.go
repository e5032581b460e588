// Package omidoc holds the in-memory omikuji document: two ordered lists of
// text, comments and fortunes, with forgiving index-checked editing and
// synchronous change notification.
package omidoc

import (
	"slices"
	"sync"
)

// List identifies one of the two document lists.
type List int

const (
	Comments List = iota
	Fortunes
)

// String returns the list name used in logs and CLI output.
func (l List) String() string {
	switch l {
	case Comments:
		return "comments"
	case Fortunes:
		return "fortunes"
	default:
		return "unknown"
	}
}

// ParseList maps a CLI/config name to a List.
func ParseList(s string) (List, bool) {
	switch s {
	case "comments", "comment":
		return Comments, true
	case "fortunes", "fortune":
		return Fortunes, true
	default:
		return 0, false
	}
}

// Snapshot is an immutable copy of both lists handed to encoders.
type Snapshot struct {
	Comments []string
	Fortunes []string
}

// Document owns the two lists. Mutators ignore out-of-range indexes and
// report whether anything changed.
type Document struct {
	lists [2][]string

	mu        sync.Mutex
	observers []subscription
	nextObs   int
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// FromSnapshot builds a document holding copies of the snapshot lists.
func FromSnapshot(s Snapshot) *Document {
	d := New()
	d.lists[Comments] = slices.Clone(s.Comments)
	d.lists[Fortunes] = slices.Clone(s.Fortunes)
	return d
}

func (d *Document) AddComment(text string) bool { return d.Add(Comments, text) }
func (d *Document) AddFortune(text string) bool { return d.Add(Fortunes, text) }

func (d *Document) InsertCommentAt(i int, text string) bool { return d.InsertAt(Comments, i, text) }
func (d *Document) InsertFortuneAt(i int, text string) bool { return d.InsertAt(Fortunes, i, text) }

func (d *Document) ReplaceCommentAt(i int, text string) bool { return d.ReplaceAt(Comments, i, text) }
func (d *Document) ReplaceFortuneAt(i int, text string) bool { return d.ReplaceAt(Fortunes, i, text) }

func (d *Document) RemoveCommentAt(i int) bool { return d.RemoveAt(Comments, i) }
func (d *Document) RemoveFortuneAt(i int) bool { return d.RemoveAt(Fortunes, i) }

func (d *Document) CommentCount() int { return d.Count(Comments) }
func (d *Document) FortuneCount() int { return d.Count(Fortunes) }

// CommentAt panics when i is out of range; check CommentCount first.
func (d *Document) CommentAt(i int) string { return d.At(Comments, i) }

// FortuneAt panics when i is out of range; check FortuneCount first.
func (d *Document) FortuneAt(i int) string { return d.At(Fortunes, i) }

// Add appends text to list.
func (d *Document) Add(list List, text string) bool {
	if !list.valid() {
		return false
	}
	d.lists[list] = append(d.lists[list], text)
	d.notify(Change{List: list, Op: OpAdd, Index: len(d.lists[list]) - 1, Text: text})
	return true
}

// InsertAt inserts text before index i. i may equal the list length, in
// which case the text is appended.
func (d *Document) InsertAt(list List, i int, text string) bool {
	if !list.valid() || i < 0 || i > len(d.lists[list]) {
		return false
	}
	d.lists[list] = slices.Insert(d.lists[list], i, text)
	d.notify(Change{List: list, Op: OpInsert, Index: i, Text: text})
	return true
}

// ReplaceAt swaps the entry at i for text. Replacing with identical text is
// a no-op and fires no change.
func (d *Document) ReplaceAt(list List, i int, text string) bool {
	if !d.inRange(list, i) || d.lists[list][i] == text {
		return false
	}
	d.lists[list][i] = text
	d.notify(Change{List: list, Op: OpReplace, Index: i, Text: text})
	return true
}

// RemoveAt deletes the entry at i.
func (d *Document) RemoveAt(list List, i int) bool {
	if !d.inRange(list, i) {
		return false
	}
	removed := d.lists[list][i]
	d.lists[list] = slices.Delete(d.lists[list], i, i+1)
	d.notify(Change{List: list, Op: OpRemove, Index: i, Text: removed})
	return true
}

// Count returns the number of entries in list.
func (d *Document) Count(list List) int {
	if !list.valid() {
		return 0
	}
	return len(d.lists[list])
}

// At returns the entry at i. Out-of-range reads panic.
func (d *Document) At(list List, i int) string {
	return d.lists[list][i]
}

// Entries returns a copy of list.
func (d *Document) Entries(list List) []string {
	if !list.valid() {
		return nil
	}
	return slices.Clone(d.lists[list])
}

// Len returns the total number of entries across both lists.
func (d *Document) Len() int {
	return len(d.lists[Comments]) + len(d.lists[Fortunes])
}

// Snapshot copies both lists.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{
		Comments: slices.Clone(d.lists[Comments]),
		Fortunes: slices.Clone(d.lists[Fortunes]),
	}
}

// Reset replaces the whole content with s and notifies observers once per
// list.
func (d *Document) Reset(s Snapshot) {
	d.lists[Comments] = slices.Clone(s.Comments)
	d.lists[Fortunes] = slices.Clone(s.Fortunes)
	d.notify(Change{List: Comments, Op: OpReset, Index: -1})
	d.notify(Change{List: Fortunes, Op: OpReset, Index: -1})
}

func (d *Document) inRange(list List, i int) bool {
	return list.valid() && i >= 0 && i < len(d.lists[list])
}

func (l List) valid() bool {
	return l == Comments || l == Fortunes
}
