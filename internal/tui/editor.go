package tui

import (
	"path/filepath"

	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

const untitled = "untitled"

// Editor is the open document plus the state the window keeps about it:
// where it lives on disk, whether it has unsaved edits and which entry
// is selected in each list.
type Editor struct {
	doc    *omidoc.Document
	path   string
	digest uint64
	dirty  bool
	gen    uint64

	focus    omidoc.List
	selected [2]int

	unsubscribe func()
}

// NewEditor wraps doc. path is empty for an untitled document.
func NewEditor(doc *omidoc.Document, path string, digest uint64) *Editor {
	e := &Editor{path: path, digest: digest, focus: omidoc.Fortunes}
	e.attach(doc)
	return e
}

func (e *Editor) attach(doc *omidoc.Document) {
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.doc = doc
	e.selected = [2]int{0, 0}
	e.unsubscribe = doc.Subscribe(e.onChange)
}

func (e *Editor) onChange(c omidoc.Change) {
	e.dirty = true
	e.gen++

	n := e.doc.Count(c.List)
	switch c.Op {
	case omidoc.OpAdd, omidoc.OpInsert, omidoc.OpReplace:
		e.selected[c.List] = c.Index
	case omidoc.OpRemove:
		e.selected[c.List] = min(c.Index, n-1)
	case omidoc.OpReset:
		e.selected[c.List] = 0
	}
	if e.selected[c.List] < 0 {
		e.selected[c.List] = 0
	}
}

// Replace swaps in a freshly loaded document.
func (e *Editor) Replace(loaded docio.Loaded, path string) {
	e.attach(loaded.Doc)
	e.path = path
	e.digest = loaded.Digest
	e.dirty = false
}

// Doc returns the open document.
func (e *Editor) Doc() *omidoc.Document { return e.doc }

// Path returns the file path, empty when untitled.
func (e *Editor) Path() string { return e.path }

// Digest returns the digest of the file contents last loaded or saved.
func (e *Editor) Digest() uint64 { return e.digest }

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty }

// Name is the file's base name, or "untitled".
func (e *Editor) Name() string {
	if e.path == "" {
		return untitled
	}
	return filepath.Base(e.path)
}

// Title is the window title: the name with "[*]" appended while dirty.
func (e *Editor) Title() string {
	if e.dirty {
		return e.Name() + "[*]"
	}
	return e.Name()
}

// Generation counts mutations. A save records the generation it wrote so
// edits made while it ran keep the document dirty.
func (e *Editor) Generation() uint64 { return e.gen }

// Saved records a successful save of generation gen to path.
func (e *Editor) Saved(path string, digest uint64, gen uint64) {
	e.path = path
	e.digest = digest
	e.dirty = e.gen != gen
}

// Focus returns the list that edits apply to.
func (e *Editor) Focus() omidoc.List { return e.focus }

// SetFocus switches the focused list.
func (e *Editor) SetFocus(l omidoc.List) { e.focus = l }

// ToggleFocus switches between comments and fortunes.
func (e *Editor) ToggleFocus() {
	if e.focus == omidoc.Comments {
		e.focus = omidoc.Fortunes
		return
	}
	e.focus = omidoc.Comments
}

// Selected returns the selected index of list, or -1 when it is empty.
func (e *Editor) Selected(l omidoc.List) int {
	if e.doc.Count(l) == 0 {
		return -1
	}
	return min(e.selected[l], e.doc.Count(l)-1)
}

// Select moves the selection of list to i when i is in range.
func (e *Editor) Select(l omidoc.List, i int) {
	if i >= 0 && i < e.doc.Count(l) {
		e.selected[l] = i
	}
}

// Current returns the selected text of the focused list.
func (e *Editor) Current() (string, bool) {
	i := e.Selected(e.focus)
	if i < 0 {
		return "", false
	}
	return e.doc.At(e.focus, i), true
}

// Add appends text to the focused list.
func (e *Editor) Add(text string) {
	e.doc.Add(e.focus, text)
}

// Insert puts text before the selection of the focused list, or appends
// when the list is empty.
func (e *Editor) Insert(text string) {
	i := e.Selected(e.focus)
	if i < 0 {
		e.doc.Add(e.focus, text)
		return
	}
	e.doc.InsertAt(e.focus, i, text)
}

// Edit replaces the selected entry of the focused list.
func (e *Editor) Edit(text string) bool {
	i := e.Selected(e.focus)
	if i < 0 {
		return false
	}
	return e.doc.ReplaceAt(e.focus, i, text)
}

// Delete removes the selected entry of the focused list.
func (e *Editor) Delete() bool {
	i := e.Selected(e.focus)
	if i < 0 {
		return false
	}
	return e.doc.RemoveAt(e.focus, i)
}
