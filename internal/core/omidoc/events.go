package omidoc

import "slices"

// Op is the kind of mutation carried by a Change.
type Op int

const (
	OpAdd Op = iota
	OpInsert
	OpReplace
	OpRemove
	OpReset
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	case OpRemove:
		return "remove"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one successful mutation. For OpRemove, Text holds the
// removed entry. For OpReset, Index is -1.
type Change struct {
	List  List
	Op    Op
	Index int
	Text  string
}

// Observer is called synchronously after every successful mutation.
type Observer func(Change)

// Subscribe registers fn and returns a function that removes it.
func (d *Document) Subscribe(fn Observer) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextObs
	d.nextObs++
	d.observers = append(d.observers, subscription{id: id, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.observers = slices.DeleteFunc(d.observers, func(s subscription) bool {
			return s.id == id
		})
	}
}

type subscription struct {
	id int
	fn Observer
}

func (d *Document) notify(c Change) {
	d.mu.Lock()
	subs := slices.Clone(d.observers)
	d.mu.Unlock()

	for _, s := range subs {
		s.fn(c)
	}
}
