// Package notify carries user-facing notifications from editor actions to
// the status line.
package notify

import (
	"fmt"
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// DefaultHistory is the number of notifications a Bus remembers.
const DefaultHistory = 50

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(Notification)

// Bus is a synchronous in-process notification bus. It dispatches notifications
// to subscribers inline and keeps a bounded in-memory history. The Bus is safe
// for use from the Bubble Tea Update loop (single-threaded).
type Bus struct {
	subscribers []Subscriber
	history     []Notification
	limit       int
	nextID      int64
	mu          sync.Mutex
}

// NewBus creates a notification bus remembering at most limit notifications.
// A limit below 1 uses DefaultHistory.
func NewBus(limit int) *Bus {
	if limit < 1 {
		limit = DefaultHistory
	}
	return &Bus{limit: limit}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish assigns an ID, records the notification and dispatches it to all
// subscribers.
func (b *Bus) Publish(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.nextID++
	n.ID = b.nextID
	b.history = append(b.history, n)
	if len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Notification{
		Level:   LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(Notification{
		Level:   LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(Notification{
		Level:   LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns remembered notifications, newest first.
func (b *Bus) History() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Notification, len(b.history))
	for i, n := range b.history {
		out[len(b.history)-1-i] = n
	}
	return out
}

// Clear forgets all remembered notifications.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}
