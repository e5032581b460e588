package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	bus := NewBus(0)

	var received []Notification
	bus.Subscribe(func(n Notification) {
		received = append(received, n)
	})

	bus.Errorf("test error: %d", 42)
	bus.Infof("info msg")
	bus.Warnf("warn msg")

	require.Len(t, received, 3)
	assert.Equal(t, LevelError, received[0].Level)
	assert.Equal(t, "test error: 42", received[0].Message)
	assert.Equal(t, LevelInfo, received[1].Level)
	assert.Equal(t, LevelWarning, received[2].Level)
}

func TestBus_Publish_assigns_increasing_ids(t *testing.T) {
	bus := NewBus(0)

	var ids []int64
	bus.Subscribe(func(n Notification) {
		ids = append(ids, n.ID)
	})

	bus.Infof("one")
	bus.Infof("two")

	assert.Equal(t, []int64{1, 2}, ids)
}

func TestBus_History_returns_newest_first(t *testing.T) {
	bus := NewBus(0)

	bus.Infof("first")
	bus.Infof("second")
	bus.Infof("third")

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Message)
	assert.Equal(t, "first", history[2].Message)
}

func TestBus_History_is_bounded(t *testing.T) {
	bus := NewBus(3)

	for i := range 5 {
		bus.Infof("msg %d", i)
	}

	history := bus.History()
	require.Len(t, history, 3)
	assert.Equal(t, "msg 4", history[0].Message)
	assert.Equal(t, "msg 2", history[2].Message)
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus(0)

	bus.Infof("to be cleared")
	bus.Clear()

	assert.Empty(t, bus.History())
}

func TestBus_Publish_sets_created_at(t *testing.T) {
	bus := NewBus(0)

	var received Notification
	bus.Subscribe(func(n Notification) {
		received = n
	})

	bus.Infof("timestamp check")
	assert.False(t, received.CreatedAt.IsZero())
}

func TestBus_Publish_without_subscribers(t *testing.T) {
	bus := NewBus(0)
	assert.NotPanics(t, func() { bus.Errorf("%s", fmt.Sprint("nobody listening")) })
	assert.Len(t, bus.History(), 1)
}
