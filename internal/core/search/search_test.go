package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fruit = []string{"apple", "Banana", "cherry"}

func TestEngine_FindNextFromStartThenExhausts(t *testing.T) {
	e := NewEngine()
	req := Request{Text: "an", FromStart: true}

	idx, ok := e.FindNext("fortunes", req, fruit, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = e.FindNext("fortunes", req, fruit, idx)
	assert.False(t, ok, "repeat should run off the end without another match")
	assert.Equal(t, -1, idx)

	e.Reset()
	idx, ok = e.FindNext("fortunes", req, fruit, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestEngine_RepeatAfterNotFoundWraps(t *testing.T) {
	e := NewEngine()
	req := Request{Text: "an", FromStart: true}

	_, _ = e.FindNext("fortunes", req, fruit, -1)
	_, ok := e.FindNext("fortunes", req, fruit, 1)
	require.False(t, ok)

	idx, ok := e.FindNext("fortunes", req, fruit, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestEngine_RepeatSeesEntriesAddedAfterMatch(t *testing.T) {
	e := NewEngine()
	req := Request{Text: "hit", FromStart: true}
	entries := []string{"hit", "miss"}

	idx, ok := e.FindNext("fortunes", req, entries, -1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	entries = append(entries, "miss", "hit")
	idx, ok = e.FindNext("fortunes", req, entries, idx)
	require.True(t, ok, "entry appended past the old end should be found")
	assert.Equal(t, 3, idx)
}

func TestEngine_RepeatAfterNotFoundRestartsOnGrownList(t *testing.T) {
	e := NewEngine()
	req := Request{Text: "hit", FromStart: true}
	entries := []string{"hit", "miss"}

	_, _ = e.FindNext("fortunes", req, entries, -1)
	_, ok := e.FindNext("fortunes", req, entries, 0)
	require.False(t, ok)

	entries = append(entries, "hit")
	idx, ok := e.FindNext("fortunes", req, entries, 0)
	require.True(t, ok)
	assert.Equal(t, 0, idx, "an exhausted session wraps to the start")

	idx, ok = e.FindNext("fortunes", req, entries, idx)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestEngine_RepeatOnShrunkList(t *testing.T) {
	e := NewEngine()
	req := Request{Text: "hit", FromStart: true}

	idx, ok := e.FindNext("fortunes", req, []string{"miss", "miss", "hit"}, -1)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = e.FindNext("fortunes", req, []string{"hit", "miss"}, idx)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestEngine_WholeWords(t *testing.T) {
	e := NewEngine()

	_, ok := e.FindNext("fortunes", Request{Text: "an", FromStart: true, MatchWholeWords: true}, fruit, -1)
	assert.False(t, ok)

	e.Reset()
	idx, ok := e.FindNext("fortunes", Request{Text: "an", FromStart: true, MatchWholeWords: true},
		[]string{"banana", "eat an apple"}, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestEngine_WholeWordsQuotesText(t *testing.T) {
	e := NewEngine()
	idx, ok := e.FindNext("c", Request{Text: "a.b", FromStart: true, MatchWholeWords: true},
		[]string{" axb ", " a.b "}, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestEngine_MatchCase(t *testing.T) {
	e := NewEngine()

	_, ok := e.FindNext("f", Request{Text: "banana", FromStart: true, MatchCase: true}, fruit, -1)
	assert.False(t, ok)

	idx, ok := e.FindNext("f", Request{Text: "Banana", FromStart: true, MatchCase: true}, fruit, -1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestEngine_Regexp(t *testing.T) {
	e := NewEngine()

	idx, ok := e.FindNext("f", Request{Text: "^ch.*y$", FromStart: true, IsRegexp: true}, fruit, -1)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	e.Reset()
	idx, ok = e.FindNext("f", Request{Text: "^b", FromStart: true, IsRegexp: true}, fruit, -1)
	require.True(t, ok, "regexp is case-insensitive unless MatchCase is set")
	assert.Equal(t, 1, idx)

	e.Reset()
	_, ok = e.FindNext("f", Request{Text: "^b", FromStart: true, IsRegexp: true, MatchCase: true}, fruit, -1)
	assert.False(t, ok)
}

func TestEngine_InvalidRegexpIsNotFound(t *testing.T) {
	e := NewEngine()
	idx, ok := e.FindNext("f", Request{Text: "([", IsRegexp: true}, fruit, -1)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestEngine_Backwards(t *testing.T) {
	list := []string{"x1", "y", "x2", "x3"}
	e := NewEngine()
	req := Request{Text: "x", FromStart: true, SearchBackwards: true}

	var got []int
	for {
		idx, ok := e.FindNext("f", req, list, -1)
		if !ok {
			break
		}
		got = append(got, idx)
	}

	assert.Equal(t, []int{3, 2, 0}, got)
}

func TestEngine_StartsAtSelection(t *testing.T) {
	list := []string{"hit", "miss", "hit", "miss"}
	e := NewEngine()

	idx, ok := e.FindNext("f", Request{Text: "hit"}, list, 1)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = e.FindNext("f", Request{Text: "hit"}, list, 2)
	assert.False(t, ok, "entries before the starting selection are not revisited until the next wrap")
}

func TestEngine_SelectionOutOfRangeStartsAtZero(t *testing.T) {
	e := NewEngine()
	idx, ok := e.FindNext("f", Request{Text: "apple"}, fruit, 42)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestEngine_InvalidationEvents(t *testing.T) {
	list := []string{"a", "a", "a"}

	t.Run("target change", func(t *testing.T) {
		e := NewEngine()
		_, _ = e.FindNext("comments", Request{Text: "a", FromStart: true}, list, -1)
		_, _ = e.FindNext("comments", Request{Text: "a", FromStart: true}, list, -1)
		assert.Equal(t, 1, e.Session().Cursor)

		idx, _ := e.FindNext("fortunes", Request{Text: "a", FromStart: true}, list, -1)
		assert.Equal(t, 0, idx)
	})

	t.Run("text change", func(t *testing.T) {
		e := NewEngine()
		_, _ = e.FindNext("f", Request{Text: "a", FromStart: true}, list, -1)
		_, _ = e.FindNext("f", Request{Text: "a", FromStart: true}, list, -1)

		idx, _ := e.FindNext("f", Request{Text: "A", FromStart: true}, list, -1)
		assert.Equal(t, 0, idx)
	})

	t.Run("from start switched on", func(t *testing.T) {
		e := NewEngine()
		_, _ = e.FindNext("f", Request{Text: "a"}, list, 2)
		assert.Equal(t, 2, e.Session().Cursor)

		idx, _ := e.FindNext("f", Request{Text: "a", FromStart: true}, list, 2)
		assert.Equal(t, 0, idx)
	})

	t.Run("flag change keeps session", func(t *testing.T) {
		e := NewEngine()
		_, _ = e.FindNext("f", Request{Text: "a", FromStart: true}, list, -1)

		idx, _ := e.FindNext("f", Request{Text: "a", FromStart: true, MatchCase: true}, list, -1)
		assert.Equal(t, 1, idx)
	})
}

func TestEngine_EmptyList(t *testing.T) {
	e := NewEngine()
	_, ok := e.FindNext("f", Request{Text: "x", FromStart: true}, nil, -1)
	assert.False(t, ok)

	_, ok = e.FindNext("f", Request{Text: "x", FromStart: true}, nil, -1)
	assert.False(t, ok)

	e.Reset()
	_, ok = e.FindNext("f", Request{Text: "x", FromStart: true, SearchBackwards: true}, nil, -1)
	assert.False(t, ok)
}

func TestEngine_OnFoundPublishesTerm(t *testing.T) {
	e := NewEngine()
	var terms []string
	e.OnFound(func(term string) { terms = append(terms, term) })

	_, _ = e.FindNext("f", Request{Text: "an", FromStart: true}, fruit, -1)
	_, _ = e.FindNext("f", Request{Text: "an", FromStart: true}, fruit, -1)

	assert.Equal(t, []string{"an"}, terms, "only successful finds are published")
}

func TestCompile_EmptyText(t *testing.T) {
	_, err := Compile(Request{})
	assert.ErrorIs(t, err, ErrEmptyText)
}
