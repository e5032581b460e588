// Package search implements the incremental "find next" engine used to
// locate entries in one document list at a time.
package search

import (
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Request carries the text and options of one find-next invocation.
type Request struct {
	Text            string `json:"text"`
	FromStart       bool   `json:"from_start"`
	MatchCase       bool   `json:"match_case"`
	MatchWholeWords bool   `json:"match_whole_words"`
	IsRegexp        bool   `json:"is_regexp"`
	SearchBackwards bool   `json:"search_backwards"`
}

// Session is the cursor state kept between find-next calls.
type Session struct {
	Cursor      int
	IsNewSearch bool

	step  int
	bound int
}

// Engine runs find-next requests against an ordered list of strings and
// remembers where the last match was. It is not safe for concurrent use;
// each find dialog owns one Engine.
type Engine struct {
	session Session

	target    string
	text      string
	fromStart bool

	matcher    Matcher
	matcherKey Request

	onFound  []func(term string)
	hasState bool
}

// NewEngine returns an engine with no active session.
func NewEngine() *Engine {
	return &Engine{session: Session{IsNewSearch: true}}
}

// OnFound registers fn to receive the search term of every successful
// find. The editor feeds this into its recent searches list.
func (e *Engine) OnFound(fn func(term string)) {
	e.onFound = append(e.onFound, fn)
}

// Reset drops the current session so the next request starts fresh.
func (e *Engine) Reset() {
	e.session = Session{IsNewSearch: true}
}

// Session returns a copy of the current cursor state.
func (e *Engine) Session() Session {
	return e.session
}

// FindNext searches entries for the next match of req. target identifies
// the list being searched; switching targets starts a new session.
// selected is the caller's current selection, or -1 when nothing is
// selected. It returns the matching index and true, or -1 and false when
// the search reached its bound without a match.
func (e *Engine) FindNext(target string, req Request, entries []string, selected int) (int, bool) {
	e.invalidate(target, req)

	m, err := e.compile(req)
	if err != nil {
		log.Debug().Err(err).Str("pattern", req.Text).Msg("search pattern rejected")
		return -1, false
	}

	n := len(entries)
	s := &e.session
	if s.IsNewSearch {
		s.step, s.bound = 1, n
		if req.SearchBackwards {
			s.step, s.bound = -1, -1
		}

		switch {
		case req.FromStart && req.SearchBackwards:
			s.Cursor = n - 1
		case req.FromStart:
			s.Cursor = 0
		case selected >= 0 && selected < n:
			s.Cursor = selected
		default:
			s.Cursor = 0
		}
		s.IsNewSearch = false
	} else {
		exhausted := s.Cursor == s.bound
		// The list may have grown or shrunk since the session started.
		if s.step > 0 {
			s.bound = n
		}

		s.Cursor += s.step
		if exhausted || s.Cursor < 0 || s.Cursor >= n {
			s.Cursor = 0
			if s.step < 0 {
				s.Cursor = n - 1
			}
		}
	}

	for s.Cursor != s.bound && s.Cursor >= 0 && s.Cursor < n {
		if m.Match(entries[s.Cursor]) {
			e.found(req.Text)
			return s.Cursor, true
		}
		s.Cursor += s.step
	}

	s.Cursor = s.bound
	return -1, false
}

// invalidate starts a new session when the target changes, the search text
// changes or FromStart is switched on.
func (e *Engine) invalidate(target string, req Request) {
	if !e.hasState || target != e.target || req.Text != e.text || (req.FromStart && !e.fromStart) {
		e.Reset()
	}
	e.hasState = true
	e.target = target
	e.text = req.Text
	e.fromStart = req.FromStart
}

func (e *Engine) compile(req Request) (Matcher, error) {
	key := Request{
		Text:            req.Text,
		MatchCase:       req.MatchCase,
		MatchWholeWords: req.MatchWholeWords,
		IsRegexp:        req.IsRegexp,
	}
	if e.matcher != nil && key == e.matcherKey {
		return e.matcher, nil
	}

	m, err := Compile(req)
	if err != nil {
		return nil, err
	}
	e.matcher, e.matcherKey = m, key
	return m, nil
}

func (e *Engine) found(term string) {
	for _, fn := range e.onFound {
		fn(term)
	}
}

// Matcher tests a single entry.
type Matcher interface {
	Match(s string) bool
}

// ErrEmptyText is returned by Compile for an empty search text.
var ErrEmptyText = errors.New("search text is empty")

// Compile builds the matcher selected by the request flags. Whole-word
// matching wraps the quoted text in \W on both sides and takes precedence
// over IsRegexp. A regular expression that fails to compile is returned as
// an error so the caller can reject it before searching.
func Compile(req Request) (Matcher, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	switch {
	case req.MatchWholeWords:
		return compileRegexp(`\W`+regexp.QuoteMeta(req.Text)+`\W`, req.MatchCase)
	case req.IsRegexp:
		return compileRegexp(req.Text, req.MatchCase)
	case req.MatchCase:
		return substring{text: req.Text}, nil
	default:
		return foldedSubstring{text: strings.ToLower(req.Text)}, nil
	}
}

func compileRegexp(pattern string, matchCase bool) (Matcher, error) {
	if !matchCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return expr{re: re}, nil
}

type expr struct{ re *regexp.Regexp }

func (m expr) Match(s string) bool { return m.re.MatchString(s) }

type substring struct{ text string }

func (m substring) Match(s string) bool { return strings.Contains(s, m.text) }

type foldedSubstring struct{ text string }

func (m foldedSubstring) Match(s string) bool {
	return strings.Contains(strings.ToLower(s), m.text)
}
