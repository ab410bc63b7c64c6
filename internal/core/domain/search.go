package domain

import (
	"fmt"
	"time"
)

// NoWordIndex marks an Occurrence that was not produced from a word token,
// such as a regex match.
const NoWordIndex = -1

// Range bounds accepted from user input.
const (
	MinRange     = 10
	MaxRange     = 1000
	DefaultRange = 120
)

// MatchMode controls how multi-term windows are formed.
type MatchMode string

// Available match modes.
const (
	// MatchModeAll emits the minimal window that covers every distinct term.
	MatchModeAll MatchMode = "all"

	// MatchModeAny emits one window per occurrence, spanning every later
	// occurrence within range.
	MatchModeAny MatchMode = "any"
)

// IsValid returns true if the match mode is recognised.
func (m MatchMode) IsValid() bool {
	return m == MatchModeAll || m == MatchModeAny
}

// String returns the string representation.
func (m MatchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m MatchMode) Description() string {
	switch m {
	case MatchModeAll:
		return "All terms within range"
	case MatchModeAny:
		return "Any term, grouped by range"
	default:
		return "Unknown"
	}
}

// ParseMatchMode converts user input into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	m := MatchMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: match mode %q (want all or any)", ErrInvalidInput, s)
	}
	return m, nil
}

// SearchScope is the substring under search plus its position in the document.
// Text must equal document[Offset:EndOffset].
type SearchScope struct {
	Text      string `json:"text"`
	Offset    int    `json:"offset"`
	EndOffset int    `json:"end_offset"`
}

// Validate checks the scope invariants.
func (s SearchScope) Validate() error {
	if s.Offset < 0 || s.Offset > s.EndOffset {
		return fmt.Errorf("%w: offset %d, end %d", ErrInvalidScope, s.Offset, s.EndOffset)
	}
	if len(s.Text) != s.EndOffset-s.Offset {
		return fmt.Errorf("%w: text length %d does not match span %d",
			ErrInvalidScope, len(s.Text), s.EndOffset-s.Offset)
	}
	return nil
}

// FullScope returns a scope covering the whole text.
func FullScope(text string) SearchScope {
	return SearchScope{Text: text, Offset: 0, EndOffset: len(text)}
}

// Selection is an absolute [Start, End) range within a document.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// IsEmpty returns true when the selection covers no text.
func (s Selection) IsEmpty() bool {
	return s.End <= s.Start
}

// WordToken is a maximal run of non-whitespace characters.
type WordToken struct {
	Word      string `json:"word"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	WordIndex int    `json:"word_index"`
}

// Occurrence is one token (or regex match) matching one search term.
type Occurrence struct {
	Term      string `json:"term"`
	WordIndex int    `json:"word_index"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// HasWordIndex reports whether the occurrence came from a word token.
func (o Occurrence) HasWordIndex() bool {
	return o.WordIndex >= 0
}

// SearchOptions configures one advanced search run.
// Options are treated as immutable for the duration of a search.
type SearchOptions struct {
	// Regex treats the query as a single regular expression.
	Regex bool `json:"regex" yaml:"regex"`

	// CaseSensitive disables case folding.
	CaseSensitive bool `json:"case_sensitive" yaml:"case_sensitive"`

	// WholeWord requires a token to equal a term rather than contain it.
	WholeWord bool `json:"whole_word" yaml:"whole_word"`

	// Range is the maximum inclusive word-index span of a window.
	Range int `json:"range" yaml:"range"`

	// Mode selects all-terms or any-term windows.
	Mode MatchMode `json:"mode" yaml:"mode"`

	// SelectionOnly restricts the search to the caller's selection.
	SelectionOnly bool `json:"selection_only" yaml:"selection_only"`
}

// DefaultSearchOptions returns the options a fresh search starts with.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Regex:         false,
		CaseSensitive: false,
		WholeWord:     true,
		Range:         DefaultRange,
		Mode:          MatchModeAll,
		SelectionOnly: false,
	}
}

// ClampRange bounds a user-supplied range to [MinRange, MaxRange].
// Non-positive input yields DefaultRange.
func ClampRange(n int) int {
	if n <= 0 {
		return DefaultRange
	}
	if n < MinRange {
		return MinRange
	}
	if n > MaxRange {
		return MaxRange
	}
	return n
}

// ResultEntry is one ranked match window.
type ResultEntry struct {
	// Matches are the occurrences in the window, sorted by Start.
	Matches []Occurrence `json:"matches" yaml:"matches"`

	// Start is the absolute offset of the first match.
	Start int `json:"start" yaml:"start"`

	// End is the absolute end offset of the last match.
	End int `json:"end" yaml:"end"`

	// WindowWords is the inclusive word distance across the window (minimum 1).
	WindowWords int `json:"window_words" yaml:"window_words"`

	// Snippet is HTML-escaped context with <mark> highlights.
	Snippet string `json:"snippet" yaml:"snippet"`

	// SnippetStart and SnippetEnd locate the snippet in the document.
	SnippetStart int `json:"snippet_start" yaml:"snippet_start"`
	SnippetEnd   int `json:"snippet_end" yaml:"snippet_end"`
}

// SearchRequest is the caller's input for one advanced search.
type SearchRequest struct {
	// Query is a regex pattern or a comma/newline separated term list.
	Query string

	// Options configures the run.
	Options SearchOptions

	// Selection is the active selection, used when Options.SelectionOnly is set.
	Selection *Selection
}

// SearchReport is the outcome of one advanced search.
type SearchReport struct {
	ID       string        `json:"id" yaml:"id"`
	Query    string        `json:"query" yaml:"query"`
	Terms    []string      `json:"terms" yaml:"terms"`
	Options  SearchOptions `json:"options" yaml:"options"`
	Scope    Selection     `json:"scope" yaml:"scope"`
	Results  []ResultEntry `json:"results" yaml:"results"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
