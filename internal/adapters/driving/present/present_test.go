package present

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/proximity"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

const sample = "alpha foo\nbeta\ngamma bar delta\nfoo <b>"

func search(t *testing.T, text, query string, opts domain.SearchOptions) []domain.ResultEntry {
	t.Helper()
	results, err := proximity.RunMultiTermSearch(proximity.ParseTerms(query), domain.FullScope(text), text, opts)
	require.NoError(t, err)
	return results
}

func TestDescribe_LineLabelsAndSelection(t *testing.T) {
	results := search(t, sample, "foo, bar", domain.DefaultSearchOptions())
	require.NotEmpty(t, results)

	summaries := Describe(sample, results)
	require.Len(t, summaries, len(results))

	first := summaries[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "Line 1–3", first.LineLabel)
	assert.Equal(t, 1, first.FirstLine)
	assert.Equal(t, 3, first.LastLine)
	assert.Equal(t, "2 matches", first.MatchLabel)
	assert.Equal(t, textpos.Position{Line: 1, Column: 7}, first.Selection.Start)
	assert.Equal(t, textpos.Position{Line: 1, Column: 10}, first.Selection.End)
	assert.Equal(t, results[0].WindowWords, first.WindowWords)
	assert.Equal(t, results[0].Snippet, first.Snippet)
}

func TestDescribe_SingleLine(t *testing.T) {
	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.MatchModeAny
	results := search(t, sample, "beta", opts)
	require.Len(t, results, 1)

	s := Describe(sample, results)[0]
	assert.Equal(t, "Line 2", s.LineLabel)
	assert.Equal(t, "1 match", s.MatchLabel)
}

func TestDescribe_NoMatchesIsPreview(t *testing.T) {
	s := Describe(sample, []domain.ResultEntry{{}})
	require.Len(t, s, 1)
	assert.Equal(t, "Preview", s[0].LineLabel)
	assert.Equal(t, "0 matches", s[0].MatchLabel)
}

func TestSegments(t *testing.T) {
	text := "one two three"
	entry := domain.ResultEntry{
		Matches: []domain.Occurrence{
			{Start: 4, End: 7, WordIndex: 1},
			{Start: 5, End: 13, WordIndex: domain.NoWordIndex},
		},
		SnippetStart: 0,
		SnippetEnd:   len(text),
	}

	segs := New(text).Segments(entry)
	assert.Equal(t, []Segment{
		{Text: "one "},
		{Text: "two three", Match: true},
	}, segs)
}

func TestSegments_ClampsSnippet(t *testing.T) {
	text := "abc"
	entry := domain.ResultEntry{
		Matches:      []domain.Occurrence{{Start: 1, End: 2}},
		SnippetStart: -5,
		SnippetEnd:   99,
	}
	assert.Equal(t, []Segment{{Text: "a"}, {Text: "b", Match: true}, {Text: "c"}}, New(text).Segments(entry))
}

func TestDetail_GroupsByLine(t *testing.T) {
	entry := domain.ResultEntry{Matches: []domain.Occurrence{
		{Start: 31, End: 34},
		{Start: 6, End: 9},
		{Start: 35, End: 38},
	}}

	lines := Detail(sample, entry)
	require.Len(t, lines, 2)

	assert.Equal(t, 1, lines[0].Line)
	assert.Equal(t, "alpha foo", lines[0].Text)
	assert.Equal(t, []domain.Span{{Start: 6, End: 9}}, lines[0].Spans)
	assert.Equal(t, "alpha <mark>foo</mark>", lines[0].HTML)

	assert.Equal(t, 4, lines[1].Line)
	assert.Equal(t, "foo <b>", lines[1].Text)
	assert.Equal(t, []domain.Span{{Start: 0, End: 3}, {Start: 4, End: 7}}, lines[1].Spans)
	assert.Equal(t, "<mark>foo</mark> <mark>&lt;b&gt;</mark>", lines[1].HTML)
}

func TestDetail_MatchSpanningLines(t *testing.T) {
	text := "ab\ncd"
	lines := Detail(text, domain.ResultEntry{Matches: []domain.Occurrence{{Start: 1, End: 4}}})
	require.Len(t, lines, 1)
	assert.Equal(t, domain.Span{Start: 1, End: 4}, lines[0].Spans[0])
	assert.Equal(t, "a<mark>b</mark>", lines[0].HTML)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Line 4", LineLabel(4, 4))
	assert.Equal(t, "Line 4–9", LineLabel(4, 9))
	assert.Equal(t, "1 match", MatchLabel(1))
	assert.Equal(t, "0 matches", MatchLabel(0))
	assert.Equal(t, "12 matches", MatchLabel(12))
}

func TestSearchMessage(t *testing.T) {
	assert.Empty(t, SearchMessage(nil, false))
	assert.Equal(t, "Invalid regex pattern", SearchMessage(domain.ErrInvalidPattern, true))
	assert.Equal(t, "Add a regex pattern", SearchMessage(domain.ErrEmptyInput, true))
	assert.Equal(t, "Add at least one search term", SearchMessage(domain.ErrEmptyInput, false))
	assert.Equal(t, "Advanced search failed", SearchMessage(fmt.Errorf("boom"), false))
}

func TestFindMessage(t *testing.T) {
	assert.Empty(t, FindMessage(nil))
	assert.Equal(t, "Nothing to replace", FindMessage(fmt.Errorf("x: %w", domain.ErrEmptyInput)))
	assert.Equal(t, "No matches found", FindMessage(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, "Find failed", FindMessage(fmt.Errorf("boom")))
}

func TestStatusLine(t *testing.T) {
	assert.Empty(t, StatusLine(nil))
	report := &domain.SearchReport{
		Options:  domain.DefaultSearchOptions(),
		Results:  make([]domain.ResultEntry, 3),
		Duration: 1500 * time.Microsecond,
	}
	assert.Equal(t, "3 results · terms · all · range 120 · 1.5ms", StatusLine(report))
}
