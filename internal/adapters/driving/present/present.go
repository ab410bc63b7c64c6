// Package present turns search results into line-oriented views shared by
// the CLI, TUI, MCP and HTTP adapters.
package present

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/proximity"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

// Range is a 1-based line/column selection in the document.
type Range struct {
	Start textpos.Position `json:"start" yaml:"start"`
	End   textpos.Position `json:"end" yaml:"end"`
}

// Segment is a run of snippet text, either plain or part of a match.
type Segment struct {
	Text  string `json:"text" yaml:"text"`
	Match bool   `json:"match,omitempty" yaml:"match,omitempty"`
}

// Summary is the list view of one result.
type Summary struct {
	Index       int       `json:"index" yaml:"index"`
	LineLabel   string    `json:"line_label" yaml:"line_label"`
	FirstLine   int       `json:"first_line" yaml:"first_line"`
	LastLine    int       `json:"last_line" yaml:"last_line"`
	Selection   Range     `json:"selection" yaml:"selection"`
	Matches     int       `json:"matches" yaml:"matches"`
	MatchLabel  string    `json:"match_label" yaml:"match_label"`
	WindowWords int       `json:"window_words" yaml:"window_words"`
	Snippet     string    `json:"snippet" yaml:"snippet"`
	Segments    []Segment `json:"segments" yaml:"segments"`
}

// DetailLine is one document line of the detail view.
type DetailLine struct {
	Line  int           `json:"line" yaml:"line"`
	Text  string        `json:"text" yaml:"text"`
	Spans []domain.Span `json:"spans" yaml:"spans"`
	HTML  string        `json:"html" yaml:"html"`
}

// Presenter caches the line index of one document snapshot.
type Presenter struct {
	text  string
	index *textpos.LineIndex
}

// New creates a presenter for fullText.
func New(fullText string) *Presenter {
	return &Presenter{text: fullText, index: textpos.NewLineIndex(fullText)}
}

// Describe builds a summary for every result.
func Describe(fullText string, results []domain.ResultEntry) []Summary {
	return New(fullText).Describe(results)
}

// Detail builds the line detail view of one result.
func Detail(fullText string, result domain.ResultEntry) []DetailLine {
	return New(fullText).Detail(result)
}

// Describe builds a summary for every result.
func (p *Presenter) Describe(results []domain.ResultEntry) []Summary {
	out := make([]Summary, 0, len(results))
	for i, r := range results {
		out = append(out, p.summarise(i, r))
	}
	return out
}

func (p *Presenter) summarise(i int, r domain.ResultEntry) Summary {
	s := Summary{
		Index:       i,
		Matches:     len(r.Matches),
		MatchLabel:  MatchLabel(len(r.Matches)),
		WindowWords: r.WindowWords,
		Snippet:     r.Snippet,
		Segments:    p.Segments(r),
		LineLabel:   "Preview",
	}
	if len(r.Matches) == 0 {
		return s
	}

	first, last := p.index.LineOf(r.Matches[0].Start), 0
	for _, m := range r.Matches {
		line := p.index.LineOf(m.Start)
		first = min(first, line)
		last = max(last, line)
	}
	s.FirstLine, s.LastLine = first, last
	s.LineLabel = LineLabel(first, last)
	s.Selection = p.Selection(r)
	return s
}

// Selection returns the range of the result's first match, which is what
// an editor selects when the result is activated.
func (p *Presenter) Selection(r domain.ResultEntry) Range {
	if len(r.Matches) == 0 {
		return Range{}
	}
	m := r.Matches[0]
	return Range{Start: p.index.Position(m.Start), End: p.index.Position(m.End)}
}

// Segments splits the result's snippet into plain and matched runs.
// Overlapping matches are merged so no text appears twice.
func (p *Presenter) Segments(r domain.ResultEntry) []Segment {
	start := min(max(r.SnippetStart, 0), len(p.text))
	end := min(max(r.SnippetEnd, start), len(p.text))
	snippet := p.text[start:end]

	matches := slices.Clone(r.Matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })

	var segs []Segment
	add := func(text string, match bool) {
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].Match == match {
			segs[n-1].Text += text
			return
		}
		segs = append(segs, Segment{Text: text, Match: match})
	}

	cursor := 0
	for _, m := range matches {
		relStart := min(max(m.Start-start, cursor), len(snippet))
		relEnd := min(max(m.End-start, relStart), len(snippet))
		add(snippet[cursor:relStart], false)
		add(snippet[relStart:relEnd], true)
		cursor = relEnd
	}
	add(snippet[cursor:], false)
	return segs
}

// Detail groups the result's matches by the line each one starts on and
// re-expresses them relative to that line.
func (p *Presenter) Detail(r domain.ResultEntry) []DetailLine {
	byLine := map[int]*DetailLine{}
	var order []int
	for _, m := range r.Matches {
		line := p.index.LineOf(m.Start)
		d, ok := byLine[line]
		if !ok {
			d = &DetailLine{Line: line, Text: p.index.LineText(line)}
			byLine[line] = d
			order = append(order, line)
		}
		lineStart := p.index.LineStart(line)
		relStart := max(0, m.Start-lineStart)
		relEnd := max(relStart, m.End-lineStart)
		d.Spans = append(d.Spans, domain.Span{Start: relStart, End: relEnd})
	}
	sort.Ints(order)

	out := make([]DetailLine, 0, len(order))
	for _, line := range order {
		d := byLine[line]
		occ := make([]domain.Occurrence, len(d.Spans))
		for i, sp := range d.Spans {
			occ[i] = domain.Occurrence{Start: sp.Start, End: sp.End, WordIndex: domain.NoWordIndex}
		}
		d.HTML = proximity.HighlightSnippet(d.Text, occ, 0)
		out = append(out, *d)
	}
	return out
}

// LineLabel formats "Line a" or "Line a–b".
func LineLabel(first, last int) string {
	if first == last {
		return fmt.Sprintf("Line %d", first)
	}
	return fmt.Sprintf("Line %d–%d", first, last)
}

// MatchLabel formats "1 match" or "n matches".
func MatchLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// EmptyResults is shown when a search produced nothing to list.
const EmptyResults = "Run an advanced search to see grouped hits."

// SearchMessage returns the user-facing text for a search error.
func SearchMessage(err error, regex bool) string {
	if err == nil {
		return ""
	}
	return domain.ClassifySearchError(err).UserMessage(regex)
}

// FindMessage returns the user-facing text for a find or replace error.
func FindMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyInput):
		return "Nothing to replace"
	case errors.Is(err, domain.ErrNotFound):
		return "No matches found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid find request"
	default:
		return "Find failed"
	}
}

// StatusLine summarises a report for status bars and CLI footers.
func StatusLine(report *domain.SearchReport) string {
	if report == nil {
		return ""
	}
	mode := "terms"
	if report.Options.Regex {
		mode = "regex"
	}
	return fmt.Sprintf("%d results · %s · %s · range %d · %s",
		len(report.Results), mode, report.Options.Mode, report.Options.Range,
		report.Duration.Round(10*time.Microsecond))
}
