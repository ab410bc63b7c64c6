// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/tui/styles"
)

// NoResults is shown after a search that produced no windows.
const NoResults = "No results"

// ResultList displays search results in a navigable list.
type ResultList struct {
	results  []present.Summary
	searched bool
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.results) > 0 {
				r.selected = len(r.results) - 1
			}
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		if r.searched {
			return r.styles.Muted.Render(NoResults)
		}
		return r.styles.Muted.Render(present.EmptyResults)
	}

	lines := make([]string, 0, len(r.results)*2+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// Each result renders as a label line and a snippet line.
	visibleCount := (r.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.results))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single result as a label line and a snippet line.
func (r *ResultList) renderResult(index int, result *present.Summary) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	label := fmt.Sprintf("%s%-14s", indicator, result.LineLabel)
	meta := fmt.Sprintf("%s · %d words", result.MatchLabel, result.WindowWords)

	var labelLine string
	if index == r.selected {
		labelLine = r.styles.Selected.Render(label + "  " + meta)
	} else {
		labelLine = r.styles.Normal.Render(label+"  ") + r.styles.Muted.Render(meta)
	}

	maxSnippet := r.width - 6
	if maxSnippet < 20 {
		maxSnippet = 20
	}
	return labelLine + "\n    " + r.renderSegments(result.Segments, maxSnippet)
}

// renderSegments styles matched runs and truncates to limit runes.
func (r *ResultList) renderSegments(segs []present.Segment, limit int) string {
	var b strings.Builder
	used := 0
	for _, seg := range segs {
		text := []rune(flatten(seg.Text))
		if used+len(text) > limit {
			text = text[:max(0, limit-used-3)]
			b.WriteString(r.paint(seg.Match, string(text)))
			b.WriteString(r.styles.Muted.Render("..."))
			return b.String()
		}
		used += len(text)
		b.WriteString(r.paint(seg.Match, string(text)))
	}
	return b.String()
}

// paint renders text with the match or muted style.
func (r *ResultList) paint(match bool, text string) string {
	if text == "" {
		return ""
	}
	if match {
		return r.styles.Match.Render(text)
	}
	return r.styles.Muted.Render(text)
}

// flatten keeps multi-line snippets on one row.
func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []present.Summary) {
	r.results = results
	r.searched = true
	r.selected = 0
}

// Clear empties the list and forgets that a search ran.
func (r *ResultList) Clear() {
	r.results = nil
	r.searched = false
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []present.Summary {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *present.Summary {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
