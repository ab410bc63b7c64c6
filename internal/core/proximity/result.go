package proximity

import (
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// ResultMeta carries optional window information into BuildResultEntry.
type ResultMeta struct {
	// WindowWords, when positive, is used as the entry's window size.
	WindowWords int

	// FallbackWindow, when positive, is used if WindowWords is unset and
	// the matches carry no word indices.
	FallbackWindow int
}

// BuildResultEntry turns a group of matches into a result entry. The
// entry spans the earliest match start to the latest match end, and its
// snippet extends SnippetBefore bytes before and SnippetAfter bytes after
// that span, clamped to the document and widened to character boundaries.
// It returns nil when matches is empty.
//
// The window size is resolved in order: meta.WindowWords, the word-index
// distance between first and last match, meta.FallbackWindow, and finally
// the number of words in the span.
func BuildResultEntry(matches []domain.Occurrence, fullText string, meta ResultMeta) *domain.ResultEntry {
	if len(matches) == 0 {
		return nil
	}

	sorted := slices.Clone(matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	start := clamp(first.Start, 0, len(fullText))
	end := clamp(last.End, start, len(fullText))

	snippetStart := clamp(start-SnippetBefore, 0, start)
	for snippetStart > 0 && !utf8.RuneStart(fullText[snippetStart]) {
		snippetStart--
	}
	snippetEnd := clamp(end+SnippetAfter, end, len(fullText))
	for snippetEnd < len(fullText) && !utf8.RuneStart(fullText[snippetEnd]) {
		snippetEnd++
	}

	return &domain.ResultEntry{
		Matches:      sorted,
		Start:        start,
		End:          end,
		WindowWords:  resolveWindow(first, last, fullText[start:end], meta),
		Snippet:      HighlightSnippet(fullText[snippetStart:snippetEnd], sorted, snippetStart),
		SnippetStart: snippetStart,
		SnippetEnd:   snippetEnd,
	}
}

func resolveWindow(first, last domain.Occurrence, span string, meta ResultMeta) int {
	if meta.WindowWords > 0 {
		return meta.WindowWords
	}
	if first.HasWordIndex() && last.HasWordIndex() {
		return max(1, last.WordIndex-first.WordIndex+1)
	}
	if meta.FallbackWindow > 0 {
		return meta.FallbackWindow
	}
	return max(1, CountWords(span))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
