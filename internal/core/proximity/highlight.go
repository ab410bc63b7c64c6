package proximity

import (
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HighlightSnippet renders snippetText as escaped HTML with every match
// wrapped in <mark>. Match offsets are absolute; snippetStart is the
// absolute offset of snippetText's first byte. Matches are processed in
// start order. An overlapping match is rendered from its own start, so
// overlapping text may appear in more than one mark.
func HighlightSnippet(snippetText string, matches []domain.Occurrence, snippetStart int) string {
	if len(matches) == 0 {
		return EscapeHTML(snippetText)
	}

	sorted := slices.Clone(matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(snippetText) + len(sorted)*len("<mark></mark>"))

	cursor := 0
	for _, m := range sorted {
		relStart := max(0, m.Start-snippetStart)
		relEnd := max(relStart, m.End-snippetStart)

		b.WriteString(EscapeHTML(slice(snippetText, cursor, relStart)))
		b.WriteString("<mark>")
		b.WriteString(EscapeHTML(slice(snippetText, relStart, relEnd)))
		b.WriteString("</mark>")
		cursor = relEnd
	}
	b.WriteString(EscapeHTML(slice(snippetText, cursor, len(snippetText))))

	return b.String()
}

// slice returns s[from:to] with both bounds clamped to s. It returns the
// empty string when the clamped range is empty.
func slice(s string, from, to int) string {
	from = clamp(from, 0, len(s))
	to = clamp(to, 0, len(s))
	if from >= to {
		return ""
	}
	return s[from:to]
}
