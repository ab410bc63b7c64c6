package proximity

import (
	"unicode"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// isSpace reports whether r separates words. It matches the \s class of
// ECMAScript regular expressions, which treats the BOM as whitespace but
// not NEL (U+0085).
func isSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\uFEFF'
}

// BuildWordTokens splits text into maximal runs of non-whitespace.
// Offsets are shifted by offset so they are absolute in the document, and
// WordIndex counts tokens from zero in order of appearance.
func BuildWordTokens(text string, offset int) []domain.WordToken {
	tokens := make([]domain.WordToken, 0, len(text)/6+1)
	start := -1

	emit := func(end int) {
		tokens = append(tokens, domain.WordToken{
			Word:      text[start:end],
			Start:     offset + start,
			End:       offset + end,
			WordIndex: len(tokens),
		})
		start = -1
	}

	for i, r := range text {
		if isSpace(r) {
			if start >= 0 {
				emit(i)
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		emit(len(text))
	}

	return tokens
}

// CountWords returns the number of whitespace-delimited words in s.
func CountWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if isSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}
