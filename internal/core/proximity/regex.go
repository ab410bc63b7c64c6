package proximity

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// MatchTimeout bounds a single regex match attempt. Patterns with
// catastrophic backtracking fail with ErrSearchFailed instead of hanging.
const MatchTimeout = 2 * time.Second

// CompilePattern compiles a user pattern with ECMAScript semantics. The
// pattern is case-insensitive unless caseSensitive is set.
func CompilePattern(pattern string, caseSensitive bool) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// RunRegexSearch scans scope.Text for successive matches of pattern. Each
// match becomes one result entry with absolute byte offsets. Zero-length
// matches advance the scan by one character so the loop always makes
// progress. At most MaxResults entries are produced.
func RunRegexSearch(pattern string, scope domain.SearchScope, fullText string, opts domain.SearchOptions) ([]domain.ResultEntry, error) {
	if pattern == "" {
		return nil, domain.ErrEmptyInput
	}

	re, err := CompilePattern(pattern, opts.CaseSensitive)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.ResultEntry, 0, 8)
	scan := newMatchScanner(re, scope.Text)

	for i := 0; i < MaxRegexIterations; i++ {
		start, end, ok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		words := CountWords(scope.Text[start:end])
		match := domain.Occurrence{
			Term:      pattern,
			WordIndex: domain.NoWordIndex,
			Start:     scope.Offset + start,
			End:       scope.Offset + end,
		}
		results = append(results, BuildResultEntry([]domain.Occurrence{match}, fullText, ResultMeta{
			WindowWords: max(1, words),
		}))

		if len(results) >= MaxResults {
			break
		}
	}

	return DedupeResults(results), nil
}

// FindLiteral returns the spans of every occurrence of query in text,
// treating query literally. Matching is case-insensitive unless
// caseSensitive is set. At most MaxFindMatches spans are returned.
func FindLiteral(text, query string, caseSensitive bool) ([]domain.Span, error) {
	if query == "" {
		return []domain.Span{}, nil
	}

	re, err := CompilePattern(regexp2.Escape(query), caseSensitive)
	if err != nil {
		return nil, err
	}

	spans := make([]domain.Span, 0, 8)
	scan := newMatchScanner(re, text)
	for len(spans) < MaxFindMatches {
		start, end, ok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		spans = append(spans, domain.Span{Start: start, End: end})
	}
	return spans, nil
}

// matchScanner walks successive non-overlapping matches of a pattern and
// reports them as byte offsets into the scanned text.
type matchScanner struct {
	re     *regexp2.Regexp
	runes  []rune
	byteAt []int
	cursor int
}

func newMatchScanner(re *regexp2.Regexp, text string) *matchScanner {
	byteAt := make([]int, 0, len(text)+1)
	for i := range text {
		byteAt = append(byteAt, i)
	}
	byteAt = append(byteAt, len(text))

	return &matchScanner{
		re:     re,
		runes:  []rune(text),
		byteAt: byteAt,
	}
}

// next returns the byte span of the next match. ok is false once the
// text is exhausted.
func (s *matchScanner) next() (start, end int, ok bool, err error) {
	if s.cursor > len(s.runes) {
		return 0, 0, false, nil
	}

	m, err := s.re.FindRunesMatchStartingAt(s.runes, s.cursor)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}
	if m == nil {
		s.cursor = len(s.runes) + 1
		return 0, 0, false, nil
	}

	s.cursor = m.Index + m.Length
	if m.Length == 0 {
		s.cursor++
	}
	return s.byteAt[m.Index], s.byteAt[m.Index+m.Length], true, nil
}
