package proximity

import (
	"sort"
	"strings"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// hit is an occurrence tagged with the index of its distinct term key.
type hit struct {
	occ  domain.Occurrence
	term int
}

// RunMultiTermSearch finds windows of consecutive words where the terms
// co-occur.
//
// In MatchModeAll a window is reported as soon as every distinct term has
// been seen within opts.Range words of the window's first occurrence. In
// MatchModeAny every occurrence opens a window that gathers all following
// occurrences still within range. Windows that resolve to the same span
// are reported once.
func RunMultiTermSearch(terms []string, scope domain.SearchScope, fullText string, opts domain.SearchOptions) ([]domain.ResultEntry, error) {
	keys, keyOf := distinctTerms(terms, opts.CaseSensitive)
	if len(keys) == 0 {
		return nil, domain.ErrEmptyInput
	}

	window := max(1, opts.Range)
	tokens := BuildWordTokens(scope.Text, scope.Offset)
	hits := findOccurrences(tokens, terms, keyOf, opts)
	if len(hits) == 0 {
		return []domain.ResultEntry{}, nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].occ.WordIndex < hits[j].occ.WordIndex
	})

	results := make([]*domain.ResultEntry, 0, 8)
	seen := make([]int, len(keys))

	for i := range hits {
		first := hits[i].occ.WordIndex
		covered := 0
		clear(seen)

		j := i
		for ; j < len(hits); j++ {
			size := hits[j].occ.WordIndex - first + 1
			if size > window {
				break
			}
			if opts.Mode == domain.MatchModeAny {
				continue
			}

			t := hits[j].term
			seen[t]++
			if seen[t] == 1 {
				covered++
			}
			if covered == len(keys) {
				results = append(results, BuildResultEntry(occurrencesOf(hits[i:j+1]), fullText, ResultMeta{
					WindowWords: size,
				}))
				break
			}
		}

		if opts.Mode == domain.MatchModeAny && j > i {
			group := hits[i:j]
			results = append(results, BuildResultEntry(occurrencesOf(group), fullText, ResultMeta{
				WindowWords: group[len(group)-1].occ.WordIndex - group[0].occ.WordIndex + 1,
			}))
		}

		if len(results) >= MaxResults {
			break
		}
	}

	return DedupeResults(results), nil
}

// distinctTerms normalises terms and collects the distinct non-empty keys.
// keyOf maps each input term to its key index, or -1 for an empty term.
func distinctTerms(terms []string, caseSensitive bool) (keys []string, keyOf []int) {
	index := make(map[string]int, len(terms))
	keyOf = make([]int, len(terms))
	for i, t := range terms {
		k := normalizeTerm(t, caseSensitive)
		if k == "" {
			keyOf[i] = -1
			continue
		}
		n, ok := index[k]
		if !ok {
			n = len(keys)
			index[k] = n
			keys = append(keys, k)
		}
		keyOf[i] = n
	}
	return keys, keyOf
}

// findOccurrences tests every token against every input term. Whole-word
// mode requires equality, otherwise the token only needs to contain the
// term. Repeated terms each record their own occurrence under the spelling
// the user typed; the key index only feeds the coverage count.
func findOccurrences(tokens []domain.WordToken, terms []string, keyOf []int, opts domain.SearchOptions) []hit {
	var hits []hit
	for _, tok := range tokens {
		word := normalizeTerm(tok.Word, opts.CaseSensitive)
		for i, term := range terms {
			if keyOf[i] < 0 {
				continue
			}
			key := normalizeTerm(term, opts.CaseSensitive)
			if opts.WholeWord && word != key {
				continue
			}
			if !opts.WholeWord && !strings.Contains(word, key) {
				continue
			}
			hits = append(hits, hit{
				occ: domain.Occurrence{
					Term:      term,
					WordIndex: tok.WordIndex,
					Start:     tok.Start,
					End:       tok.End,
				},
				term: keyOf[i],
			})
		}
	}
	return hits
}

func normalizeTerm(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func occurrencesOf(hits []hit) []domain.Occurrence {
	out := make([]domain.Occurrence, len(hits))
	for i, h := range hits {
		out[i] = h.occ
	}
	return out
}
