package proximity

import "github.com/custodia-labs/proxsearch/internal/core/domain"

type spanKey struct {
	start, end int
}

// DedupeResults drops nil entries and every entry whose (Start, End) span
// was already seen. The first entry for each span wins and order is kept.
func DedupeResults(results []*domain.ResultEntry) []domain.ResultEntry {
	seen := make(map[spanKey]struct{}, len(results))
	out := make([]domain.ResultEntry, 0, len(results))

	for _, r := range results {
		if r == nil {
			continue
		}
		k := spanKey{r.Start, r.End}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, *r)
	}
	return out
}
