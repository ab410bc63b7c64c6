package driving

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// SearchService runs advanced searches over a document snapshot.
type SearchService interface {
	// Search resolves the scope, runs the regex or multi-term engine and
	// returns the deduplicated results. Failed searches return no partial
	// results; the error classifies with domain.ClassifySearchError.
	Search(ctx context.Context, doc *domain.Document, req domain.SearchRequest) (*domain.SearchReport, error)
}
