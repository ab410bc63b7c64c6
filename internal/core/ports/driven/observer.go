package driven

import (
	"time"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// SearchObserver receives a record of every completed search.
type SearchObserver interface {
	// ObserveSearch is called once per search, successful or not.
	ObserveSearch(kind string, elapsed time.Duration, results int, outcome domain.SearchErrorKind)
}
