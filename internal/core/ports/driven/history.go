package driven

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// HistoryStore persists search history. Only query metadata is stored.
type HistoryStore interface {
	// Append records a search.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
