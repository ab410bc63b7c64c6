package driving

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// HistoryService exposes recently run searches.
type HistoryService interface {
	// List returns up to limit entries, newest first. A limit of zero uses
	// the configured default.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
