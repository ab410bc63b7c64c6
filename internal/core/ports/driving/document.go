package driving

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// DocumentService loads and tracks document snapshots.
type DocumentService interface {
	// Load reads a file, or stdin when path is "-", and normalises it.
	Load(ctx context.Context, path string) (*domain.Document, error)

	// Put stores content under uri, replacing any earlier snapshot of it.
	Put(ctx context.Context, uri, content string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns every loaded document.
	List(ctx context.Context) ([]domain.Document, error)
}
