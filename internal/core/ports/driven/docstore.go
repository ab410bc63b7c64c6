package driven

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// DocumentStore holds loaded document snapshots.
type DocumentStore interface {
	// Save stores or replaces a document.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByURI retrieves the latest snapshot of uri.
	GetByURI(ctx context.Context, uri string) (*domain.Document, error)

	// List returns all documents ordered by load time.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, id string) error
}
