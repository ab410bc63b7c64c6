package driven

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// Normaliser turns raw content into a Document. Content is kept verbatim;
// normalisers only derive metadata such as the title and filename.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	Priority() int

	// Normalise builds a document from raw content.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
