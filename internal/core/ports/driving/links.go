package driving

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// LinkService validates the URLs found in a document.
type LinkService interface {
	// Validate extracts http(s) links from text and checks each distinct URL.
	Validate(ctx context.Context, text string) (*domain.LinkReport, error)
}
