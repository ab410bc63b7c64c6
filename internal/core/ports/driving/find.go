package driving

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// FindService is the simple find bar: literal, case-insensitive matching
// with a current match and replace support.
type FindService interface {
	// FindAll locates every occurrence of query. The first match, if any,
	// is current.
	FindAll(ctx context.Context, text, query string) (*domain.FindReport, error)

	// Navigate moves the current match by step, wrapping at either end.
	Navigate(report *domain.FindReport, step int) *domain.FindReport

	// ReplaceCurrent replaces the current match of report in text.
	ReplaceCurrent(ctx context.Context, text string, report *domain.FindReport, replacement string) (*domain.ReplaceResult, error)

	// ReplaceAll replaces every occurrence of query in text.
	ReplaceAll(ctx context.Context, text, query, replacement string) (*domain.ReplaceResult, error)
}
