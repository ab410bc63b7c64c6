package driven

import (
	"context"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// LinkChecker reports the reachability of a single URL.
type LinkChecker interface {
	// Check requests url. Transport failures are reported as
	// domain.LinkStatusWarn rather than returned as errors.
	Check(ctx context.Context, url string) domain.LinkCheck
}
