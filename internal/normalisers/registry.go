package normalisers

import (
	"context"
	"sort"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Normaliser = (*Registry)(nil)

// Registry dispatches to the best normaliser for a document's MIME type.
type Registry struct {
	normalisers []driven.Normaliser
	fallback    driven.Normaliser
}

// NewRegistry creates a registry that uses fallback when no registered
// normaliser supports a MIME type.
func NewRegistry(fallback driven.Normaliser, normalisers ...driven.Normaliser) *Registry {
	r := &Registry{fallback: fallback}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser.
func (r *Registry) Register(n driven.Normaliser) {
	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types with a dedicated normaliser.
func (r *Registry) SupportedMIMETypes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range r.normalisers {
		for _, mt := range n.SupportedMIMETypes() {
			if _, ok := seen[mt]; !ok {
				seen[mt] = struct{}{}
				out = append(out, mt)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Priority returns zero; a registry is never itself registered.
func (r *Registry) Priority() int {
	return 0
}

// Normalise uses the highest-priority normaliser supporting raw.MIMEType.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	for _, n := range r.normalisers {
		for _, mt := range n.SupportedMIMETypes() {
			if mt == raw.MIMEType {
				return n.Normalise(ctx, raw)
			}
		}
	}
	if r.fallback == nil {
		return nil, domain.ErrInvalidInput
	}
	return r.fallback.Normalise(ctx, raw)
}
