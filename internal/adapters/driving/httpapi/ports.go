package httpapi

import (
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the HTTP API.
type Ports struct {
	// Search runs advanced searches. Required.
	Search driving.SearchService

	// Document snapshots request bodies. Required.
	Document driving.DocumentService

	// Find backs /api/find. Optional; the route answers 503 without it.
	Find driving.FindService

	// Links backs /api/links. Optional; the route answers 503 without it.
	Links driving.LinkService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
