package mcp

import (
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs advanced searches.
	Search driving.SearchService

	// Document loads files and stores inline text.
	Document driving.DocumentService

	// Find backs the find_text tool. Optional.
	Find driving.FindService

	// Links backs the validate_links tool. Optional.
	Links driving.LinkService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
