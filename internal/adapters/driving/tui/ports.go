// Package tui provides an interactive terminal user interface for proxsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs advanced searches over the loaded document.
	Search driving.SearchService

	// Settings supplies and remembers the default search options.
	// Optional: without it the TUI starts from the built-in defaults.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, settings driving.SettingsService) *Ports {
	return &Ports{
		Search:   search,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
