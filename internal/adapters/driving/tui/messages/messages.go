// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// SearchRequested is a command to run an advanced search.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted carries a search report back to the model.
// Report is nil whenever Err is set.
type SearchCompleted struct {
	Report *domain.SearchReport
	Err    error
}

// OptionsChanged is sent after a toggle or range adjustment.
type OptionsChanged struct {
	Options domain.SearchOptions
}

// ResultSelected is sent when a search result is selected.
type ResultSelected struct {
	Index int
}

// DetailToggled is sent when the line detail pane opens or closes.
type DetailToggled struct {
	Open bool
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
