package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoDocument indicates that there is no document to search.
	ErrNoDocument = errors.New("no document loaded")
)
