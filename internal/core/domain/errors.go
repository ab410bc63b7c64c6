package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Search Errors.

	// ErrInvalidPattern indicates a regex pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrEmptyInput indicates no terms were parsed or the pattern was empty.
	// No search is performed.
	ErrEmptyInput = errors.New("empty search input")

	// ErrInvalidScope indicates a selection or scope that does not fit the document.
	ErrInvalidScope = errors.New("invalid search scope")

	// ErrSearchFailed indicates an unexpected failure during a search.
	// No partial results accompany it.
	ErrSearchFailed = errors.New("search failed")

	// ErrLinkCheckUnavailable indicates link validation is disabled or not configured.
	ErrLinkCheckUnavailable = errors.New("link checking unavailable")
)

// SearchErrorKind classifies search failures for presentation.
type SearchErrorKind int

// Search error kinds.
const (
	// SearchErrorNone means no error occurred.
	SearchErrorNone SearchErrorKind = iota
	// SearchErrorInvalidPattern is an uncompilable regex.
	SearchErrorInvalidPattern
	// SearchErrorEmptyInput is an empty pattern or term list.
	SearchErrorEmptyInput
	// SearchErrorUnexpected is any other failure.
	SearchErrorUnexpected
)

// ClassifySearchError maps an error returned by a search to its kind.
func ClassifySearchError(err error) SearchErrorKind {
	switch {
	case err == nil:
		return SearchErrorNone
	case errors.Is(err, ErrInvalidPattern):
		return SearchErrorInvalidPattern
	case errors.Is(err, ErrEmptyInput):
		return SearchErrorEmptyInput
	default:
		return SearchErrorUnexpected
	}
}

// String returns the kind name.
func (k SearchErrorKind) String() string {
	switch k {
	case SearchErrorNone:
		return "none"
	case SearchErrorInvalidPattern:
		return "invalid_pattern"
	case SearchErrorEmptyInput:
		return "empty_input"
	case SearchErrorUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// UserMessage returns the message shown to the user for this kind.
// regex selects between the two empty-input wordings.
func (k SearchErrorKind) UserMessage(regex bool) string {
	switch k {
	case SearchErrorNone:
		return ""
	case SearchErrorInvalidPattern:
		return "Invalid regex pattern"
	case SearchErrorEmptyInput:
		if regex {
			return "Add a regex pattern"
		}
		return "Add at least one search term"
	default:
		return "Advanced search failed"
	}
}
