// Package proximity implements the advanced search kernel: word
// tokenisation, regex and multi-term proximity matching, snippet building
// and result deduplication.
//
// Every function in this package is pure. It performs no I/O, holds no
// state between calls and is safe to call concurrently. Searches are
// bounded by MaxResults and MaxRegexIterations, so callers need no
// cancellation beyond discarding stale results.
//
// The data flow is one-way:
//
//	text + options -> tokens -> occurrences -> windows -> result entries
package proximity

// Search caps.
const (
	// MaxResults is the maximum number of result entries a search emits.
	MaxResults = 75

	// MaxRegexIterations bounds the regex scan loop.
	MaxRegexIterations = 5000

	// MaxFindMatches bounds the simple find bar.
	MaxFindMatches = 999
)

// Snippet context, in bytes, around a result span.
const (
	SnippetBefore = 90
	SnippetAfter  = 140
)
