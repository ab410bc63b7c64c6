// Package domain defines the core business entities for proxsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchScope: The slice of a document being searched
//   - WordToken: A whitespace-delimited word with absolute offsets
//   - Occurrence: One token matching one search term
//   - ResultEntry: A ranked, snippet-annotated match window
//   - Document: A loaded text buffer snapshot
//
// # Offsets
//
// Every offset in this package is a byte offset into the UTF-8 document
// text. Start offsets are inclusive, end offsets are exclusive.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
