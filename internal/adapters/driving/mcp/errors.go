// Package mcp provides an MCP (Model Context Protocol) server adapter for proxsearch.
// It lets AI assistants run proximity searches and find/replace over local text.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrNoInput is returned when a tool call names neither text nor a path.
var ErrNoInput = errors.New("mcp: one of text or path is required")
