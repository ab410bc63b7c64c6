// Package httpapi serves the search kernel over a JSON HTTP API built on gin.
//
// Routes:
//
//	POST /api/search   advanced proximity or regex search
//	POST /api/find     literal find with optional replace preview
//	POST /api/links    link validation
//	GET  /healthz      liveness
//	GET  /metrics      Prometheus exposition, when configured
//
// Documents are sent inline; the server never reads or writes local files.
package httpapi

import "errors"

var (
	// ErrMissingSearchService indicates the search service was not provided.
	ErrMissingSearchService = errors.New("httpapi: search service is required")

	// ErrMissingDocumentService indicates the document service was not provided.
	ErrMissingDocumentService = errors.New("httpapi: document service is required")
)
