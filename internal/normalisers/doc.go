// Package normalisers turns raw document bytes into domain documents.
// Normalisers never alter the content; they derive the title, a safe
// filename and the MIME type.
//
// Registry picks the highest-priority normaliser for a MIME type and
// falls back to plain text.
package normalisers
