package domain

import (
	"strconv"
	"time"
)

// Document is a text buffer snapshot loaded into the workspace.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// URI is the original location (file path, "stdin", etc).
	URI string `json:"uri"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Filename is a safe file name derived from the title.
	Filename string `json:"filename"`

	// Content is the raw document text. Searches run over it unmodified.
	Content string `json:"-"`

	// MIMEType is the detected content type.
	MIMEType string `json:"mime_type"`

	// LoadedAt is when the snapshot was taken.
	LoadedAt time.Time `json:"loaded_at"`
}

// Span is an absolute [Start, End) range in a document.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// FindReport holds the matches of a simple find query.
type FindReport struct {
	Query   string `json:"query" yaml:"query"`
	Matches []Span `json:"matches" yaml:"matches"`
	Current int    `json:"current" yaml:"current"`
}

// Label returns the "N of M" counter shown next to the find input.
func (r FindReport) Label() string {
	if len(r.Matches) == 0 {
		return "No results"
	}
	return strconv.Itoa(r.Current+1) + " of " + strconv.Itoa(len(r.Matches))
}

// ReplaceResult describes a replace operation.
type ReplaceResult struct {
	Text  string `json:"text" yaml:"-"`
	Count int    `json:"count" yaml:"count"`
	Diff  string `json:"diff" yaml:"diff"`
}

// RawDocument is document content as read from disk or stdin, before
// normalisation.
type RawDocument struct {
	URI      string
	MIMEType string
	Content  []byte
}
