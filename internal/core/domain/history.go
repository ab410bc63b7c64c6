package domain

import "time"

// HistoryEntry records the query side of one search. Results are never stored.
type HistoryEntry struct {
	ID          string        `json:"id" yaml:"id"`
	Query       string        `json:"query" yaml:"query"`
	Terms       []string      `json:"terms" yaml:"terms"`
	Options     SearchOptions `json:"options" yaml:"options"`
	DocumentURI string        `json:"document_uri" yaml:"document_uri"`
	ResultCount int           `json:"result_count" yaml:"result_count"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
}
