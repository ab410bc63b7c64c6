package domain

import (
	"fmt"
	"time"
)

// DefaultServerAddr is where `proxsearch serve` listens unless configured.
const DefaultServerAddr = "127.0.0.1:8765"

// SearchSettings holds the persisted default search options.
type SearchSettings struct {
	// Defaults are the options a new search starts with.
	Defaults SearchOptions
}

// LinkSettings holds link validation configuration.
type LinkSettings struct {
	// Enabled turns link validation on.
	Enabled bool

	// Timeout bounds a single link request.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound requests.
	RequestsPerSecond float64

	// Concurrency bounds in-flight requests.
	Concurrency int
}

// HistorySettings controls query history.
type HistorySettings struct {
	// Enabled records each search's query and options.
	Enabled bool

	// Limit is the number of entries shown by default.
	Limit int
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Search holds search behaviour settings.
	Search SearchSettings

	// Links holds link validation settings.
	Links LinkSettings

	// History holds query history settings.
	History HistorySettings

	// Server holds HTTP API settings.
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Defaults: DefaultSearchOptions(),
		},
		Links: LinkSettings{
			Enabled:           true,
			Timeout:           5 * time.Second,
			RequestsPerSecond: 8,
			Concurrency:       4,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   20,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}

// Validate checks that settings are usable.
func (s AppSettings) Validate() error {
	d := s.Search.Defaults
	if !d.Mode.IsValid() {
		return fmt.Errorf("%w: search mode %q", ErrInvalidInput, d.Mode)
	}
	if d.Range < MinRange || d.Range > MaxRange {
		return fmt.Errorf("%w: search range %d outside [%d, %d]", ErrInvalidInput, d.Range, MinRange, MaxRange)
	}
	if s.Links.Timeout <= 0 {
		return fmt.Errorf("%w: link timeout must be positive", ErrInvalidInput)
	}
	if s.Links.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: link rate must be positive", ErrInvalidInput)
	}
	if s.Links.Concurrency < 1 {
		return fmt.Errorf("%w: link concurrency must be at least 1", ErrInvalidInput)
	}
	if s.History.Limit < 1 {
		return fmt.Errorf("%w: history limit must be at least 1", ErrInvalidInput)
	}
	return nil
}
