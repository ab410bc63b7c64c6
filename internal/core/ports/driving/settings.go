package driving

import "github.com/custodia-labs/proxsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetSearchDefaults updates the options new searches start with.
	SetSearchDefaults(opts domain.SearchOptions) error

	// Set parses value for a single dotted key, validates the result and
	// persists it. Unknown keys return domain.ErrInvalidInput.
	Set(key, value string) error

	// Reset restores every setting to its default.
	Reset() error

	// Keys lists the settable keys.
	Keys() []string

	// Validate checks that the stored settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
