package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchRegex         = "search.regex"
	keySearchCaseSensitive = "search.case_sensitive"
	keySearchWholeWord     = "search.whole_word"
	keySearchRange         = "search.range"
	keySearchMode          = "search.mode"
	keySearchSelectionOnly = "search.selection_only"
	keyLinksEnabled        = "links.enabled"
	keyLinksTimeoutMS      = "links.timeout_ms"
	keyLinksRate           = "links.requests_per_second"
	keyLinksConcurrency    = "links.concurrency"
	keyHistoryEnabled      = "history.enabled"
	keyHistoryLimit        = "history.limit"
	keyServerAddr          = "server.addr"
)

type valueKind int

const (
	kindBool valueKind = iota
	kindInt
	kindFloat
	kindString
)

var settingKinds = map[string]valueKind{
	keySearchRegex:         kindBool,
	keySearchCaseSensitive: kindBool,
	keySearchWholeWord:     kindBool,
	keySearchRange:         kindInt,
	keySearchMode:          kindString,
	keySearchSelectionOnly: kindBool,
	keyLinksEnabled:        kindBool,
	keyLinksTimeoutMS:      kindInt,
	keyLinksRate:           kindFloat,
	keyLinksConcurrency:    kindInt,
	keyHistoryEnabled:      kindBool,
	keyHistoryLimit:        kindInt,
	keyServerAddr:          kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or malformed values
// fall back to defaults and the search range is clamped.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()
	opts := d.Search.Defaults

	return &domain.AppSettings{
		Search: domain.SearchSettings{
			Defaults: domain.SearchOptions{
				Regex:         s.getBool(keySearchRegex, opts.Regex),
				CaseSensitive: s.getBool(keySearchCaseSensitive, opts.CaseSensitive),
				WholeWord:     s.getBool(keySearchWholeWord, opts.WholeWord),
				Range:         domain.ClampRange(s.getInt(keySearchRange, opts.Range)),
				Mode:          s.getMatchMode(opts.Mode),
				SelectionOnly: s.getBool(keySearchSelectionOnly, opts.SelectionOnly),
			},
		},
		Links: domain.LinkSettings{
			Enabled:           s.getBool(keyLinksEnabled, d.Links.Enabled),
			Timeout:           time.Duration(s.getInt(keyLinksTimeoutMS, int(d.Links.Timeout/time.Millisecond))) * time.Millisecond,
			RequestsPerSecond: s.getFloat(keyLinksRate, d.Links.RequestsPerSecond),
			Concurrency:       s.getInt(keyLinksConcurrency, d.Links.Concurrency),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, d.History.Enabled),
			Limit:   s.getInt(keyHistoryLimit, d.History.Limit),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, d.Server.Addr),
		},
	}, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	opts := settings.Search.Defaults
	values := []struct {
		key   string
		value any
	}{
		{keySearchRegex, opts.Regex},
		{keySearchCaseSensitive, opts.CaseSensitive},
		{keySearchWholeWord, opts.WholeWord},
		{keySearchRange, opts.Range},
		{keySearchMode, opts.Mode.String()},
		{keySearchSelectionOnly, opts.SelectionOnly},
		{keyLinksEnabled, settings.Links.Enabled},
		{keyLinksTimeoutMS, int(settings.Links.Timeout / time.Millisecond)},
		{keyLinksRate, settings.Links.RequestsPerSecond},
		{keyLinksConcurrency, settings.Links.Concurrency},
		{keyHistoryEnabled, settings.History.Enabled},
		{keyHistoryLimit, settings.History.Limit},
		{keyServerAddr, settings.Server.Addr},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetSearchDefaults updates the options new searches start with. The range
// is clamped.
func (s *SettingsService) SetSearchDefaults(opts domain.SearchOptions) error {
	if !opts.Mode.IsValid() {
		return fmt.Errorf("%w: search mode %q", domain.ErrInvalidInput, opts.Mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	opts.Range = domain.ClampRange(opts.Range)
	settings.Search.Defaults = opts
	return s.Save(settings)
}

// Set parses value for key, validates the resulting settings and saves them.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseValue(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := apply(settings, key, parsed); err != nil {
		return err
	}
	return s.Save(settings)
}

// Reset restores every setting to its default.
func (s *SettingsService) Reset() error {
	d := domain.DefaultAppSettings()
	return s.Save(&d)
}

// Keys lists the settable keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	default:
		return value, nil
	}
}

func apply(settings *domain.AppSettings, key string, v any) error {
	opts := &settings.Search.Defaults
	switch key {
	case keySearchRegex:
		opts.Regex = v.(bool)
	case keySearchCaseSensitive:
		opts.CaseSensitive = v.(bool)
	case keySearchWholeWord:
		opts.WholeWord = v.(bool)
	case keySearchRange:
		opts.Range = v.(int)
	case keySearchMode:
		mode, err := domain.ParseMatchMode(v.(string))
		if err != nil {
			return err
		}
		opts.Mode = mode
	case keySearchSelectionOnly:
		opts.SelectionOnly = v.(bool)
	case keyLinksEnabled:
		settings.Links.Enabled = v.(bool)
	case keyLinksTimeoutMS:
		settings.Links.Timeout = time.Duration(v.(int)) * time.Millisecond
	case keyLinksRate:
		settings.Links.RequestsPerSecond = v.(float64)
	case keyLinksConcurrency:
		settings.Links.Concurrency = v.(int)
	case keyHistoryEnabled:
		settings.History.Enabled = v.(bool)
	case keyHistoryLimit:
		settings.History.Limit = v.(int)
	case keyServerAddr:
		settings.Server.Addr = v.(string)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getMatchMode(defaultVal domain.MatchMode) domain.MatchMode {
	mode := domain.MatchMode(s.configStore.GetString(keySearchMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
