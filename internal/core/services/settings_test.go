package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.mode", "any")
	_ = store.Set("search.range", 40)
	_ = store.Set("search.whole_word", false)
	_ = store.Set("links.timeout_ms", 750)
	_ = store.Set("links.requests_per_second", int64(3))
	_ = store.Set("history.enabled", false)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.MatchModeAny, settings.Search.Defaults.Mode)
	assert.Equal(t, 40, settings.Search.Defaults.Range)
	assert.False(t, settings.Search.Defaults.WholeWord)
	assert.Equal(t, 750*time.Millisecond, settings.Links.Timeout)
	assert.InDelta(t, 3.0, settings.Links.RequestsPerSecond, 0.001)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.mode", "sometimes")
	_ = store.Set("search.range", 5000)
	_ = store.Set("links.requests_per_second", "fast")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.MatchModeAll, settings.Search.Defaults.Mode)
	assert.Equal(t, domain.MaxRange, settings.Search.Defaults.Range)
	assert.InDelta(t, 8.0, settings.Links.RequestsPerSecond, 0.001)
}

func TestSettingsService_SaveAndReload(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Search.Defaults.Regex = true
	settings.Search.Defaults.Range = 33
	settings.Links.Concurrency = 9
	settings.Server.Addr = ":9999"
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	assert.Equal(t, 33, store.GetInt("search.range"))
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Links.Concurrency = 0

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_SetSearchDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	opts := domain.DefaultSearchOptions()
	opts.Mode = domain.MatchModeAny
	opts.Range = 2
	require.NoError(t, service.SetSearchDefaults(opts))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.MatchModeAny, settings.Search.Defaults.Mode)
	assert.Equal(t, domain.MinRange, settings.Search.Defaults.Range)

	opts.Mode = "bogus"
	assert.ErrorIs(t, service.SetSearchDefaults(opts), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key, value string
		check      func(t *testing.T, s *domain.AppSettings)
	}{
		{"search.mode", "any", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, domain.MatchModeAny, s.Search.Defaults.Mode)
		}},
		{"search.range", " 250 ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 250, s.Search.Defaults.Range)
		}},
		{"search.case_sensitive", "true", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Search.Defaults.CaseSensitive)
		}},
		{"links.requests_per_second", "1.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 1.5, s.Links.RequestsPerSecond, 0.001)
		}},
		{"links.timeout_ms", "2000", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 2*time.Second, s.Links.Timeout)
		}},
		{"server.addr", "0.0.0.0:80", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "0.0.0.0:80", s.Server.Addr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, service.Set(tt.key, tt.value))
			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}

	t.Run("rejects bad input", func(t *testing.T) {
		assert.ErrorIs(t, service.Set("search.colour", "red"), domain.ErrInvalidInput)
		assert.ErrorIs(t, service.Set("search.range", "lots"), domain.ErrInvalidInput)
		assert.ErrorIs(t, service.Set("search.range", "5"), domain.ErrInvalidInput)
		assert.ErrorIs(t, service.Set("search.mode", "some"), domain.ErrInvalidInput)
		assert.ErrorIs(t, service.Set("history.limit", "0"), domain.ErrInvalidInput)
	})
}

func TestSettingsService_ResetAndValidate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("search.mode", "any"))

	require.NoError(t, service.Reset())
	require.NoError(t, service.Validate())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Len(t, service.Keys(), 13)
	assert.Contains(t, service.Keys(), "search.selection_only")
}
