package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, doc *domain.Document, req domain.SearchRequest) (*domain.SearchReport, error)
	Requests   []domain.SearchRequest
}

func (m *MockSearchService) Search(
	ctx context.Context, doc *domain.Document, req domain.SearchRequest,
) (*domain.SearchReport, error) {
	m.Requests = append(m.Requests, req)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, doc, req)
	}
	return &domain.SearchReport{Query: req.Query, Options: req.Options}, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	Saved    []domain.SearchOptions
}

func newMockSettings() *MockSettingsService {
	return &MockSettingsService{Settings: domain.DefaultAppSettings()}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) SetSearchDefaults(opts domain.SearchOptions) error {
	m.Saved = append(m.Saved, opts)
	m.Settings.Search.Defaults = opts
	return nil
}

func (m *MockSettingsService) Set(string, string) error { return nil }

func (m *MockSettingsService) Reset() error {
	m.Settings = domain.DefaultAppSettings()
	return nil
}

func (m *MockSettingsService) Keys() []string { return nil }

func (m *MockSettingsService) Validate() error { return nil }

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var (
	_ driving.SearchService   = (*MockSearchService)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	settings := newMockSettings()

	ports := NewPorts(search, settings)

	require.NotNil(t, ports)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, settings, ports.Settings)
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := NewPorts(&MockSearchService{}, newMockSettings())

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_SettingsOptional(t *testing.T) {
	ports := NewPorts(&MockSearchService{}, nil)

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingSearch(t *testing.T) {
	ports := NewPorts(nil, newMockSettings())

	assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
}

func TestPorts_Validate_Nil(t *testing.T) {
	var ports *Ports

	assert.ErrorIs(t, ports.Validate(), ErrInvalidPorts)
}
