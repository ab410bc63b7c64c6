package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings_Valid(t *testing.T) {
	s := DefaultAppSettings()

	assert.NoError(t, s.Validate())
	assert.True(t, s.Links.Enabled)
	assert.True(t, s.History.Enabled)
	assert.Equal(t, DefaultSearchOptions(), s.Search.Defaults)
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"bad mode", func(s *AppSettings) { s.Search.Defaults.Mode = "nope" }},
		{"range too small", func(s *AppSettings) { s.Search.Defaults.Range = 2 }},
		{"range too large", func(s *AppSettings) { s.Search.Defaults.Range = 1001 }},
		{"zero timeout", func(s *AppSettings) { s.Links.Timeout = 0 }},
		{"zero rate", func(s *AppSettings) { s.Links.RequestsPerSecond = 0 }},
		{"zero concurrency", func(s *AppSettings) { s.Links.Concurrency = 0 }},
		{"zero history", func(s *AppSettings) { s.History.Limit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}
