package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestBuildServices(t *testing.T) {
	dir := t.TempDir()

	s, err := buildServices(cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	assert.NotNil(t, s.Search)
	assert.NotNil(t, s.Document)
	assert.NotNil(t, s.Find)
	assert.NotNil(t, s.Links)
	assert.NotNil(t, s.History)
	assert.NotNil(t, s.Settings)
	require.NotNil(t, s.Metrics)

	ctx := context.Background()
	doc, err := s.Document.Put(ctx, "inline:test", "alpha foo beta bar")
	require.NoError(t, err)
	report, err := s.Search.Search(ctx, doc, domain.SearchRequest{
		Query:   "foo, bar",
		Options: domain.DefaultSearchOptions(),
	})
	require.NoError(t, err)
	assert.Len(t, report.Results, 1)

	entries, err := s.History.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo, bar", entries[0].Query)

	assert.FileExists(t, filepath.Join(dir, "data", "history.db"))

	rec := httptest.NewRecorder()
	s.Metrics.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "proxsearch_searches_total")
}

func TestBuildServices_HistoryDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[history]\nenabled = false\n"), 0o600))

	s, err := buildServices(cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	entries, err := s.History.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoFileExists(t, filepath.Join(dir, "data", "history.db"))
}

func TestBuildServices_LinksDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[links]\nenabled = false\n"), 0o600))

	s, err := buildServices(cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	report, err := s.Links.Validate(context.Background(), "see https://example.invalid/x")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pending)
}
