package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/services"
	"github.com/custodia-labs/proxsearch/internal/normalisers"
	"github.com/custodia-labs/proxsearch/internal/normalisers/html"
	"github.com/custodia-labs/proxsearch/internal/normalisers/plaintext"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubLinkChecker answers every URL with a fixed status.
type stubLinkChecker struct {
	status domain.LinkStatus
}

func (s *stubLinkChecker) Check(_ context.Context, url string) domain.LinkCheck {
	return domain.LinkCheck{URL: url, Status: s.status, Code: 200}
}

func testPorts() *Ports {
	registry := normalisers.NewRegistry(plaintext.New(), html.New())
	return &Ports{
		Search:   services.NewSearchService(nil, nil),
		Document: services.NewDocumentService(memory.NewDocumentStore(), registry),
		Find:     services.NewFindService(),
		Links:    services.NewLinkService(&stubLinkChecker{status: domain.LinkStatusValid}, 2),
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s, err := NewServer(testPorts(), cfg)
	require.NoError(t, err)
	return s
}

// envelope mirrors APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Kind    string          `json:"kind"`
}

func postJSON(t *testing.T, s *Server, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestNewServer_RequiresPorts(t *testing.T) {
	_, err := NewServer(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewServer(&Ports{Search: services.NewSearchService(nil, nil)}, DefaultConfig())
	assert.ErrorIs(t, err, ErrMissingDocumentService)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.EnableCORS)
	assert.Equal(t, int64(32<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "dev", cfg.Version)
	assert.Positive(t, cfg.ShutdownTimeout)
}

func TestHealth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = "1.2.3"
	s := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.2.3", health.Version)
	assert.NotEmpty(t, health.Uptime)
}

func TestMetricsRoute(t *testing.T) {
	t.Run("absent without handler", func(t *testing.T) {
		s := newTestServer(t, DefaultConfig())
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("served when configured", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Metrics = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("proxsearch_searches_total 1\n"))
		})
		s := newTestServer(t, cfg)

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "proxsearch_searches_total")
	})
}

func TestRequireJSON(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString("query=foo"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "application/json")
}

func TestRequireJSON_AcceptsCharset(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		bytes.NewBufferString(`{"text":"foo bar","query":"foo"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimitBody(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 64
	s := newTestServer(t, cfg)

	rec, env := postJSON(t, s, "/api/search", SearchRequest{
		Text:  string(bytes.Repeat([]byte("foo "), 64)),
		Query: "foo",
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, env.Success)
}

func TestCORS(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s := newTestServer(t, DefaultConfig())
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://example.test")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EnableCORS = false
		s := newTestServer(t, cfg)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "http://example.test")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
