// Package links checks URLs over HTTP for the link validation service.
package links

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// Verify interface compliance.
var _ driven.LinkChecker = (*Checker)(nil)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 10 * time.Minute
	userAgent        = "proxsearch-linkcheck/1"
)

// Config configures a Checker. Zero values fall back to DefaultConfig.
type Config struct {
	// Timeout bounds a single request.
	Timeout time.Duration
	// RequestsPerSecond limits outgoing requests. Zero or less disables limiting.
	RequestsPerSecond float64
	// CacheSize is the number of URLs whose status is remembered.
	CacheSize int
	// CacheTTL is how long a remembered status stays fresh.
	CacheTTL time.Duration
}

// DefaultConfig mirrors the default link settings.
func DefaultConfig() Config {
	d := domain.DefaultAppSettings().Links
	return Config{
		Timeout:           d.Timeout,
		RequestsPerSecond: d.RequestsPerSecond,
		CacheSize:         defaultCacheSize,
		CacheTTL:          defaultCacheTTL,
	}
}

// Checker issues HEAD requests, falling back to GET when a server refuses HEAD.
type Checker struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *expirable.LRU[string, domain.LinkCheck]
}

// NewChecker creates a checker. A nil client uses a fresh http.Client. The
// caller's client is copied so that cfg.Timeout does not leak back into it.
func NewChecker(client *http.Client, cfg Config) *Checker {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}

	var hc http.Client
	if client != nil {
		hc = *client
	}
	hc.Timeout = cfg.Timeout

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Checker{
		client:  &hc,
		limiter: limiter,
		cache:   expirable.NewLRU[string, domain.LinkCheck](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Check requests url. Definitive answers (valid or invalid) are cached;
// warnings are retried on the next call.
func (c *Checker) Check(ctx context.Context, url string) domain.LinkCheck {
	if hit, ok := c.cache.Get(url); ok {
		return hit
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.LinkCheck{URL: url, Status: domain.LinkStatusPending}
		}
	}

	start := time.Now()
	code, err := c.do(ctx, http.MethodHead, url)
	if err == nil && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		code, err = c.do(ctx, http.MethodGet, url)
	}
	check := domain.LinkCheck{URL: url, Latency: time.Since(start), Code: code}

	switch {
	case err != nil:
		logger.Debug("link %s: %v", url, err)
		check.Status = domain.LinkStatusWarn
		return check
	case code >= 200 && code < 400:
		check.Status = domain.LinkStatusValid
	default:
		check.Status = domain.LinkStatusInvalid
	}

	c.cache.Add(url, check)
	return check
}

func (c *Checker) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
