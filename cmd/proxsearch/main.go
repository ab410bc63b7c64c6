// Command proxsearch runs proximity and regex searches over text and HTML
// documents from the command line, a terminal UI, an MCP server or an HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/proxsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/proxsearch/internal/adapters/driven/links"
	"github.com/custodia-labs/proxsearch/internal/adapters/driven/metrics"
	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/proxsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/services"
	"github.com/custodia-labs/proxsearch/internal/logger"
	"github.com/custodia-labs/proxsearch/internal/normalisers"
	"github.com/custodia-labs/proxsearch/internal/normalisers/html"
	"github.com/custodia-labs/proxsearch/internal/normalisers/plaintext"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(buildServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the driven adapters into the core services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Settings are invalid, using defaults: %v", err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	var (
		history driven.HistoryStore
		closers []func() error
	)
	if settings.History.Enabled {
		store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		history = store.HistoryStore()
		closers = append(closers, store.Close)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewObserver(registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	var checker driven.LinkChecker
	if settings.Links.Enabled {
		cfg := links.DefaultConfig()
		cfg.Timeout = settings.Links.Timeout
		cfg.RequestsPerSecond = settings.Links.RequestsPerSecond
		checker = links.NewChecker(nil, cfg)
	}

	norm := normalisers.NewRegistry(plaintext.New(), html.New())

	return &cli.Services{
		Search:   services.NewSearchService(history, observer),
		Document: services.NewDocumentService(memory.NewDocumentStore(), norm),
		Find:     services.NewFindService(),
		Links:    services.NewLinkService(checker, settings.Links.Concurrency),
		History:  services.NewHistoryService(history, settings.History.Limit),
		Settings: settingsService,
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Close: func() error {
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}, nil
}
