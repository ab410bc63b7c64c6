package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

var (
	serveAddr    string
	serveNoCORS  bool
	serveGinMode bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON search API",
	Long: `Start an HTTP server exposing advanced search over JSON.

Routes:
  POST /api/search   search inline text
  POST /api/find     find (and optionally replace) literal text
  POST /api/links    validate the links in inline text
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

The listen address defaults to server.addr in the settings file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveNoCORS, "no-cors", false, "disable cross-origin requests")
	serveCmd.Flags().BoolVar(&serveGinMode, "debug-routes", false, "log gin route registration")
	rootCmd.AddCommand(serveCmd)
}

// serveListenAddr resolves the address: the flag wins, then settings.
func serveListenAddr(cmd *cobra.Command) string {
	if cmd.Flags().Changed("addr") && serveAddr != "" {
		return serveAddr
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Server.Addr != "" {
			return s.Server.Addr
		}
	}
	return domain.DefaultServerAddr
}

// newAPIServer builds the HTTP API from the configured services.
func newAPIServer() (*httpapi.Server, error) {
	cfg := httpapi.DefaultConfig()
	cfg.EnableCORS = !serveNoCORS
	cfg.Debug = serveGinMode
	cfg.Metrics = metricsHandler
	cfg.Version = version

	return httpapi.NewServer(&httpapi.Ports{
		Search:   searchService,
		Document: documentService,
		Find:     findService,
		Links:    linkService,
	}, cfg)
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := newAPIServer()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	addr := serveListenAddr(cmd)
	fmt.Fprintf(out(cmd), "Serving proxsearch API on http://%s\n", addr)
	return server.Run(ctx, addr)
}
