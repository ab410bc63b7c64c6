// Package cli implements the proxsearch command line interface.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Services is everything the commands need. Nil services disable the
// commands that depend on them.
type Services struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Find     driving.FindService
	Links    driving.LinkService
	History  driving.HistoryService
	Settings driving.SettingsService

	// Metrics serves the Prometheus exposition for `serve`.
	Metrics http.Handler

	// Close releases stores opened by the bootstrap function.
	Close func() error
}

// Bootstrap builds the services once global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	searchService   driving.SearchService
	documentService driving.DocumentService
	findService     driving.FindService
	linkService     driving.LinkService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	metricsHandler  http.Handler
	closeServices   func() error

	bootstrap  Bootstrap
	configured bool
)

var (
	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "proxsearch",
	Short: "Proximity search for text and HTML documents",
	Long: `proxsearch finds places in a document where search terms occur close
together, or where a regular expression matches, and reports each hit with
its line, a highlighted snippet and the size of the word window.

Terms are separated by commas or newlines. In "all" mode a result is the
smallest window of words containing every term; in "any" mode every window
starting at a term occurrence is reported.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.proxsearch)")
}

// SetServices installs the services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	documentService = s.Document
	findService = s.Find
	linkService = s.Links
	historyService = s.History
	settingsService = s.Settings
	metricsHandler = s.Metrics
	closeServices = s.Close
	configured = true
}

// SetBootstrap registers the function that builds services from global flags.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	if configured || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(Options{ConfigDir: flagConfigDir, Verbose: flagVerbose})
	if err != nil {
		return err
	}
	SetServices(s)
	logger.Debug("services ready for %s", cmd.CommandPath())
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	fn := closeServices
	closeServices = nil
	return fn()
}

var (
	errSearchUnavailable   = errors.New("search service not configured")
	errDocumentUnavailable = errors.New("document service not configured")
	errFindUnavailable     = errors.New("find service not configured")
	errLinksUnavailable    = errors.New("link service not configured")
	errHistoryUnavailable  = errors.New("history service not configured")
	errSettingsUnavailable = errors.New("settings service not configured")
)
