package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/services"
	"github.com/custodia-labs/proxsearch/internal/normalisers"
	"github.com/custodia-labs/proxsearch/internal/normalisers/html"
	"github.com/custodia-labs/proxsearch/internal/normalisers/plaintext"
)

const sampleText = "alpha foo\nbeta\ngamma bar delta\nfoo <b>"

// stubLinkChecker answers every URL with a fixed status.
type stubLinkChecker struct {
	status domain.LinkStatus
}

func (s *stubLinkChecker) Check(_ context.Context, url string) domain.LinkCheck {
	return domain.LinkCheck{URL: url, Status: s.status, Code: 200}
}

// setupTestServices installs real services over in-memory stores and
// returns a cleanup function that restores the package state.
func setupTestServices() func() {
	registry := normalisers.NewRegistry(plaintext.New(), html.New())
	history := memory.NewHistoryStore(100)

	resetFlags(rootCmd)
	SetServices(&Services{
		Search:   services.NewSearchService(history, nil),
		Document: services.NewDocumentService(memory.NewDocumentStore(), registry),
		Find:     services.NewFindService(),
		Links:    services.NewLinkService(&stubLinkChecker{status: domain.LinkStatusValid}, 2),
		History:  services.NewHistoryService(history, 20),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
	})

	return func() {
		resetFlags(rootCmd)
		SetServices(nil)
		configured = false
	}
}

// resetFlags returns every flag of cmd and its children to its default,
// so one test's flags do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeSample writes content to a temporary file and returns its path.
func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
