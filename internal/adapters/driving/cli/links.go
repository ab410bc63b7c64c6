package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

var (
	linksJSON bool
	linksYAML bool
)

var linksCmd = &cobra.Command{
	Use:   "links <file>",
	Short: "Validate the http(s) links in a document",
	Long: `Extracts every http:// and https:// URL from a document and checks each
distinct URL with a HEAD request. Links that could not be verified (network
errors, timeouts, or link checking disabled in settings) count as pending.`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "output as JSON")
	linksCmd.Flags().BoolVar(&linksYAML, "yaml", false, "output as YAML")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, args []string) error {
	if linkService == nil {
		return errLinksUnavailable
	}
	if documentService == nil {
		return errDocumentUnavailable
	}
	format, err := pickFormat(linksJSON, linksYAML)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := documentService.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	report, err := linkService.Validate(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("link validation failed: %w", err)
	}

	if format != formatText {
		return writeStructured(out(cmd), format, report)
	}
	printLinks(out(cmd), doc.Content, report)
	return nil
}

func printLinks(w io.Writer, text string, report *domain.LinkReport) {
	pal := newPalette(w)

	if len(report.Links) == 0 {
		fmt.Fprintln(w, "No links found.")
		return
	}

	ix := textpos.NewLineIndex(text)
	for _, l := range report.Links {
		check := report.Checks[l.URL]
		fmt.Fprintf(w, "  %s %8s  %s%s\n",
			paintStatus(pal, check.Status),
			ix.Position(l.Start),
			l.URL,
			pal.paint(pal.muted, checkDetail(check)))
	}

	urls := make([]string, 0, len(report.Checks))
	for u := range report.Checks {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d links, %d unique: %s valid, %s invalid, %s pending\n",
		len(report.Links), len(urls),
		pal.paint(pal.good, fmt.Sprint(report.Valid)),
		pal.paint(pal.bad, fmt.Sprint(report.Invalid)),
		pal.paint(pal.warn, fmt.Sprint(report.Pending)))
}

func paintStatus(pal palette, s domain.LinkStatus) string {
	label := fmt.Sprintf("%-12s", s.Hover())
	switch s {
	case domain.LinkStatusValid:
		return pal.paint(pal.good, label)
	case domain.LinkStatusInvalid:
		return pal.paint(pal.bad, label)
	case domain.LinkStatusPending:
		return pal.paint(pal.muted, label)
	default:
		return pal.paint(pal.warn, label)
	}
}

func checkDetail(c domain.LinkCheck) string {
	if c.Code == 0 {
		return ""
	}
	return fmt.Sprintf("  (%d, %s)", c.Code, c.Latency.Round(time.Millisecond))
}
