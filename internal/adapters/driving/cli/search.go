package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

var (
	searchRegex         bool
	searchCaseSensitive bool
	searchWholeWord     bool
	searchRange         int
	searchMode          string
	searchSelection     string
	searchJSON          bool
	searchYAML          bool
	searchDetail        bool
	searchWatch         bool
)

var searchCmd = &cobra.Command{
	Use:   "search <file> <query>",
	Short: "Run a proximity or regex search over a document",
	Long: `Searches a document for places where terms occur close together.

The query is a comma or newline separated list of terms. In "all" mode each
result is the smallest window of at most --range words containing every term;
in "any" mode each term occurrence starts a window. With --regex the query is
an ECMAScript regular expression instead.

Use "-" as the file to read from stdin. Flags that are not given fall back to
the saved defaults (see "proxsearch settings").

Examples:
  proxsearch search notes.txt "error, timeout" --range 30
  proxsearch search page.html "h[1-6]" --regex --detail
  proxsearch search log.txt "panic" --mode any --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.BoolVarP(&searchRegex, "regex", "r", false, "treat the query as a regular expression")
	f.BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "match case exactly")
	f.BoolVarP(&searchWholeWord, "whole-word", "w", true, "terms must equal a whole word (use --whole-word=false for substrings)")
	f.IntVar(&searchRange, "range", domain.DefaultRange,
		fmt.Sprintf("maximum window size in words (%d-%d)", domain.MinRange, domain.MaxRange))
	f.StringVarP(&searchMode, "mode", "m", string(domain.MatchModeAll), "window mode: all or any")
	f.StringVar(&searchSelection, "selection", "", "search only the byte range start:end")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")
	f.BoolVar(&searchYAML, "yaml", false, "output results as YAML")
	f.BoolVarP(&searchDetail, "detail", "d", false, "show matched lines for every result")
	f.BoolVar(&searchWatch, "watch", false, "re-run the search whenever the file changes")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the structured form of a search.
type searchOutput struct {
	Document string               `json:"document" yaml:"document"`
	Report   *domain.SearchReport `json:"report" yaml:"report"`
	Results  []resultOutput       `json:"results" yaml:"results"`
}

type resultOutput struct {
	present.Summary `yaml:",inline"`
	Lines           []present.DetailLine `json:"lines,omitempty" yaml:"lines,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errSearchUnavailable
	}
	if documentService == nil {
		return errDocumentUnavailable
	}

	format, err := pickFormat(searchJSON, searchYAML)
	if err != nil {
		return err
	}
	opts, err := searchOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	sel, err := parseSelection(searchSelection)
	if err != nil {
		return err
	}
	if sel != nil {
		opts.SelectionOnly = true
	}

	path, query := args[0], args[1]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	req := domain.SearchRequest{Query: query, Options: opts, Selection: sel}

	if err := searchOnce(ctx, out(cmd), path, req, format); err != nil {
		return err
	}
	if !searchWatch {
		return nil
	}
	if path == "-" {
		return fmt.Errorf("--watch needs a file, not stdin")
	}

	w := out(cmd)
	return watchFile(ctx, path, defaultWatchDebounce, func() {
		fmt.Fprintln(w)
		if err := searchOnce(ctx, w, path, req, format); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

func searchOnce(ctx context.Context, w io.Writer, path string, req domain.SearchRequest, format outputFormat) error {
	doc, err := documentService.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	report, err := searchService.Search(ctx, doc, req)
	if err != nil {
		return fmt.Errorf("%s: %w", present.SearchMessage(err, req.Options.Regex), err)
	}

	p := present.New(doc.Content)
	summaries := p.Describe(report.Results)

	if format != formatText {
		results := make([]resultOutput, len(summaries))
		for i, s := range summaries {
			results[i] = resultOutput{Summary: s}
			if searchDetail {
				results[i].Lines = p.Detail(report.Results[i])
			}
		}
		return writeStructured(w, format, searchOutput{Document: doc.URI, Report: report, Results: results})
	}

	printSearchTable(w, doc, report, p, summaries)
	return nil
}

func printSearchTable(w io.Writer, doc *domain.Document, report *domain.SearchReport, p *present.Presenter, summaries []present.Summary) {
	pal := newPalette(w)

	title := doc.Title
	if title == "" {
		title = doc.URI
	}
	fmt.Fprintf(w, "%s  %s\n", pal.paint(pal.label, title), pal.paint(pal.muted, present.StatusLine(report)))

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	for i, s := range summaries {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  [%d] %s  %s  %s\n", i+1,
			pal.paint(pal.label, s.LineLabel),
			pal.paint(pal.muted, fmt.Sprintf("%d words", s.WindowWords)),
			pal.paint(pal.muted, s.MatchLabel))
		fmt.Fprintf(w, "      %s\n", pal.renderSegments(s.Segments))

		if !searchDetail {
			continue
		}
		for _, line := range p.Detail(report.Results[i]) {
			segs := lineSegments(line)
			fmt.Fprintf(w, "      %s %s\n",
				pal.paint(pal.muted, fmt.Sprintf("%5d |", line.Line)),
				pal.renderSegments(segs))
		}
	}
}

// lineSegments splits a detail line at its spans.
func lineSegments(line present.DetailLine) []present.Segment {
	var segs []present.Segment
	cursor := 0
	for _, sp := range line.Spans {
		start := min(max(sp.Start, cursor), len(line.Text))
		end := min(max(sp.End, start), len(line.Text))
		if start > cursor {
			segs = append(segs, present.Segment{Text: line.Text[cursor:start]})
		}
		if end > start {
			segs = append(segs, present.Segment{Text: line.Text[start:end], Match: true})
		}
		cursor = end
	}
	if cursor < len(line.Text) {
		segs = append(segs, present.Segment{Text: line.Text[cursor:]})
	}
	return segs
}

// searchOptionsFromFlags starts from the saved defaults and applies the
// flags the user set explicitly.
func searchOptionsFromFlags(cmd *cobra.Command) (domain.SearchOptions, error) {
	opts := domain.DefaultSearchOptions()
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			opts = s.Search.Defaults
		}
	}

	f := cmd.Flags()
	if f.Changed("regex") {
		opts.Regex = searchRegex
	}
	if f.Changed("case-sensitive") {
		opts.CaseSensitive = searchCaseSensitive
	}
	if f.Changed("whole-word") {
		opts.WholeWord = searchWholeWord
	}
	if f.Changed("range") {
		opts.Range = searchRange
	}
	if f.Changed("mode") {
		mode, err := domain.ParseMatchMode(searchMode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	opts.Range = domain.ClampRange(opts.Range)
	return opts, nil
}

// parseSelection parses "start:end" byte offsets. Empty input means no selection.
func parseSelection(s string) (*domain.Selection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("%w: selection %q must be start:end", domain.ErrInvalidInput, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return nil, fmt.Errorf("%w: selection start %q", domain.ErrInvalidInput, startStr)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return nil, fmt.Errorf("%w: selection end %q", domain.ErrInvalidInput, endStr)
	}
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: selection %d:%d", domain.ErrInvalidInput, start, end)
	}
	return &domain.Selection{Start: start, End: end}, nil
}
