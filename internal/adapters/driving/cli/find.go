package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

var (
	findReplace string
	findAll     bool
	findIndex   int
	findWrite   bool
	findJSON    bool
)

var findCmd = &cobra.Command{
	Use:   "find <file> <query>",
	Short: "Find and replace literal text",
	Long: `Finds every case-insensitive literal occurrence of query.

With --replace the current match (selected by --index, 1-based, wrapping
around) or, with --all, every match is replaced and a line diff is printed.
Add --write to save the result back to the file.`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	f := findCmd.Flags()
	f.StringVar(&findReplace, "replace", "", "replacement text")
	f.BoolVar(&findAll, "all", false, "replace every match")
	f.IntVarP(&findIndex, "index", "i", 1, "match to replace or show as current (1-based)")
	f.BoolVar(&findWrite, "write", false, "write the replaced text back to the file")
	f.BoolVar(&findJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(findCmd)
}

type findOutput struct {
	Report  *domain.FindReport    `json:"report"`
	Label   string                `json:"label"`
	Matches []findMatch           `json:"matches"`
	Replace *domain.ReplaceResult `json:"replace,omitempty"`
	Written bool                  `json:"written,omitempty"`
}

type findMatch struct {
	Start textpos.Position `json:"start"`
	End   textpos.Position `json:"end"`
	Line  string           `json:"line"`
	// LineSpan locates the match within Line, in bytes.
	LineSpan domain.Span `json:"line_span"`
}

func runFind(cmd *cobra.Command, args []string) error {
	if findService == nil {
		return errFindUnavailable
	}
	if documentService == nil {
		return errDocumentUnavailable
	}
	path, query := args[0], args[1]
	replacing := cmd.Flags().Changed("replace")
	if findWrite && !replacing {
		return fmt.Errorf("--write needs --replace")
	}
	if findWrite && path == "-" {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := documentService.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	report, err := findService.FindAll(ctx, doc.Content, query)
	if err != nil {
		return fmt.Errorf("%s: %w", present.FindMessage(err), err)
	}
	report = findService.Navigate(report, findIndex-1)

	result := findOutput{Report: report, Label: report.Label(), Matches: describeSpans(doc.Content, report.Matches)}

	if replacing {
		var res *domain.ReplaceResult
		if findAll {
			res, err = findService.ReplaceAll(ctx, doc.Content, query, findReplace)
		} else {
			res, err = findService.ReplaceCurrent(ctx, doc.Content, report, findReplace)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", present.FindMessage(err), err)
		}
		result.Replace = res

		if findWrite {
			if err := writeBack(doc.URI, res.Text); err != nil {
				return err
			}
			result.Written = true
		}
	}

	if findJSON {
		return writeStructured(out(cmd), formatJSON, result)
	}
	printFind(out(cmd), doc, result)
	return nil
}

func describeSpans(text string, spans []domain.Span) []findMatch {
	ix := textpos.NewLineIndex(text)
	out := make([]findMatch, len(spans))
	for i, sp := range spans {
		line := ix.LineOf(sp.Start)
		base := ix.LineStart(line)
		out[i] = findMatch{
			Start:    ix.Position(sp.Start),
			End:      ix.Position(sp.End),
			Line:     ix.LineText(line),
			LineSpan: domain.Span{Start: sp.Start - base, End: sp.End - base},
		}
	}
	return out
}

// writeBack replaces the file at path, keeping its permissions.
func writeBack(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printDiff(w io.Writer, pal palette, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case '-':
			fmt.Fprint(w, pal.paint(pal.bad, line))
		case '+':
			fmt.Fprint(w, pal.paint(pal.good, line))
		default:
			fmt.Fprint(w, line)
		}
	}
}

func printFind(w io.Writer, doc *domain.Document, r findOutput) {
	pal := newPalette(w)

	fmt.Fprintf(w, "%s  %s\n", pal.paint(pal.label, fmt.Sprintf("%q", r.Report.Query)), r.Label)
	for i, m := range r.Matches {
		marker := " "
		if i == r.Report.Current {
			marker = ">"
		}
		line := present.DetailLine{Text: m.Line, Spans: []domain.Span{m.LineSpan}}
		fmt.Fprintf(w, "%s %s  %s\n", marker,
			pal.paint(pal.muted, fmt.Sprintf("%8s", m.Start)),
			pal.renderSegments(lineSegments(line)))
	}

	if r.Replace == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replaced %d occurrence(s)\n", r.Replace.Count)
	printDiff(w, pal, r.Replace.Diff)
	if r.Written {
		fmt.Fprintf(w, "Wrote %s\n", doc.URI)
	}
}
