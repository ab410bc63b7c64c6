package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

// inlineURI names documents passed as text in a tool call. Each call
// replaces the previous inline snapshot.
const inlineURI = "inline:mcp"

// SourceInput selects the document a tool operates on.
type SourceInput struct {
	Text string `json:"text,omitempty" jsonschema:"document text; takes precedence over path"`
	Path string `json:"path,omitempty" jsonschema:"path of a local file to read"`
}

// SearchInput is the input schema for the advanced_search tool.
type SearchInput struct {
	Text           string `json:"text,omitempty" jsonschema:"document text; takes precedence over path"`
	Path           string `json:"path,omitempty" jsonschema:"path of a local file to read"`
	Query          string `json:"query" jsonschema:"comma or newline separated terms, or a pattern when regex is true"`
	Regex          bool   `json:"regex,omitempty" jsonschema:"treat query as an ECMAScript regular expression"`
	CaseSensitive  bool   `json:"case_sensitive,omitempty" jsonschema:"match case exactly"`
	WholeWord      *bool  `json:"whole_word,omitempty" jsonschema:"terms must equal a whole word (default true)"`
	Range          int    `json:"range,omitempty" jsonschema:"maximum window size in words, 10 to 1000 (default 120)"`
	Mode           string `json:"mode,omitempty" jsonschema:"all: every term inside one window; any: a window per occurrence (default all)"`
	SelectionStart *int   `json:"selection_start,omitempty" jsonschema:"restrict the search to bytes from this offset"`
	SelectionEnd   *int   `json:"selection_end,omitempty" jsonschema:"restrict the search to bytes before this offset"`
	Detail         bool   `json:"detail,omitempty" jsonschema:"include the matched lines of every result"`
}

// SearchOutput is the output schema for the advanced_search tool.
type SearchOutput struct {
	DocumentID string         `json:"document_id"`
	URI        string         `json:"uri"`
	Title      string         `json:"title"`
	Terms      []string       `json:"terms"`
	Count      int            `json:"count"`
	Results    []ResultOutput `json:"results"`
}

// ResultOutput is one search result.
type ResultOutput struct {
	LineLabel   string       `json:"line_label"`
	Start       string       `json:"start" jsonschema:"line:column of the first match"`
	End         string       `json:"end" jsonschema:"line:column where the first match ends"`
	StartOffset int          `json:"start_offset"`
	EndOffset   int          `json:"end_offset"`
	WindowWords int          `json:"window_words"`
	Matches     int          `json:"matches"`
	Snippet     string       `json:"snippet" jsonschema:"context with matches wrapped in [[ ]]"`
	Lines       []LineOutput `json:"lines,omitempty"`
}

// LineOutput is one matched line of a result.
type LineOutput struct {
	Line  int           `json:"line"`
	Text  string        `json:"text"`
	Spans []domain.Span `json:"spans"`
}

// FindInput is the input schema for the find_text tool.
type FindInput struct {
	Text    string  `json:"text,omitempty" jsonschema:"document text; takes precedence over path"`
	Path    string  `json:"path,omitempty" jsonschema:"path of a local file to read"`
	Query   string  `json:"query" jsonschema:"literal text to find, case-insensitive"`
	Replace *string `json:"replace,omitempty" jsonschema:"replacement text; omit to only find"`
	All     bool    `json:"all,omitempty" jsonschema:"replace every match instead of only the current one"`
	Index   int     `json:"index,omitempty" jsonschema:"1-based current match (default 1, wraps around)"`
}

// FindOutput is the output schema for the find_text tool.
type FindOutput struct {
	Label    string      `json:"label"`
	Count    int         `json:"count"`
	Current  int         `json:"current"`
	Matches  []FindMatch `json:"matches"`
	Replaced int         `json:"replaced,omitempty"`
	Diff     string      `json:"diff,omitempty"`
	Result   string      `json:"result,omitempty" jsonschema:"full text after replacement"`
}

// FindMatch is one literal match.
type FindMatch struct {
	Start    string `json:"start"`
	StartOff int    `json:"start_offset"`
	EndOff   int    `json:"end_offset"`
}

// LinksOutput is the output schema for the validate_links tool.
type LinksOutput struct {
	Links   []LinkOutput `json:"links"`
	Valid   int          `json:"valid"`
	Invalid int          `json:"invalid"`
	Pending int          `json:"pending"`
}

// LinkOutput is one unique URL and its status.
type LinkOutput struct {
	URL         string `json:"url"`
	Status      string `json:"status"`
	Code        int    `json:"code,omitempty"`
	Occurrences int    `json:"occurrences"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "advanced_search",
		Description: "Find places in a document where search terms occur within a window of words, " +
			"or where a regular expression matches. Returns line labels and highlighted snippets.",
	}, s.handleSearch)

	if s.ports.Find != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "find_text",
			Description: "Find literal text (case-insensitive) and optionally preview a replacement as a line diff.",
		}, s.handleFind)
	}

	if s.ports.Links != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "validate_links",
			Description: "Check the http(s) links in a document and report which are reachable.",
		}, s.handleLinks)
	}
}

// document resolves the tool's source to a stored document.
func (s *Server) document(ctx context.Context, in SourceInput) (*domain.Document, error) {
	switch {
	case in.Text != "":
		return s.ports.Document.Put(ctx, inlineURI, in.Text)
	case in.Path != "":
		return s.ports.Document.Load(ctx, in.Path)
	default:
		return nil, ErrNoInput
	}
}

// handleSearch handles the advanced_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := searchRequest(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	doc, err := s.document(ctx, SourceInput{Text: input.Text, Path: input.Path})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	report, err := s.ports.Search.Search(ctx, doc, req)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("%s: %w", present.SearchMessage(err, req.Options.Regex), err)
	}

	p := present.New(doc.Content)
	output := SearchOutput{
		DocumentID: doc.ID,
		URI:        doc.URI,
		Title:      doc.Title,
		Terms:      report.Terms,
		Count:      len(report.Results),
		Results:    make([]ResultOutput, len(report.Results)),
	}
	for i, sum := range p.Describe(report.Results) {
		r := report.Results[i]
		out := ResultOutput{
			LineLabel:   sum.LineLabel,
			Start:       sum.Selection.Start.String(),
			End:         sum.Selection.End.String(),
			StartOffset: r.Start,
			EndOffset:   r.End,
			WindowWords: r.WindowWords,
			Matches:     sum.Matches,
			Snippet:     bracketed(sum.Segments),
		}
		if input.Detail {
			for _, line := range p.Detail(r) {
				out.Lines = append(out.Lines, LineOutput{Line: line.Line, Text: line.Text, Spans: line.Spans})
			}
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

func searchRequest(input SearchInput) (domain.SearchRequest, error) {
	opts := domain.DefaultSearchOptions()
	opts.Regex = input.Regex
	opts.CaseSensitive = input.CaseSensitive
	if input.WholeWord != nil {
		opts.WholeWord = *input.WholeWord
	}
	opts.Range = domain.ClampRange(input.Range)
	if input.Mode != "" {
		mode, err := domain.ParseMatchMode(input.Mode)
		if err != nil {
			return domain.SearchRequest{}, err
		}
		opts.Mode = mode
	}

	req := domain.SearchRequest{Query: input.Query, Options: opts}
	if input.SelectionStart != nil || input.SelectionEnd != nil {
		if input.SelectionStart == nil || input.SelectionEnd == nil {
			return req, fmt.Errorf("%w: selection_start and selection_end go together", domain.ErrInvalidInput)
		}
		req.Selection = &domain.Selection{Start: *input.SelectionStart, End: *input.SelectionEnd}
		req.Options.SelectionOnly = true
	}
	return req, nil
}

// bracketed renders segments as plain text with matches in [[ ]].
func bracketed(segs []present.Segment) string {
	var n int
	for _, sg := range segs {
		n += len(sg.Text) + 4
	}
	b := make([]byte, 0, n)
	for _, sg := range segs {
		if sg.Match {
			b = append(b, "[["...)
			b = append(b, sg.Text...)
			b = append(b, "]]"...)
			continue
		}
		b = append(b, sg.Text...)
	}
	return string(b)
}

// handleFind handles the find_text tool invocation. Replacements are
// returned, never written to disk.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	doc, err := s.document(ctx, SourceInput{Text: input.Text, Path: input.Path})
	if err != nil {
		return nil, FindOutput{}, err
	}

	report, err := s.ports.Find.FindAll(ctx, doc.Content, input.Query)
	if err != nil {
		return nil, FindOutput{}, fmt.Errorf("%s: %w", present.FindMessage(err), err)
	}
	if input.Index > 0 {
		report = s.ports.Find.Navigate(report, input.Index-1)
	}

	ix := textpos.NewLineIndex(doc.Content)
	output := FindOutput{
		Label:   report.Label(),
		Count:   len(report.Matches),
		Matches: make([]FindMatch, len(report.Matches)),
	}
	if len(report.Matches) > 0 {
		output.Current = report.Current + 1
	}
	for i, m := range report.Matches {
		output.Matches[i] = FindMatch{Start: ix.Position(m.Start).String(), StartOff: m.Start, EndOff: m.End}
	}

	if input.Replace == nil {
		return nil, output, nil
	}

	var res *domain.ReplaceResult
	if input.All {
		res, err = s.ports.Find.ReplaceAll(ctx, doc.Content, input.Query, *input.Replace)
	} else {
		res, err = s.ports.Find.ReplaceCurrent(ctx, doc.Content, report, *input.Replace)
	}
	if err != nil {
		return nil, FindOutput{}, fmt.Errorf("%s: %w", present.FindMessage(err), err)
	}
	output.Replaced = res.Count
	output.Diff = res.Diff
	output.Result = res.Text

	return nil, output, nil
}

// handleLinks handles the validate_links tool invocation.
func (s *Server) handleLinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SourceInput,
) (*mcp.CallToolResult, LinksOutput, error) {
	doc, err := s.document(ctx, input)
	if err != nil {
		return nil, LinksOutput{}, err
	}

	report, err := s.ports.Links.Validate(ctx, doc.Content)
	if err != nil {
		return nil, LinksOutput{}, fmt.Errorf("validating links: %w", err)
	}

	counts := map[string]int{}
	for _, l := range report.Links {
		counts[l.URL]++
	}
	output := LinksOutput{
		Links:   make([]LinkOutput, 0, len(report.Checks)),
		Valid:   report.Valid,
		Invalid: report.Invalid,
		Pending: report.Pending,
	}
	for url, c := range report.Checks {
		output.Links = append(output.Links, LinkOutput{
			URL:         url,
			Status:      string(c.Status),
			Code:        c.Code,
			Occurrences: counts[url],
		})
	}
	sort.Slice(output.Links, func(i, j int) bool { return output.Links[i].URL < output.Links[j].URL })

	return nil, output, nil
}
