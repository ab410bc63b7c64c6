package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/core/proximity"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Search kinds reported to the observer.
const (
	KindRegex = "regex"
	KindTerms = "terms"
)

// SearchService runs advanced searches over document snapshots.
type SearchService struct {
	history  driven.HistoryStore
	observer driven.SearchObserver
}

// NewSearchService creates a new search service.
// Both parameters are optional (can be nil).
func NewSearchService(history driven.HistoryStore, observer driven.SearchObserver) *SearchService {
	return &SearchService{
		history:  history,
		observer: observer,
	}
}

// Search resolves the scope, runs the engine selected by req.Options.Regex
// and records the query in history. Failed searches return no results.
func (s *SearchService) Search(ctx context.Context, doc *domain.Document, req domain.SearchRequest) (*domain.SearchReport, error) {
	logger.Section("Advanced Search")

	if doc == nil {
		return nil, fmt.Errorf("search: %w: no document", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := req.Options
	if !opts.Mode.IsValid() {
		opts.Mode = domain.MatchModeAll
	}
	query := strings.TrimSpace(req.Query)

	scope, selection, err := ResolveScope(doc.Content, req.Selection, opts.SelectionOnly)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("Document: %s (%d bytes)", doc.URI, len(doc.Content))
	logger.Debug("Scope: %d..%d, options: %+v", scope.Offset, scope.EndOffset, opts)

	kind := KindTerms
	if opts.Regex {
		kind = KindRegex
	}

	start := time.Now()
	terms, results, err := run(query, scope, doc.Content, opts)
	elapsed := time.Since(start)

	s.observe(kind, elapsed, len(results), err)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Info("%d results in %s", len(results), elapsed)
	if len(results) == proximity.MaxResults {
		logger.Debug("Result cap of %d reached", proximity.MaxResults)
	}

	report := &domain.SearchReport{
		ID:       uuid.New().String(),
		Query:    query,
		Terms:    terms,
		Options:  opts,
		Scope:    selection,
		Results:  results,
		Duration: elapsed,
	}
	s.record(ctx, doc, report)

	return report, nil
}

// run dispatches to the engine. A panic inside the engine is reported as
// domain.ErrSearchFailed.
func run(query string, scope domain.SearchScope, fullText string, opts domain.SearchOptions) (terms []string, results []domain.ResultEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			terms, results = nil, nil
			err = fmt.Errorf("%w: %v", domain.ErrSearchFailed, r)
		}
	}()

	if opts.Regex {
		logger.Debug("Regex pattern: %q", query)
		results, err = proximity.RunRegexSearch(query, scope, fullText, opts)
		return nil, results, err
	}

	terms = proximity.ParseTerms(query)
	logger.Debug("Terms: %q (range %d, mode %s)", terms, opts.Range, opts.Mode)
	results, err = proximity.RunMultiTermSearch(terms, scope, fullText, opts)
	return terms, results, err
}

// ResolveScope picks the text to search. The selection is used only when
// selectionOnly is set and the selection is non-empty; otherwise the whole
// document is searched. A selection outside the document is an error.
func ResolveScope(content string, sel *domain.Selection, selectionOnly bool) (domain.SearchScope, domain.Selection, error) {
	full := domain.Selection{Start: 0, End: len(content)}
	if !selectionOnly || sel == nil || sel.IsEmpty() {
		return domain.FullScope(content), full, nil
	}

	if sel.Start < 0 || sel.End > len(content) {
		return domain.SearchScope{}, domain.Selection{}, fmt.Errorf(
			"%w: selection %d..%d outside document of %d bytes", domain.ErrInvalidScope, sel.Start, sel.End, len(content))
	}

	scope := domain.SearchScope{
		Text:      content[sel.Start:sel.End],
		Offset:    sel.Start,
		EndOffset: sel.End,
	}
	return scope, *sel, scope.Validate()
}

func (s *SearchService) observe(kind string, elapsed time.Duration, results int, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveSearch(kind, elapsed, results, domain.ClassifySearchError(err))
}

// record appends the query to history. History failures never fail the
// search.
func (s *SearchService) record(ctx context.Context, doc *domain.Document, report *domain.SearchReport) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:          report.ID,
		Query:       report.Query,
		Terms:       report.Terms,
		Options:     report.Options,
		DocumentURI: doc.URI,
		ResultCount: len(report.Results),
		CreatedAt:   time.Now(),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		logger.Warn("Failed to record history: %v", err)
	}
}
