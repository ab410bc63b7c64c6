package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/core/proximity"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// Ensure FindService implements the interface.
var _ driving.FindService = (*FindService)(nil)

// Find errors. Both wrap a domain sentinel so callers can use errors.Is.
var (
	ErrNothingToReplace = fmt.Errorf("%w: nothing to replace", domain.ErrEmptyInput)
	ErrNoMatches        = fmt.Errorf("%w: no matches found", domain.ErrNotFound)
)

// FindService implements the simple find bar.
type FindService struct{}

// NewFindService creates a new find service.
func NewFindService() *FindService {
	return &FindService{}
}

// FindAll locates every case-insensitive literal occurrence of query.
func (s *FindService) FindAll(ctx context.Context, text, query string) (*domain.FindReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spans, err := proximity.FindLiteral(text, query, false)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	logger.Debug("Find %q: %d matches", query, len(spans))

	return &domain.FindReport{Query: query, Matches: spans}, nil
}

// Navigate moves the current match by step, wrapping at either end.
func (s *FindService) Navigate(report *domain.FindReport, step int) *domain.FindReport {
	if report == nil {
		return &domain.FindReport{}
	}
	next := *report
	if n := len(report.Matches); n > 0 {
		next.Current = ((report.Current+step)%n + n) % n
	}
	return &next
}

// ReplaceCurrent replaces the current match. The report must come from a
// FindAll over the same text.
func (s *FindService) ReplaceCurrent(ctx context.Context, text string, report *domain.FindReport, replacement string) (*domain.ReplaceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if report == nil || len(report.Matches) == 0 {
		return nil, ErrNothingToReplace
	}

	cur := report.Matches[min(max(report.Current, 0), len(report.Matches)-1)]
	if cur.Start < 0 || cur.End > len(text) || cur.Start > cur.End {
		return nil, fmt.Errorf("%w: match %d..%d outside text", domain.ErrInvalidScope, cur.Start, cur.End)
	}

	out := text[:cur.Start] + replacement + text[cur.End:]
	return &domain.ReplaceResult{
		Text:  out,
		Count: 1,
		Diff:  LineDiff(text, out),
	}, nil
}

// ReplaceAll replaces every case-insensitive literal occurrence of query.
func (s *FindService) ReplaceAll(ctx context.Context, text, query, replacement string) (*domain.ReplaceResult, error) {
	if query == "" {
		return nil, ErrNothingToReplace
	}

	report, err := s.FindAll(ctx, text, query)
	if err != nil {
		return nil, err
	}
	if len(report.Matches) == 0 {
		return nil, ErrNoMatches
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range report.Matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(replacement)
		last = m.End
	}
	b.WriteString(text[last:])

	out := b.String()
	return &domain.ReplaceResult{
		Text:  out,
		Count: len(report.Matches),
		Diff:  LineDiff(text, out),
	}, nil
}

// LineDiff renders the changed lines between before and after, prefixing
// removed lines with "-" and added lines with "+". Unchanged lines are
// omitted. It returns "" when nothing changed.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(strings.TrimSuffix(line, "\n"))
			out.WriteByte('\n')
		}
	}
	return out.String()
}
