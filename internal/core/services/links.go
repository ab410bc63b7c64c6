package services

import (
	"context"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// Ensure LinkService implements the interface.
var _ driving.LinkService = (*LinkService)(nil)

var linkPattern = regexp.MustCompile(`https?://[^\s"'<>)]+`)

// LinkService extracts and validates http(s) links.
type LinkService struct {
	checker     driven.LinkChecker
	concurrency int
}

// NewLinkService creates a new link service. checker is optional; without
// it every link is reported as pending.
func NewLinkService(checker driven.LinkChecker, concurrency int) *LinkService {
	return &LinkService{
		checker:     checker,
		concurrency: max(1, concurrency),
	}
}

// ExtractLinks returns every http(s) URL in text with its byte offsets.
func ExtractLinks(text string) []domain.Link {
	locs := linkPattern.FindAllStringIndex(text, -1)
	links := make([]domain.Link, 0, len(locs))
	for _, loc := range locs {
		links = append(links, domain.Link{
			URL:   text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return links
}

// Validate checks each distinct URL in text once. A cancelled context
// leaves the remaining URLs pending.
func (s *LinkService) Validate(ctx context.Context, text string) (*domain.LinkReport, error) {
	links := ExtractLinks(text)
	report := &domain.LinkReport{
		Links:  links,
		Checks: make(map[string]domain.LinkCheck, len(links)),
	}

	var urls []string
	for _, l := range links {
		if _, seen := report.Checks[l.URL]; seen {
			continue
		}
		report.Checks[l.URL] = domain.LinkCheck{URL: l.URL, Status: domain.LinkStatusPending}
		urls = append(urls, l.URL)
	}
	logger.Debug("Links: %d found, %d distinct", len(links), len(urls))

	if s.checker == nil || len(urls) == 0 {
		report.Tally()
		return report, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, u := range urls {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			check := s.checker.Check(gctx, u)
			logger.Debug("Link %s: %s", u, check.Status)

			mu.Lock()
			report.Checks[u] = check
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Tally()
	return report, ctx.Err()
}
