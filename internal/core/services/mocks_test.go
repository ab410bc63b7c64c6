package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

type observation struct {
	kind    string
	results int
	outcome domain.SearchErrorKind
}

type mockObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (m *mockObserver) ObserveSearch(kind string, _ time.Duration, results int, outcome domain.SearchErrorKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{kind: kind, results: results, outcome: outcome})
}

type failingHistoryStore struct{}

func (failingHistoryStore) Append(context.Context, domain.HistoryEntry) error {
	return errors.New("disk full")
}

func (failingHistoryStore) List(context.Context, int) ([]domain.HistoryEntry, error) {
	return nil, errors.New("disk full")
}

func (failingHistoryStore) Clear(context.Context) error {
	return errors.New("disk full")
}

type mockLinkChecker struct {
	mu       sync.Mutex
	statuses map[string]domain.LinkStatus
	calls    map[string]int
}

func newMockLinkChecker(statuses map[string]domain.LinkStatus) *mockLinkChecker {
	return &mockLinkChecker{statuses: statuses, calls: make(map[string]int)}
}

func (m *mockLinkChecker) Check(_ context.Context, url string) domain.LinkCheck {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[url]++
	status, ok := m.statuses[url]
	if !ok {
		status = domain.LinkStatusWarn
	}
	return domain.LinkCheck{URL: url, Status: status}
}
