package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/proxsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/services"
	"github.com/custodia-labs/proxsearch/internal/normalisers"
	"github.com/custodia-labs/proxsearch/internal/normalisers/html"
	"github.com/custodia-labs/proxsearch/internal/normalisers/plaintext"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report *domain.SearchReport
	err    error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ *domain.Document,
	_ domain.SearchRequest,
) (*domain.SearchReport, error) {
	return m.report, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocumentService) Load(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Put(_ context.Context, _, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	if m.document == nil && m.err == nil {
		return nil, domain.ErrNotFound
	}
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

// mockLinkChecker answers every URL with a fixed status.
type mockLinkChecker struct {
	status domain.LinkStatus
}

func (m *mockLinkChecker) Check(_ context.Context, url string) domain.LinkCheck {
	return domain.LinkCheck{URL: url, Status: m.status, Code: 200}
}

var errBoom = errors.New("boom")

// newTestServer wires real services over in-memory stores.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := normalisers.NewRegistry(plaintext.New(), html.New())
	ports := &Ports{
		Search:   services.NewSearchService(nil, nil),
		Document: services.NewDocumentService(memory.NewDocumentStore(), registry),
		Find:     services.NewFindService(),
		Links:    services.NewLinkService(&mockLinkChecker{status: domain.LinkStatusValid}, 2),
	}
	s, err := NewServer(ports)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}
