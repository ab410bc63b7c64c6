package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	byURI     map[string]string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		byURI:     make(map[string]string),
	}
}

// Save stores or replaces a document.
func (s *DocumentStore) Save(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.documents[doc.ID]; ok && prev.URI != doc.URI {
		delete(s.byURI, prev.URI)
	}
	s.documents[doc.ID] = *doc
	if doc.URI != "" {
		s.byURI[doc.URI] = doc.ID
	}
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByURI retrieves the latest snapshot of uri.
func (s *DocumentStore) GetByURI(ctx context.Context, uri string) (*domain.Document, error) {
	s.mu.RLock()
	id, ok := s.byURI[uri]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// List returns all documents ordered by load time.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].LoadedAt.Equal(docs[j].LoadedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].LoadedAt.Before(docs[j].LoadedAt)
	})
	return docs, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	if s.byURI[doc.URI] == id {
		delete(s.byURI, doc.URI)
	}
	return nil
}
