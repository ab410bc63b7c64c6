package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads and clears search history.
type HistoryService struct {
	store        driven.HistoryStore
	defaultLimit int
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore, defaultLimit int) *HistoryService {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultAppSettings().History.Limit
	}
	return &HistoryService{store: store, defaultLimit: defaultLimit}
}

// List returns up to limit entries, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return []domain.HistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
