package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.HistoryStore = (*historyStore)(nil)

type historyStore struct {
	s *Store
}

func (h *historyStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	terms := entry.Terms
	if terms == nil {
		terms = []string{}
	}
	termsJSON, err := json.Marshal(terms)
	if err != nil {
		return fmt.Errorf("marshalling terms: %w", err)
	}
	optsJSON, err := json.Marshal(entry.Options)
	if err != nil {
		return fmt.Errorf("marshalling options: %w", err)
	}

	_, err = h.s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, query, terms, options, document_uri, result_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			terms = excluded.terms,
			options = excluded.options,
			document_uri = excluded.document_uri,
			result_count = excluded.result_count,
			created_at = excluded.created_at
	`, entry.ID, entry.Query, string(termsJSON), string(optsJSON),
		entry.DocumentURI, entry.ResultCount, entry.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	return h.trim(ctx)
}

// trim drops the oldest rows beyond the store capacity.
func (h *historyStore) trim(ctx context.Context) error {
	if h.s.capacity < 1 {
		return nil
	}
	_, err := h.s.db.ExecContext(ctx, `
		DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, h.s.capacity)
	if err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

func (h *historyStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		return []domain.HistoryEntry{}, nil
	}
	rows, err := h.s.db.QueryContext(ctx, `
		SELECT id, query, terms, options, document_uri, result_count, created_at
		FROM search_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			e         domain.HistoryEntry
			termsJSON string
			optsJSON  string
			created   int64
		)
		if err := rows.Scan(&e.ID, &e.Query, &termsJSON, &optsJSON,
			&e.DocumentURI, &e.ResultCount, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if err := json.Unmarshal([]byte(termsJSON), &e.Terms); err != nil {
			return nil, fmt.Errorf("decoding terms for %s: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(optsJSON), &e.Options); err != nil {
			return nil, fmt.Errorf("decoding options for %s: %w", e.ID, err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

func (h *historyStore) Clear(ctx context.Context) error {
	if _, err := h.s.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
