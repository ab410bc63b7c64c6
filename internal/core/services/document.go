package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driving"
	"github.com/custodia-labs/proxsearch/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// MaxDocumentSize is the largest document Load accepts.
const MaxDocumentSize = 32 << 20

// StdinURI is the URI recorded for documents read from standard input.
const StdinURI = "stdin"

// DocumentService loads documents and keeps their snapshots.
type DocumentService struct {
	docStore   driven.DocumentStore
	normaliser driven.Normaliser
	stdin      io.Reader
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, normaliser driven.Normaliser) *DocumentService {
	return &DocumentService{
		docStore:   docStore,
		normaliser: normaliser,
		stdin:      os.Stdin,
	}
}

// SetStdin replaces the reader used when Load is given "-".
func (s *DocumentService) SetStdin(r io.Reader) {
	s.stdin = r
}

// Load reads path, or stdin when path is "-", and stores the snapshot.
func (s *DocumentService) Load(ctx context.Context, path string) (*domain.Document, error) {
	var (
		content []byte
		uri     string
		err     error
	)

	if path == "-" {
		uri = StdinURI
		content, err = io.ReadAll(io.LimitReader(s.stdin, MaxDocumentSize+1))
	} else {
		uri, err = filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		content, err = readFile(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(content) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, path, MaxDocumentSize)
	}

	logger.Debug("Loaded %s (%d bytes)", uri, len(content))
	return s.store(ctx, &domain.RawDocument{
		URI:      uri,
		MIMEType: DetectMIMEType(uri, content),
		Content:  content,
	})
}

// Put stores content under uri, replacing any earlier snapshot of it.
func (s *DocumentService) Put(ctx context.Context, uri, content string) (*domain.Document, error) {
	if uri == "" {
		return nil, fmt.Errorf("%w: uri is required", domain.ErrInvalidInput)
	}
	if len(content) > MaxDocumentSize {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, MaxDocumentSize)
	}
	raw := []byte(content)
	return s.store(ctx, &domain.RawDocument{
		URI:      uri,
		MIMEType: DetectMIMEType(uri, raw),
		Content:  raw,
	})
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// List returns every loaded document.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.List(ctx)
}

func (s *DocumentService) store(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	doc, err := s.normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", raw.URI, err)
	}

	// Reuse the ID of an earlier snapshot so callers holding it see the update.
	if prev, err := s.docStore.GetByURI(ctx, raw.URI); err == nil {
		doc.ID = prev.ID
	}

	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
}

// DetectMIMEType guesses a MIME type from the URI extension, falling back
// to content sniffing. Parameters such as charset are dropped.
func DetectMIMEType(uri string, content []byte) string {
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(uri)))
	if mt == "" {
		mt = http.DetectContentType(content)
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
