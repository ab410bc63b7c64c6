package html

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultFilename is used when a document has no title.
const DefaultFilename = "index.html"

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise builds a document from HTML source. Content is the unmodified
// markup.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := string(raw.Content)
	htmlTitle := ExtractTitle(content)

	title := htmlTitle
	if title == "" {
		title = titleFromURI(raw.URI)
	}

	return &domain.Document{
		ID:       uuid.New().String(),
		URI:      raw.URI,
		Title:    title,
		Filename: DeriveFilename(htmlTitle),
		Content:  content,
		MIMEType: raw.MIMEType,
		LoadedAt: time.Now(),
	}, nil
}

// ExtractTitle returns the text of the first <title> element with
// whitespace collapsed, or "" if there is none.
func ExtractTitle(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// DeriveFilename turns a page title into a download filename. Characters
// that are unsafe in file names become underscores and an empty title
// yields DefaultFilename.
func DeriveFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultFilename
	}
	return unsafeFilenameChars.ReplaceAllString(title, "_") + ".html"
}

func titleFromURI(uri string) string {
	name := filepath.Base(uri)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
