package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "text/html")
	assert.Contains(t, mimeTypes, "application/xhtml+xml")
	assert.Len(t, mimeTypes, 2)
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	source := "<html><head><title>Quarterly  Report</title></head><body><p>Hello World</p></body></html>"
	raw := &domain.RawDocument{
		URI:      "/path/to/report.html",
		MIMEType: "text/html",
		Content:  []byte(source),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "Quarterly Report", doc.Title)
	assert.Equal(t, "Quarterly Report.html", doc.Filename)
	assert.Equal(t, source, doc.Content, "content must be kept verbatim")
	assert.Equal(t, "text/html", doc.MIMEType)
	assert.False(t, doc.LoadedAt.IsZero())
}

func TestNormalise_NoTitle(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/path/to/landing-page.html",
		MIMEType: "text/html",
		Content:  []byte("<p>no head</p>"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "landing-page", doc.Title)
	assert.Equal(t, "index.html", doc.Filename)
}

func TestNormalise_NilDocument(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple", "<title>Home</title>", "Home"},
		{"entities decoded", "<title>Q&amp;A</title>", "Q&A"},
		{"first of many", "<title>One</title><title>Two</title>", "One"},
		{"whitespace collapsed", "<title>\n  A\t B \n</title>", "A B"},
		{"missing", "<p>body</p>", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.content))
		})
	}
}

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Home", "Home.html"},
		{`a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j.html"},
		{"", "index.html"},
		{"   ", "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFilename(tt.title))
		})
	}
}
