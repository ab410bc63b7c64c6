package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/normalisers/html"
	"github.com/custodia-labs/proxsearch/internal/normalisers/plaintext"
)

func TestRegistry_Normalise(t *testing.T) {
	reg := NewRegistry(plaintext.New(), plaintext.New(), html.New())
	ctx := context.Background()

	t.Run("html by mime type", func(t *testing.T) {
		doc, err := reg.Normalise(ctx, &domain.RawDocument{
			URI:      "/a/page.html",
			MIMEType: "text/html",
			Content:  []byte("<title>Page</title>"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Page.html", doc.Filename)
	})

	t.Run("unknown mime falls back", func(t *testing.T) {
		doc, err := reg.Normalise(ctx, &domain.RawDocument{
			URI:      "/a/data.bin",
			MIMEType: "application/octet-stream",
			Content:  []byte("x"),
		})
		require.NoError(t, err)
		assert.Equal(t, "data.bin", doc.Filename)
	})

	t.Run("nil raw", func(t *testing.T) {
		_, err := reg.Normalise(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no fallback", func(t *testing.T) {
		_, err := NewRegistry(nil).Normalise(ctx, &domain.RawDocument{MIMEType: "x/y"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	reg := NewRegistry(nil, html.New(), plaintext.New())
	types := reg.SupportedMIMETypes()

	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "text/plain")
	assert.IsNonDecreasing(t, types)
}
