package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestLineIndex(t *testing.T) {
	text := "alpha\nbéta\r\n\ngamma"
	ix := NewLineIndex(text)

	t.Run("line count", func(t *testing.T) {
		assert.Equal(t, 4, ix.LineCount())
		assert.Equal(t, 1, NewLineIndex("").LineCount())
	})

	t.Run("line text strips terminators", func(t *testing.T) {
		assert.Equal(t, "alpha", ix.LineText(1))
		assert.Equal(t, "béta", ix.LineText(2))
		assert.Equal(t, "", ix.LineText(3))
		assert.Equal(t, "gamma", ix.LineText(4))
	})

	t.Run("line of offset", func(t *testing.T) {
		assert.Equal(t, 1, ix.LineOf(0))
		assert.Equal(t, 1, ix.LineOf(5))
		assert.Equal(t, 2, ix.LineOf(6))
		assert.Equal(t, 4, ix.LineOf(len(text)))
		assert.Equal(t, 4, ix.LineOf(len(text)+50))
		assert.Equal(t, 1, ix.LineOf(-3))
	})

	t.Run("position counts characters", func(t *testing.T) {
		tIdx := 6 + len("bé")
		assert.Equal(t, Position{Line: 2, Column: 3}, ix.Position(tIdx))
		assert.Equal(t, Position{Line: 1, Column: 1}, ix.Position(0))
		assert.Equal(t, "2:3", ix.Position(tIdx).String())
	})

	t.Run("offset round trip", func(t *testing.T) {
		for _, off := range []int{0, 3, 6, 9, 11, 13, 14, len(text)} {
			got, err := ix.Offset(ix.Position(off))
			require.NoError(t, err)
			assert.Equal(t, off, got, "offset %d", off)
		}
	})

	t.Run("column past line end clamps", func(t *testing.T) {
		got, err := ix.Offset(Position{Line: 1, Column: 99})
		require.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("invalid positions", func(t *testing.T) {
		_, err := ix.Offset(Position{Line: 0, Column: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidScope)

		_, err = ix.Offset(Position{Line: 9, Column: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidScope)
	})
}
