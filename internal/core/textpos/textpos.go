// Package textpos maps byte offsets in a document to line and column
// positions and back.
package textpos

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

// Position is a 1-based line and column. Column counts characters, not
// bytes, from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex records where each line of a text begins.
// It is immutable and safe for concurrent use.
type LineIndex struct {
	text   string
	starts []int
}

// NewLineIndex scans text once and records every line start.
func NewLineIndex(text string) *LineIndex {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// LineCount returns the number of lines. Empty text has one empty line.
func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}

// LineOf returns the 1-based line containing offset. Offsets outside the
// text are clamped.
func (ix *LineIndex) LineOf(offset int) int {
	offset = min(max(offset, 0), len(ix.text))
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
}

// LineStart returns the byte offset where line begins.
func (ix *LineIndex) LineStart(line int) int {
	return ix.starts[ix.clampLine(line)-1]
}

// LineEnd returns the byte offset of the end of line, excluding the line
// terminator.
func (ix *LineIndex) LineEnd(line int) int {
	line = ix.clampLine(line)
	end := len(ix.text)
	if line < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	if end > ix.starts[line-1] && ix.text[end-1] == '\r' {
		end--
	}
	return end
}

// LineText returns the content of line without its terminator.
func (ix *LineIndex) LineText(line int) string {
	return ix.text[ix.LineStart(line):ix.LineEnd(line)]
}

// Position converts a byte offset to a line and column.
func (ix *LineIndex) Position(offset int) Position {
	offset = min(max(offset, 0), len(ix.text))
	line := ix.LineOf(offset)
	start := ix.starts[line-1]
	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(ix.text[start:offset]) + 1,
	}
}

// Offset converts a position back to a byte offset. Columns past the end
// of the line resolve to the line end.
func (ix *LineIndex) Offset(p Position) (int, error) {
	if p.Line < 1 || p.Line > len(ix.starts) || p.Column < 1 {
		return 0, fmt.Errorf("%w: position %s outside document", domain.ErrInvalidScope, p)
	}

	start, end := ix.LineStart(p.Line), ix.LineEnd(p.Line)
	offset := start
	for col := 1; col < p.Column && offset < end; col++ {
		_, size := utf8.DecodeRuneInString(ix.text[offset:])
		offset += size
	}
	return offset, nil
}

func (ix *LineIndex) clampLine(line int) int {
	return min(max(line, 1), len(ix.starts))
}
