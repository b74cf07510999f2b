// Package source defines an immutable text buffer with position mapping.
package source

import (
	"bytes"
	"sort"
)

// Source holds a named text (e.g. the usage section of a help text) and maps
// byte offsets to line/column pairs. Source is immutable and safe for
// concurrent use once created.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a new Source. The content is not copied and must not be
// modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	s.lineStarts = append(s.lineStarts, 0)
	for pos := 0; ; {
		i := bytes.IndexByte(content[pos:], '\n')
		if i < 0 {
			break
		}
		pos += i + 1
		s.lineStarts = append(s.lineStarts, pos)
	}
	return s
}

// Name returns the source name or empty string.
func (s *Source) Name() string {
	return s.name
}

// Content returns the source text.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns the length of the source text in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts a byte offset to a 1-based line/column pair.
// Offsets outside the text are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}
	i := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	return i + 1, pos - s.lineStarts[i] + 1
}

// Pos is a resolved position in a Source. It implements argot.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates a position record for the given byte offset.
func NewPos(src *Source, pos int) Pos {
	line, col := src.LineCol(pos)
	return Pos{src, pos, line, col}
}

// Source returns the source this position belongs to.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns the name of the source or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

// Pos returns the byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns the 1-based line number.
func (p Pos) Line() int {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() int {
	return p.col
}
