// Package lexer defines a regexp-driven lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/argot-lang/argot"
	"github.com/argot-lang/argot/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at that position.
	WrongCharError = argot.LexicalErrors + iota
)

// TokenType describes token type for a specific capturing group of the regular expression.
type TokenType struct {
	// Type contains token type, may be any non-negative value.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer splits a span of a source.Source into tokens using regexp.Regexp.
// Lexer itself is immutable and safe for concurrent use, so distinct spans of
// the same source may be scanned by different goroutines with one instance.
// Each token type maps to its own regexp capturing group index; a match
// containing no captured group is treated as an insignificant lexeme
// (e.g. whitespace) and skipped. Every byte of the span must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates a new Lexer.
// Each n-th element of types describes the token type for the (n+1)-th regexp
// capturing group. The regexp must be anchored at the start of the input.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	copy(ts, types)
	return &Lexer{types: ts, re: re}
}

func wrongCharError(src *source.Source, pos int) *argot.Error {
	r, _ := utf8.DecodeRune(src.Content()[pos:])
	msg := fmt.Sprintf("wrong char %q", r)
	return argot.FormatErrorPos(source.NewPos(src, pos), WrongCharError, msg)
}

// Scan fetches all tokens of the [start, end) span of src.
// Returns nil and argot.Error if some part of the span matches no lexeme.
func (l *Lexer) Scan(src *source.Source, start, end int) ([]*Token, error) {
	content := src.Content()
	if end > len(content) {
		end = len(content)
	}

	result := make([]*Token, 0)
	pos := start
	for pos < end {
		t, advance, e := l.match(src, content[pos:end], pos)
		if e != nil {
			return nil, e
		}
		if t != nil {
			result = append(result, t)
		}
		pos += advance
	}
	return result, nil
}

func (l *Lexer) match(src *source.Source, rest []byte, pos int) (*Token, int, error) {
	m := l.re.FindSubmatchIndex(rest)
	if len(m) == 0 || m[0] != 0 || m[1] <= m[0] {
		return nil, 0, wrongCharError(src, pos)
	}

	for i := 2; i < len(m); i += 2 {
		if m[i] < 0 || i>>1 > len(l.types) {
			continue
		}
		tt := l.types[i>>1-1]
		text := string(rest[m[i]:m[i+1]])
		return NewToken(tt.Type, tt.TypeName, text, source.NewPos(src, pos+m[i])), m[1], nil
	}

	// insignificant lexeme
	return nil, m[1], nil
}
