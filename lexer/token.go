package lexer

import (
	"github.com/argot-lang/argot/source"
)

// Token is a single lexeme fetched from a source span.
// It implements argot.SourcePos.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates a new Token at the given position.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

// Type returns the token type.
func (t *Token) Type() int {
	return t.tokenType
}

// TypeName returns the token type name.
func (t *Token) TypeName() string {
	return t.typeName
}

// Text returns the token text.
func (t *Token) Text() string {
	return t.text
}

// Pos returns the token position.
func (t *Token) Pos() source.Pos {
	return t.pos
}

// SourceName returns the name of the source this token was fetched from.
func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Line returns the 1-based line number of the token.
func (t *Token) Line() int {
	return t.pos.Line()
}

// Col returns the 1-based column number of the token.
func (t *Token) Col() int {
	return t.pos.Col()
}
