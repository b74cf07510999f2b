/*
Package argot is a docopt-style command-line grammar engine.

The usage text of a program is the grammar: each usage line describes one
alternative invocation form, and matching a concrete argument vector against
the compiled lines replaces hand-written flag handling.

Consists of subpackages:
  - cmd/argot: console utility matching an argument vector against a help text and printing the resulting bindings;
  - source: immutable text buffer with byte offset to line/column mapping;
  - lexer: lexical analyzer for usage lines;
  - option: option descriptors, the option registry, and help-text parsing ("Usage:" and "Options:" sections);
  - pattern: the compiled pattern tree and its matching operations;
  - usage: converts usage text to a compiled pattern program;
  - match: matches an argument vector against a compiled program.

Typical usage is:

1. Write the help text of the program: a "Usage:" section containing one
invocation pattern per line and an "Options:" section describing the options.

2. Build an option.Registry from the options section (or register descriptors
by hand) and compile the usage section with usage.Compile. Both happen once,
the compiled program is immutable.

3. For each invocation call match.Match with the program and the raw argument
vector, and read option, positional, and command values from the returned
bindings, or report the returned error.
*/
package argot

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by usage
	LexicalErrors = 101 // used by lexer
	OptionErrors  = 201 // used by option
	MatchErrors   = 301 // used by match
)

// Error is the error type used by argot subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains the name of the text that caused this error or empty string.
	SourceName string

	// Line contains line number in the source text or 0.
	Line int

	// Col contains column number in the source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns the source text name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
