package usage

import (
	"github.com/argot-lang/argot"
	"github.com/argot-lang/argot/lexer"
)

// Error codes used by usage:
const (
	// UnexpectedTokenError indicates a usage line token that fits no grammar rule at its position.
	UnexpectedTokenError = argot.GrammarErrors + iota

	// UnexpectedEndError indicates a usage line ending inside an unclosed group.
	UnexpectedEndError

	// UnknownShortOptionError indicates a short option letter absent from the registry.
	UnknownShortOptionError

	// UnknownLongOptionError indicates a long option name absent from the registry.
	UnknownLongOptionError

	// AmbiguousOptionError indicates a long option name matching more than one registered option.
	AmbiguousOptionError

	// OperandNotAllowedError indicates an "=" operand on an option that takes none.
	OperandNotAllowedError

	// NoProgramNameError indicates a usage line that does not start with a program name word.
	NoProgramNameError

	// EmptyUsageError indicates usage text without a single usage line.
	EmptyUsageError
)

func unexpectedTokenError(t *lexer.Token) *argot.Error {
	return argot.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q", t.Text())
}

func unexpectedEndError(pos argot.SourcePos, expected string) *argot.Error {
	return argot.FormatErrorPos(pos, UnexpectedEndError, "unexpected end of usage line, expecting %q", expected)
}

func unknownShortOptionError(t *lexer.Token, c rune) *argot.Error {
	return argot.FormatErrorPos(t, UnknownShortOptionError, "unknown option -%c", c)
}

func unknownLongOptionError(t *lexer.Token, name string) *argot.Error {
	return argot.FormatErrorPos(t, UnknownLongOptionError, "unknown option --%s", name)
}

func ambiguousOptionError(t *lexer.Token, name string) *argot.Error {
	return argot.FormatErrorPos(t, AmbiguousOptionError, "option --%s is ambiguous", name)
}

func operandNotAllowedError(t *lexer.Token, name string) *argot.Error {
	return argot.FormatErrorPos(t, OperandNotAllowedError, "option --%s does not take an operand", name)
}

func noProgramNameError(pos argot.SourcePos) *argot.Error {
	return argot.FormatErrorPos(pos, NoProgramNameError, "usage line must start with a program name")
}

func emptyUsageError() *argot.Error {
	return argot.FormatError(EmptyUsageError, "usage text contains no usage lines")
}
