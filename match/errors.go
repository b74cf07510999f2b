package match

import (
	"strings"

	"github.com/argot-lang/argot"
)

// Error codes used by match:
const (
	// UnknownShortOptionError indicates an argv short option absent from the registry.
	UnknownShortOptionError = argot.MatchErrors + iota

	// UnknownLongOptionError indicates an argv long option absent from the registry.
	UnknownLongOptionError

	// MissingOperandError indicates an option requiring an operand at the end
	// of argv or followed by an option-looking token.
	MissingOperandError

	// OperandNotAllowedError indicates an "=value" on an option that takes no operand.
	OperandNotAllowedError

	// UnexpectedArgumentError indicates a surplus bare token: no alternative
	// can take it, although at least one was already satisfied without it.
	UnexpectedArgumentError

	// MismatchError indicates that argv fits no alternative invocation form.
	// The message embeds the usage text for user-facing diagnostics.
	MismatchError
)

func unknownShortOptionError(c rune) *argot.Error {
	return argot.FormatError(UnknownShortOptionError, "unknown option -%c", c)
}

func unknownLongOptionError(name string) *argot.Error {
	return argot.FormatError(UnknownLongOptionError, "unknown option --%s", name)
}

func missingOperandError(spelling string) *argot.Error {
	return argot.FormatError(MissingOperandError, "option %s requires an operand", spelling)
}

func operandNotAllowedError(name string) *argot.Error {
	return argot.FormatError(OperandNotAllowedError, "option --%s does not take an operand", name)
}

func unexpectedArgumentError(token string) *argot.Error {
	return argot.FormatError(UnexpectedArgumentError, "unexpected argument %q", token)
}

func mismatchError(usage string) *argot.Error {
	return argot.FormatError(MismatchError, "arguments match no usage form, usage:\n%s", strings.TrimRight(usage, "\n"))
}
