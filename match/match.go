// Package match binds a command line to a compiled usage program.
//
// Match walks argv left to right, classifies every token as a long option,
// a short option cluster, or a positional, and offers it to every usage
// line still in the running. Lines that cannot account for a token drop
// out; the first remaining line that is satisfied when argv ends supplies
// the resulting bindings.
package match

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
	"github.com/argot-lang/argot/usage"
)

// errNoLine is the internal signal that every usage line dropped out; Match
// converts it to a MismatchError carrying the usage text.
var errNoLine = errors.New("no usage line left")

// line pairs one usage alternative with its private consumption state.
type line struct {
	root  *pattern.Node
	binds pattern.Bindings
	alive bool
}

// Match binds argv (the program name already stripped) against p. Every
// token after a lone "--" separator is treated as a positional. On success
// it returns the bindings of the first usage line, in source order, that
// accounts for all of argv.
func Match(p *usage.Program, argv []string) (pattern.Bindings, error) {
	lines := make([]*line, len(p.Lines))
	for i, root := range p.Lines {
		lines[i] = &line{root: root.Clone(), binds: pattern.Bindings{}, alive: true}
	}

	posOnly := false
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		var e error
		switch {
		case !posOnly && tok == "--":
			posOnly = true
		case !posOnly && strings.HasPrefix(tok, "--"):
			i, e = matchLong(lines, p.Registry, argv, i)
		case !posOnly && optionLike(p.Registry, tok):
			i, e = matchShorts(lines, p.Registry, argv, i)
		default:
			e = matchArg(lines, tok)
		}
		if e == errNoLine {
			return nil, mismatchError(p.Text)
		}
		if e != nil {
			return nil, e
		}
	}

	for _, l := range lines {
		if l.alive && l.root.CanFill() {
			l.root.FillDefaults(l.binds)
			return l.binds, nil
		}
	}
	return nil, mismatchError(p.Text)
}

// matchLong resolves a "--name[=value]" token and its operand, then offers
// the pair to every live line. It returns the index of the last argv token
// consumed.
func matchLong(lines []*line, reg *option.Registry, argv []string, i int) (int, error) {
	name, inline, hasInline := strings.Cut(argv[i][2:], "=")
	d, e := reg.Long(name)
	if e != nil {
		return i, e
	}
	if d == nil {
		return i, unknownLongOptionError(name)
	}

	operand := ""
	switch {
	case d.HasOperand && hasInline:
		operand = inline
	case d.HasOperand:
		if i+1 >= len(argv) || optionLike(reg, argv[i+1]) {
			return i, missingOperandError("--" + d.Long)
		}
		i++
		operand = argv[i]
	case hasInline:
		return i, operandNotAllowedError(name)
	}

	return i, offer(lines, func(l *line) bool {
		return l.root.MatchLong(d, operand, l.binds)
	})
}

// matchShorts walks a "-xyz" cluster rune by rune. A letter that takes an
// operand consumes the rest of the cluster (an "=" right after the letter is
// dropped) or, at the end of the cluster, the next argv token. It returns
// the index of the last argv token consumed.
func matchShorts(lines []*line, reg *option.Registry, argv []string, i int) (int, error) {
	cluster := argv[i][1:]
	for ci, c := range cluster {
		d, ok := reg.Short(c)
		if !ok {
			return i, unknownShortOptionError(c)
		}

		operand := ""
		if d.HasOperand {
			rest := cluster[ci+utf8.RuneLen(c):]
			switch {
			case rest != "":
				operand = strings.TrimPrefix(rest, "=")
			case i+1 < len(argv) && !optionLike(reg, argv[i+1]):
				i++
				operand = argv[i]
			default:
				return i, missingOperandError("-" + string(c))
			}
		}

		e := offer(lines, func(l *line) bool {
			return l.root.MatchShort(d, operand, l.binds)
		})
		if e != nil {
			return i, e
		}
		if d.HasOperand {
			break
		}
	}
	return i, nil
}

// offer broadcasts one resolved option to every live line. Lines that cannot
// account for it drop out; errNoLine means nobody could.
func offer(lines []*line, accept func(*line) bool) error {
	any := false
	for _, l := range lines {
		if !l.alive {
			continue
		}
		if accept(l) {
			any = true
		} else {
			l.alive = false
		}
	}
	if !any {
		return errNoLine
	}
	return nil
}

// matchArg broadcasts one positional token. Lines that cannot place it drop
// out silently as long as some other line can; when every line declines, the
// token is surplus if a line was already satisfied, otherwise nothing fits.
func matchArg(lines []*line, tok string) error {
	fillable := false
	for _, l := range lines {
		if l.alive && l.root.CanFill() {
			fillable = true
			break
		}
	}

	e := offer(lines, func(l *line) bool {
		return l.root.MatchArg(tok, l.binds)
	})
	if e == errNoLine && fillable {
		return unexpectedArgumentError(tok)
	}
	return e
}

// optionLike reports whether a token would be classified as an option, which
// disqualifies it from serving as an operand. Lone dashes and negative
// numbers pass as operands, except that a registered short option spelling
// stays an option even when it happens to parse as a number.
func optionLike(reg *option.Registry, tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if c, _ := utf8.DecodeRuneInString(tok[1:]); c != '-' {
		if _, has := reg.Short(c); has {
			return true
		}
	}
	return !numeric(tok)
}

// numeric reports whether a dash-prefixed token spells a negative number.
// Only a digit or a dot may follow the dash, so "-inf" and "-nan" stay
// option spellings.
func numeric(tok string) bool {
	if len(tok) < 2 || (tok[1] != '.' && (tok[1] < '0' || tok[1] > '9')) {
		return false
	}
	_, e := strconv.ParseFloat(tok, 64)
	return e == nil
}
