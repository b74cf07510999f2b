// Package usage compiles usage text into a pattern program.
//
// Each non-blank line of the usage text is one alternative invocation form.
// The first whitespace-separated token of a line is the program name and is
// stripped; the rest compiles to one pattern tree. Lines are independent: the
// only shared input is the read-only option registry, so they are compiled
// concurrently and joined back in textual order.
package usage

import (
	"regexp"

	"github.com/argot-lang/argot/lexer"
	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
	"github.com/argot-lang/argot/source"
)

const (
	anyOptTok = "any-options"
	longTok   = "long-option"
	shortTok  = "short-cluster"
	argTok    = "arg-name"
	wordTok   = "word"
	opTok     = "op"
)

var usageLexer *lexer.Lexer

var placeholderRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: anyOptTok},
		{Type: 2, TypeName: longTok},
		{Type: 3, TypeName: shortTok},
		{Type: 4, TypeName: argTok},
		{Type: 5, TypeName: wordTok},
		{Type: 6, TypeName: opTok},
	}

	re := regexp.MustCompile(
		`^(?:[ \t\r]+|` +
			`(\[options\])|` +
			`(--[A-Za-z][A-Za-z0-9-]*(?:=\S+)?)|` +
			`(-[A-Za-z0-9]+)|` +
			`(<[A-Za-z][A-Za-z0-9_-]*>)|` +
			`([A-Za-z0-9][A-Za-z0-9-]*)|` +
			`(\.\.\.|[][()|]))`)

	usageLexer = lexer.New(re, tokenTypes)
}

type lineParser struct {
	tokens []*lexer.Token
	pos    int
	reg    *option.Registry
	end    source.Pos

	// descriptors named in this line; "[options]" must not shadow them
	named []*option.Desc
	anys  []*pattern.Node

	// option terms whose operand spelling is already documented, either
	// inline ("--out=FILE", "-fFILE") or by a consumed placeholder
	documented map[*pattern.Node]bool
}

func newLineParser(tokens []*lexer.Token, reg *option.Registry, end source.Pos) *lineParser {
	return &lineParser{
		tokens:     tokens,
		reg:        reg,
		end:        end,
		documented: map[*pattern.Node]bool{},
	}
}

// parseLine parses the token stream of one usage line (program name already
// stripped) into a pattern tree.
func (p *lineParser) parseLine() (*pattern.Node, error) {
	node, e := p.parseExpr()
	if e != nil {
		return nil, e
	}
	if !p.eof() {
		return nil, unexpectedTokenError(p.peek())
	}

	for _, any := range p.anys {
		any.Opts = p.named
	}
	return node, nil
}

// parseExpr parses a sequence of alternatives: "|" is left-associative and
// applies across whole sequences.
func (p *lineParser) parseExpr() (*pattern.Node, error) {
	left, e := p.parseSeq()
	if e != nil {
		return nil, e
	}
	for p.acceptOp("|") {
		right, e := p.parseSeq()
		if e != nil {
			return nil, e
		}
		left = pattern.NewAlternation(left, right)
	}
	return left, nil
}

// parseSeq parses whitespace-separated terms up to "|", a group close, or the
// end of the line, folding them into a sequence: Eps terms are dropped, a
// singleton collapses to its sole member.
func (p *lineParser) parseSeq() (*pattern.Node, error) {
	terms := make([]*pattern.Node, 0)
	for !p.eof() && !p.peekOp("|") && !p.peekOp(")") && !p.peekOp("]") {
		term, e := p.parseTerm(terms)
		if e != nil {
			return nil, e
		}

		// "..." binds to the term it follows; after an operand placeholder
		// collapsed into its option, it applies to that option term
		for p.acceptOp("...") {
			if term.Kind != pattern.Eps {
				term = pattern.NewRepeat(term)
			} else if i := lastTerm(terms); i >= 0 {
				terms[i] = pattern.NewRepeat(terms[i])
			}
		}
		terms = append(terms, term)
	}

	folded := terms[:0]
	for _, t := range terms {
		if t.Kind != pattern.Eps {
			folded = append(folded, t)
		}
	}
	switch len(folded) {
	case 0:
		return pattern.NewEps(), nil
	case 1:
		return folded[0], nil
	default:
		return pattern.NewSequence(folded), nil
	}
}

func (p *lineParser) parseTerm(terms []*pattern.Node) (*pattern.Node, error) {
	t := p.next()

	switch t.TypeName() {
	case anyOptTok:
		node := pattern.NewAnyOpt(p.reg)
		p.anys = append(p.anys, node)
		return node, nil

	case longTok:
		return p.parseLong(t)

	case shortTok:
		return p.parseShorts(t, terms)

	case argTok:
		return p.parsePlaceholder(t.Text()[1:len(t.Text())-1], terms), nil

	case wordTok:
		if placeholderRe.MatchString(t.Text()) {
			return p.parsePlaceholder(t.Text(), terms), nil
		}
		return pattern.NewCmd(t.Text()), nil

	case opTok:
		switch t.Text() {
		case "(":
			return p.parseGroup(")", pattern.NewRequired)
		case "[":
			return p.parseGroup("]", pattern.NewOptional)
		}
	}
	return nil, unexpectedTokenError(t)
}

func (p *lineParser) parseGroup(closing string, wrap func(*pattern.Node) *pattern.Node) (*pattern.Node, error) {
	inner, e := p.parseExpr()
	if e != nil {
		return nil, e
	}
	if p.eof() {
		return nil, unexpectedEndError(p.end, closing)
	}
	if !p.acceptOp(closing) {
		return nil, unexpectedTokenError(p.peek())
	}
	return wrap(inner), nil
}

func (p *lineParser) parseLong(t *lexer.Token) (*pattern.Node, error) {
	name := t.Text()[2:]
	hasOperandDoc := false
	for i, c := range name {
		if c == '=' {
			name = name[:i]
			hasOperandDoc = true
			break
		}
	}

	d, e := p.reg.Long(name)
	if e != nil {
		return nil, ambiguousOptionError(t, name)
	}
	if d == nil {
		return nil, unknownLongOptionError(t, name)
	}
	if hasOperandDoc && !d.HasOperand {
		return nil, operandNotAllowedError(t, name)
	}

	node := pattern.NewLong(d)
	if hasOperandDoc {
		p.documented[node] = true
	}
	p.named = append(p.named, d)
	return node, nil
}

// parseShorts resolves the letters of a short cluster. A letter whose option
// takes an operand terminates the scan unless it is the last one: the
// remaining text is the inline operand spelling, not further options.
// Adjacent clusters within one sequence slot merge into a single node.
func (p *lineParser) parseShorts(t *lexer.Token, terms []*pattern.Node) (*pattern.Node, error) {
	descs := make([]*option.Desc, 0, len(t.Text())-1)
	inlineOperand := false
	runes := []rune(t.Text()[1:])
	for i, c := range runes {
		d, has := p.reg.Short(c)
		if !has {
			return nil, unknownShortOptionError(t, c)
		}
		descs = append(descs, d)
		p.named = append(p.named, d)
		if d.HasOperand && i < len(runes)-1 {
			inlineOperand = true
			break
		}
	}

	if i := lastTerm(terms); i >= 0 && terms[i].Kind == pattern.Shorts {
		last := terms[i]
		for _, d := range descs {
			last.Merge(d)
		}
		if inlineOperand {
			p.documented[last] = true
		}
		return pattern.NewEps(), nil
	}

	node := pattern.NewShorts(descs)
	if inlineOperand {
		p.documented[node] = true
	}
	return node, nil
}

// parsePlaceholder handles an upper-case word or an angle-bracketed name.
// When the preceding term is an option that takes an operand and has no
// documented operand spelling yet, the placeholder is that spelling and
// folds away; otherwise it is an independent positional.
func (p *lineParser) parsePlaceholder(name string, terms []*pattern.Node) *pattern.Node {
	var last *pattern.Node
	if i := lastTerm(terms); i >= 0 {
		last = terms[i]
	}
	if last != nil && !p.documented[last] {
		var d *option.Desc
		switch last.Kind {
		case pattern.Shorts:
			d = last.Opts[len(last.Opts)-1]
		case pattern.Long:
			d = last.Opts[0]
		}
		if d != nil && d.HasOperand {
			p.documented[last] = true
			return pattern.NewEps()
		}
	}
	return pattern.NewArg(name)
}

// lastTerm returns the index of the last non-Eps term, or -1.
func lastTerm(terms []*pattern.Node) int {
	for i := len(terms) - 1; i >= 0; i-- {
		if terms[i].Kind != pattern.Eps {
			return i
		}
	}
	return -1
}

func (p *lineParser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *lineParser) peek() *lexer.Token {
	return p.tokens[p.pos]
}

func (p *lineParser) next() *lexer.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *lineParser) peekOp(text string) bool {
	return !p.eof() && p.peek().TypeName() == opTok && p.peek().Text() == text
}

func (p *lineParser) acceptOp(text string) bool {
	if p.peekOp(text) {
		p.pos++
		return true
	}
	return false
}
