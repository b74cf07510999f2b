package usage

import (
	"golang.org/x/sync/errgroup"

	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
	"github.com/argot-lang/argot/source"
)

// Program is a compiled usage text: one pattern tree per usage line, in
// textual order, plus the registry the lines were compiled against.
// A Program is immutable and safe to reuse across any number of matches.
type Program struct {
	// Lines contains the root node of each compiled usage line.
	Lines []*pattern.Node

	// Registry is the option registry shared by compilation and matching.
	Registry *option.Registry

	// Text contains the original usage text, kept for diagnostics.
	Text string
}

type lineSpan struct {
	start, end int
}

// Compile compiles a usage section body against a registry. Every non-blank
// line is one alternative invocation form; its leading program-name token is
// stripped. Lines compile concurrently; the first malformed line fails the
// whole compile with a position-carrying error.
func Compile(text string, reg *option.Registry) (*Program, error) {
	src := source.New("usage", []byte(text))
	spans := lineSpans(src)
	if len(spans) == 0 {
		return nil, emptyUsageError()
	}

	lines := make([]*pattern.Node, len(spans))
	var g errgroup.Group
	for i, span := range spans {
		i, span := i, span
		g.Go(func() error {
			node, e := compileLine(src, span, reg)
			lines[i] = node
			return e
		})
	}
	if e := g.Wait(); e != nil {
		return nil, e
	}

	return &Program{Lines: lines, Registry: reg, Text: text}, nil
}

func compileLine(src *source.Source, span lineSpan, reg *option.Registry) (*pattern.Node, error) {
	tokens, e := usageLexer.Scan(src, span.start, span.end)
	if e != nil {
		return nil, e
	}
	if len(tokens) == 0 || tokens[0].TypeName() != wordTok {
		return nil, noProgramNameError(source.NewPos(src, span.start))
	}

	p := newLineParser(tokens[1:], reg, source.NewPos(src, span.end))
	return p.parseLine()
}

func lineSpans(src *source.Source) []lineSpan {
	content := src.Content()
	var spans []lineSpan
	start := 0
	for pos := 0; pos <= len(content); pos++ {
		if pos < len(content) && content[pos] != '\n' {
			continue
		}
		if !blank(content[start:pos]) {
			spans = append(spans, lineSpan{start, pos})
		}
		start = pos + 1
	}
	return spans
}

func blank(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}
