package usage

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/argot-lang/argot"
	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
)

func testRegistry(t *testing.T) *option.Registry {
	t.Helper()
	r := option.NewRegistry()
	descs := []*option.Desc{
		{Short: 'v', Long: "verbose"},
		{Short: 'o', Long: "out", HasOperand: true, Operand: "FILE"},
		{Short: 'x'},
		{Short: 'f', HasOperand: true, Operand: "VALUE"},
		{Long: "force"},
		{Long: "format", HasOperand: true, Operand: "NAME", Default: "json"},
	}
	for _, d := range descs {
		if e := r.Add(d); e != nil {
			t.Fatal(e)
		}
	}
	return r
}

func TestCompiledShapes(t *testing.T) {
	samples := []struct {
		text     string
		expected string
	}{
		{"prog --verbose", "--verbose"},
		{"prog --out FILE", "--out"},
		{"prog --out=FILE", "--out"},
		{"prog -xvf", "-xvf"},
		{"prog -x -v go", "(seq -xv go)"},
		{"prog [options] <path>", "(seq [options] path)"},
		{"prog --out FILE FILE", "(seq --out FILE)"},
		{"prog -f VALUE ...", "(rep -f)"},
		{"prog -x -f VALUE ...", "(rep -xf)"},
		{"prog (KEY VALUE)...", "(rep (req (seq KEY VALUE)))"},
		{"prog add | remove", "(alt add remove)"},
		{"prog (run | stop) [--verbose] NAME ...", "(seq (req (alt run stop)) (opt --verbose) (rep NAME))"},
		{"prog [-v] FILE ...", "(seq (opt -v) (rep FILE))"},
	}

	reg := testRegistry(t)
	for i, s := range samples {
		p, e := Compile(s.text, reg)
		if e != nil {
			t.Errorf("sample #%d: unexpected error: %s", i, e.Error())
			continue
		}
		got := p.Lines[0].String()
		if got != s.expected {
			t.Errorf("sample #%d: expected %s, got %s", i, s.expected, got)
		}
	}
}

func TestCompileLines(t *testing.T) {
	reg := testRegistry(t)
	p, e := Compile("  prog run NAME\n\n  prog stop NAME\n", reg)
	if e != nil {
		t.Fatal(e)
	}
	if len(p.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(p.Lines))
	}
	if p.Lines[0].String() != "(seq run NAME)" || p.Lines[1].String() != "(seq stop NAME)" {
		t.Errorf("lines out of order: %s, %s", p.Lines[0], p.Lines[1])
	}
}

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	eCode := strconv.Itoa(code)
	reg := testRegistry(t)
	for index, text := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := Compile(text, reg)

		if e == nil {
			t.Error(errPrefix + ": error expected, got success")
			continue
		}
		pe, is := e.(*argot.Error)
		if !is {
			t.Error(errPrefix + ": argot.Error expected, got \"" + e.Error() + "\"")
			continue
		}
		if pe.Code != code {
			t.Error(errPrefix + ": expected error code " + eCode + ", got " + strconv.Itoa(pe.Code))
		}
	}
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"prog )",
		"prog ...",
		"prog (run]",
		"prog [--verbose) FILE",
	}
	checkErrorCode(t, samples, UnexpectedTokenError)
}

func TestUnexpectedEnd(t *testing.T) {
	samples := []string{
		"prog (run",
		"prog [run NAME",
		"prog (run | stop",
	}
	checkErrorCode(t, samples, UnexpectedEndError)
}

func TestUnknownShortOption(t *testing.T) {
	samples := []string{
		"prog -z",
		"prog -xz",
	}
	checkErrorCode(t, samples, UnknownShortOptionError)
}

func TestUnknownLongOption(t *testing.T) {
	samples := []string{
		"prog --trace",
		"prog run --trace=yes",
	}
	checkErrorCode(t, samples, UnknownLongOptionError)
}

func TestAmbiguousOption(t *testing.T) {
	checkErrorCode(t, []string{"prog --fo"}, AmbiguousOptionError)
}

func TestOperandNotAllowed(t *testing.T) {
	checkErrorCode(t, []string{"prog --verbose=yes"}, OperandNotAllowedError)
}

func TestNoProgramName(t *testing.T) {
	samples := []string{
		"--verbose",
		"(run) NAME",
	}
	checkErrorCode(t, samples, NoProgramNameError)
}

func TestEmptyUsage(t *testing.T) {
	samples := []string{
		"",
		"   \n\t\n",
	}
	checkErrorCode(t, samples, EmptyUsageError)
}

func TestErrorPosition(t *testing.T) {
	reg := testRegistry(t)
	_, e := Compile("  prog run NAME\n  prog stop --trace\n", reg)
	pe, is := e.(*argot.Error)
	if !is {
		t.Fatalf("argot.Error expected, got %v", e)
	}
	if pe.Line != 2 || pe.Col != 13 {
		t.Errorf("expected line 2 col 13, got line %d col %d", pe.Line, pe.Col)
	}
}

func TestDeterminism(t *testing.T) {
	const text = "  prog [options] (run | stop) NAME ...\n  prog --out FILE\n"
	reg := testRegistry(t)

	first, e := Compile(text, reg)
	if e != nil {
		t.Fatal(e)
	}
	second, e := Compile(text, reg)
	if e != nil {
		t.Fatal(e)
	}

	diff := cmp.Diff(first.Lines, second.Lines,
		cmp.AllowUnexported(pattern.Node{}),
		cmp.Comparer(func(a, b *option.Registry) bool { return a == b }))
	if diff != "" {
		t.Errorf("compiled trees differ:\n%s", diff)
	}
}
