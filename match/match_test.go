package match

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/argot-lang/argot"
	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
	"github.com/argot-lang/argot/usage"
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

func compile(t *testing.T, usageText string) *usage.Program {
	t.Helper()
	p, e := usage.Compile(usageText, testRegistry(t))
	if e != nil {
		t.Fatal(e)
	}
	return p
}

func checkBindings(t *testing.T, p *usage.Program, argv []string, expected pattern.Bindings) {
	t.Helper()
	binds, e := Match(p, argv)
	if e != nil {
		t.Errorf("argv %v: unexpected error: %s", argv, e.Error())
		return
	}
	if !reflect.DeepEqual(binds, expected) {
		t.Errorf("argv %v: expected %v, got %v", argv, expected, binds)
	}
}

func checkErrorCode(t *testing.T, p *usage.Program, argv []string, code int) {
	t.Helper()
	_, e := Match(p, argv)
	if e == nil {
		t.Errorf("argv %v: error expected, got success", argv)
		return
	}
	pe, is := e.(*argot.Error)
	if !is {
		t.Errorf("argv %v: argot.Error expected, got \"%s\"", argv, e.Error())
		return
	}
	if pe.Code != code {
		t.Errorf("argv %v: expected error code %d, got %d", argv, code, pe.Code)
	}
}

func TestFlag(t *testing.T) {
	p := compile(t, "prog --verbose")
	checkBindings(t, p, []string{"--verbose"}, pattern.Bindings{"verbose": true})
	checkBindings(t, p, []string{}, pattern.Bindings{"verbose": false})
	checkBindings(t, p, []string{"-v"}, pattern.Bindings{"verbose": true})
}

func TestOperand(t *testing.T) {
	p := compile(t, "prog --out FILE")
	expected := pattern.Bindings{"out": "a.txt"}
	checkBindings(t, p, []string{"--out", "a.txt"}, expected)
	checkBindings(t, p, []string{"--out=a.txt"}, expected)
	checkBindings(t, p, []string{"-o", "a.txt"}, expected)
	checkBindings(t, p, []string{"-oa.txt"}, expected)
}

func TestShortCluster(t *testing.T) {
	p := compile(t, "prog -xvf")
	expected := pattern.Bindings{"x": true, "verbose": true, "f": "data"}
	checkBindings(t, p, []string{"-xvf", "data"}, expected)
	checkBindings(t, p, []string{"-xvfdata"}, expected)
	checkBindings(t, p, []string{"-xvf=data"}, expected)
	checkBindings(t, p, []string{"-x", "-v", "-f", "data"}, expected)
}

func TestUnknownOption(t *testing.T) {
	p := compile(t, "prog [options] NAME")
	checkErrorCode(t, p, []string{"--trace"}, UnknownLongOptionError)
	checkErrorCode(t, p, []string{"-z"}, UnknownShortOptionError)
	checkErrorCode(t, p, []string{"-xz", "a"}, UnknownShortOptionError)
}

func TestPrefixResolution(t *testing.T) {
	p := compile(t, "prog --verbose")
	checkBindings(t, p, []string{"--verb"}, pattern.Bindings{"verbose": true})

	q := compile(t, "prog [options]")
	checkErrorCode(t, q, []string{"--fo"}, option.AmbiguousOptionError)
}

func TestRepeatedPositional(t *testing.T) {
	p := compile(t, "prog FILE ...")
	checkBindings(t, p, []string{"a.txt", "b.txt", "c.txt"},
		pattern.Bindings{"FILE": []string{"a.txt", "b.txt", "c.txt"}})
	checkBindings(t, p, []string{}, pattern.Bindings{"FILE": []string{}})
}

func TestRepeatedOption(t *testing.T) {
	p := compile(t, "prog --out FILE ...")
	checkBindings(t, p, []string{"--out", "a", "--out=b"},
		pattern.Bindings{"out": []string{"a", "b"}})
	checkBindings(t, p, []string{}, pattern.Bindings{"out": []string{}})
}

func TestRepeatedGroup(t *testing.T) {
	p := compile(t, "prog (KEY VALUE)...")
	checkBindings(t, p, []string{"a", "b", "c", "d"},
		pattern.Bindings{"KEY": []string{"a", "c"}, "VALUE": []string{"b", "d"}})
	checkBindings(t, p, []string{"a", "b"},
		pattern.Bindings{"KEY": []string{"a"}, "VALUE": []string{"b"}})
	checkErrorCode(t, p, []string{"a"}, MismatchError)
	checkErrorCode(t, p, []string{"a", "b", "c"}, MismatchError)
}

func TestAlternativeLines(t *testing.T) {
	p := compile(t, "  prog run NAME\n  prog stop NAME\n")
	checkBindings(t, p, []string{"stop", "svc1"}, pattern.Bindings{"stop": true, "NAME": "svc1"})
	checkBindings(t, p, []string{"run", "svc1"}, pattern.Bindings{"run": true, "NAME": "svc1"})
	checkErrorCode(t, p, []string{"start", "svc1"}, MismatchError)
}

func TestCrossLineOptions(t *testing.T) {
	p := compile(t, "  prog run [-v]\n  prog stop\n")
	checkBindings(t, p, []string{"-v", "run"}, pattern.Bindings{"verbose": true, "run": true})
	checkBindings(t, p, []string{"stop"}, pattern.Bindings{"stop": true})
	checkErrorCode(t, p, []string{"stop", "-v"}, MismatchError)
}

func TestMissingOperand(t *testing.T) {
	p := compile(t, "prog --out FILE")
	checkErrorCode(t, p, []string{"--out"}, MissingOperandError)
	checkErrorCode(t, p, []string{"--out", "--verbose"}, MissingOperandError)
	q := compile(t, "prog -f VALUE")
	checkErrorCode(t, q, []string{"-f"}, MissingOperandError)
}

func TestOperandNotAllowed(t *testing.T) {
	p := compile(t, "prog --verbose")
	checkErrorCode(t, p, []string{"--verbose=yes"}, OperandNotAllowedError)
}

func TestSurplusArgument(t *testing.T) {
	p := compile(t, "prog NAME")
	checkErrorCode(t, p, []string{"a", "b"}, UnexpectedArgumentError)
}

func TestIncompleteLine(t *testing.T) {
	p := compile(t, "prog run NAME")
	checkErrorCode(t, p, []string{"run"}, MismatchError)
}

func TestSeparator(t *testing.T) {
	p := compile(t, "prog [-v] FILE")
	checkBindings(t, p, []string{"--", "-v"}, pattern.Bindings{"verbose": false, "FILE": "-v"})
	checkBindings(t, p, []string{"-v", "--", "--out"}, pattern.Bindings{"verbose": true, "FILE": "--out"})
}

func TestNegativeNumberOperand(t *testing.T) {
	p := compile(t, "prog --out FILE NAME")
	checkBindings(t, p, []string{"--out", "-3", "x"}, pattern.Bindings{"out": "-3", "NAME": "x"})
	checkBindings(t, p, []string{"-7.5", "--out=a"}, pattern.Bindings{"out": "a", "NAME": "-7.5"})

	// words after a dash are option spellings even when ParseFloat takes them
	checkErrorCode(t, p, []string{"--out", "-inf"}, MissingOperandError)
	q := compile(t, "prog NAME")
	checkErrorCode(t, q, []string{"-inf"}, UnknownShortOptionError)
	checkErrorCode(t, q, []string{"-nan"}, UnknownShortOptionError)
}

func TestDigitShortOption(t *testing.T) {
	r := option.NewRegistry()
	if e := r.Add(&option.Desc{Short: '1'}); e != nil {
		t.Fatal(e)
	}
	p, e := usage.Compile("prog [-1] [FILE]", r)
	if e != nil {
		t.Fatal(e)
	}
	checkBindings(t, p, []string{"-1"}, pattern.Bindings{"1": true})
	checkBindings(t, p, []string{"-2"}, pattern.Bindings{"1": false, "FILE": "-2"})
}

func TestOptionsPlaceholder(t *testing.T) {
	p := compile(t, "prog [options] PATH")
	checkBindings(t, p, []string{"-x", "p"}, pattern.Bindings{
		"x": true, "verbose": false, "force": false, "format": "json", "PATH": "p",
	})
	checkBindings(t, p, []string{"--format", "yaml", "p"}, pattern.Bindings{
		"x": false, "verbose": false, "force": false, "format": "yaml", "PATH": "p",
	})
	checkErrorCode(t, p, []string{"-x", "-x", "p"}, MismatchError)
}

func TestMismatchMentionsUsage(t *testing.T) {
	p := compile(t, "prog run NAME")
	_, e := Match(p, []string{"walk"})
	pe, is := e.(*argot.Error)
	if !is {
		t.Fatalf("argot.Error expected, got %v", e)
	}
	if pe.Code != MismatchError {
		t.Fatalf("expected error code %d, got %d", MismatchError, pe.Code)
	}
	if want := "prog run NAME"; !strings.Contains(pe.Message, want) {
		t.Errorf("expected message to contain %q, got %q", want, pe.Message)
	}
}

func TestMatchIsRepeatable(t *testing.T) {
	p := compile(t, "prog [options] NAME")
	for i := 0; i < 3; i++ {
		binds, e := Match(p, []string{"-v", "n" + strconv.Itoa(i)})
		if e != nil {
			t.Fatalf("round %d: %s", i, e.Error())
		}
		if binds["NAME"] != "n"+strconv.Itoa(i) {
			t.Errorf("round %d: stale state, got %v", i, binds["NAME"])
		}
	}
}
