/*
argot is a console utility matching a command line against a docopt-style help text.
Usage is

	argot [-y] [-c <cmdline>] <help-file> [<arg> ...]

-y flag instructs argot to output YAML instead of JSON;

-c <cmdline> supplies the command line to match as a single shell-quoted string,
instead of the arguments following <help-file>;

<help-file> is the help text to compile, "-" reads it from standard input.

The help text must contain a "usage:" section and may contain "options:"
sections describing the program's options. argot compiles the usage section,
matches the given arguments against it, and prints the resulting bindings.
Exit status is 2 for bad arguments to argot itself, 3 for compile or match
errors.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"

	"github.com/argot-lang/argot/match"
	"github.com/argot-lang/argot/option"
	"github.com/argot-lang/argot/pattern"
	"github.com/argot-lang/argot/usage"
)

var (
	emitYaml bool
	cmdline  string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  argot [-y] [-c <cmdline>] <help-file> [<arg> ...]")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <help-file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\thelp text file name, \"-\" reads standard input")
	}

	flag.BoolVar(&emitYaml, "y", false, "output YAML instead of JSON")
	flag.StringVar(&cmdline, "c", "", "command line to match, as one shell-quoted string")
	flag.Parse()
	helpFileName := flag.Arg(0)
	if helpFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	help, e := readHelp(helpFileName)

	var argv []string
	if e == nil {
		if cmdline == "" {
			argv = flag.Args()[1:]
		} else {
			argv, e = shellwords.Parse(cmdline)
		}
	}

	var binds pattern.Bindings
	if e == nil {
		binds, e = run(help, argv)
	}

	var content []byte
	if e == nil {
		if emitYaml {
			content, e = yaml.Marshal(binds)
		} else {
			content, e = json.MarshalIndent(binds, "", "  ")
			content = append(content, '\n')
		}
	}

	if e != nil {
		color.NoColor = !isatty.IsTerminal(os.Stderr.Fd())
		color.New(color.FgRed).Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}
	os.Stdout.Write(content)
}

func readHelp(name string) (string, error) {
	if name == "-" {
		content, e := io.ReadAll(os.Stdin)
		return string(content), e
	}
	content, e := os.ReadFile(name)
	return string(content), e
}

func run(help string, argv []string) (pattern.Bindings, error) {
	reg, e := option.FromHelp(help)
	if e != nil {
		return nil, e
	}
	sections := option.Sections("usage", help)
	if len(sections) == 0 {
		return nil, fmt.Errorf("help text has no usage section")
	}
	prog, e := usage.Compile(sections[0], reg)
	if e != nil {
		return nil, e
	}
	return match.Match(prog, argv)
}
