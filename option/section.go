package option

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/argot-lang/argot"
)

var defaultRe = regexp.MustCompile(`(?i)\[default: (.*)\]`)

func badOptionLineError(line string) *argot.Error {
	return argot.FormatError(BadOptionLineError, "cannot parse option line %q", line)
}

// Sections extracts help-text sections with the given title ("usage",
// "options", ...). A section starts at a line containing the title followed by
// a colon and extends over the following indented lines. Returned strings
// contain the section bodies (the text after the colon), one per occurrence.
func Sections(title, text string) []string {
	re := regexp.MustCompile(`(?im)^([^\n]*` + title + `[^\n]*\n?(?:[ \t].*?(?:\n|$))*)`)
	var res []string
	for _, s := range re.FindAllString(text, -1) {
		_, body, found := strings.Cut(s, ":")
		if !found {
			continue
		}
		res = append(res, strings.TrimRight(body, " \t\n"))
	}
	return res
}

// ParseDefaults parses the body of an options section into descriptors.
// Each entry starts at a line whose first non-blank rune is a dash and may
// continue over further indented description lines; the option spellings are
// separated from the description by at least two spaces. A "[default: ...]"
// clause in the description sets the operand default.
func ParseDefaults(text string) ([]*Desc, error) {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			entries = append(entries, trimmed)
		} else if trimmed != "" && len(entries) > 0 {
			entries[len(entries)-1] += " " + trimmed
		}
	}

	res := make([]*Desc, 0, len(entries))
	for _, entry := range entries {
		d, e := parseEntry(entry)
		if e != nil {
			return nil, e
		}
		res = append(res, d)
	}
	return res, nil
}

func parseEntry(entry string) (*Desc, error) {
	spec, description, _ := strings.Cut(entry, "  ")
	d := &Desc{}

	spec = strings.NewReplacer(",", " ", "=", " ").Replace(spec)
	for _, part := range strings.Fields(spec) {
		switch {
		case strings.HasPrefix(part, "--"):
			d.Long = part[2:]
			if d.Long == "" {
				return nil, badOptionLineError(entry)
			}
		case strings.HasPrefix(part, "-"):
			r, size := utf8.DecodeRuneInString(part[1:])
			if size == 0 || len(part) != size+1 {
				return nil, badOptionLineError(entry)
			}
			d.Short = r
		default:
			d.HasOperand = true
			d.Operand = part
		}
	}
	if d.Short == 0 && d.Long == "" {
		return nil, badOptionLineError(entry)
	}

	if d.HasOperand {
		if m := defaultRe.FindStringSubmatch(description); m != nil {
			d.Default = m[1]
		}
	}
	return d, nil
}

// FromHelp builds a registry from every options section of a help text.
func FromHelp(help string) (*Registry, error) {
	r := NewRegistry()
	for _, section := range Sections("options", help) {
		descs, e := ParseDefaults(section)
		if e != nil {
			return nil, e
		}
		for _, d := range descs {
			if e = r.Add(d); e != nil {
				return nil, e
			}
		}
	}
	return r, nil
}
