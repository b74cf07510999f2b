// Package option defines option descriptors and the option registry.
//
// The registry is built once, before usage text is compiled, and stays
// read-only for the whole lifetime of the compiled program: both the usage
// compiler and the argument matcher resolve option spellings through it.
package option

import (
	"strings"

	"github.com/argot-lang/argot"
)

// Error codes used by option:
const (
	// AmbiguousOptionError indicates that a long option prefix matches more than one descriptor.
	AmbiguousOptionError = argot.OptionErrors + iota

	// RedefinedOptionError indicates that a spelling is registered twice.
	RedefinedOptionError

	// BadOptionLineError indicates an options section line that cannot be parsed.
	BadOptionLineError
)

// Desc describes a single option. Desc is immutable once registered.
type Desc struct {
	// Short contains the short option rune or 0.
	Short rune

	// Long contains the long option name without the leading dashes or empty string.
	Long string

	// HasOperand reports whether the option takes an operand.
	HasOperand bool

	// Operand contains the documented operand name or empty string.
	Operand string

	// Default contains the documented default operand value or empty string.
	Default string
}

// Name returns the canonical binding name: the long name if present,
// the short rune otherwise.
func (d *Desc) Name() string {
	if d.Long != "" {
		return d.Long
	}
	return string(d.Short)
}

func ambiguousOptionError(name string, names []string) *argot.Error {
	return argot.FormatError(AmbiguousOptionError, "option --%s is ambiguous: --%s", name, strings.Join(names, ", --"))
}

func redefinedOptionError(spelling string) *argot.Error {
	return argot.FormatError(RedefinedOptionError, "option %s already registered", spelling)
}

// Registry resolves option spellings to descriptors.
// All writes happen during construction; afterwards Registry is read-only and
// safe for concurrent use.
type Registry struct {
	descs  []*Desc
	shorts map[rune]*Desc
	longs  map[string]*Desc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		shorts: make(map[rune]*Desc),
		longs:  make(map[string]*Desc),
	}
}

// Add registers a descriptor. Returns argot.Error if one of its spellings is
// already taken.
func (r *Registry) Add(d *Desc) error {
	if d.Short != 0 {
		if _, has := r.shorts[d.Short]; has {
			return redefinedOptionError("-" + string(d.Short))
		}
	}
	if d.Long != "" {
		if _, has := r.longs[d.Long]; has {
			return redefinedOptionError("--" + d.Long)
		}
	}

	r.descs = append(r.descs, d)
	if d.Short != 0 {
		r.shorts[d.Short] = d
	}
	if d.Long != "" {
		r.longs[d.Long] = d
	}
	return nil
}

// Short resolves a short option rune.
func (r *Registry) Short(c rune) (*Desc, bool) {
	d, has := r.shorts[c]
	return d, has
}

// Long resolves a long option name (without dashes). An exact match wins;
// otherwise a unique prefix resolves to its only candidate. Returns nil, nil
// for an unknown name and nil, argot.Error when the prefix is ambiguous.
func (r *Registry) Long(name string) (*Desc, error) {
	if d, has := r.longs[name]; has {
		return d, nil
	}

	var found *Desc
	var names []string
	for _, d := range r.descs {
		if d.Long != "" && strings.HasPrefix(d.Long, name) {
			found = d
			names = append(names, d.Long)
		}
	}
	if len(names) > 1 {
		return nil, ambiguousOptionError(name, names)
	}
	return found, nil
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []*Desc {
	res := make([]*Desc, len(r.descs))
	copy(res, r.descs)
	return res
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.descs)
}
