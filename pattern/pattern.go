// Package pattern defines the compiled representation of a usage line.
//
// A usage line compiles to a tree of Nodes. The node set is closed: Kind
// enumerates every variant and each operation dispatches over it with an
// exhaustive switch, so the grammar cannot grow behind the engine's back.
//
// A Node mixes two lifetimes. The topology (kind, names, descriptor lists,
// children) is fixed at compile time and shared between matches; the
// consumption state (what has been accounted for so far) belongs to a single
// match call. Callers that match concurrently must work on clones, see Clone.
package pattern

import (
	"strings"

	"github.com/argot-lang/argot/option"
)

// Kind tags a Node variant.
type Kind int

const (
	// Eps matches nothing; identity element of sequencing.
	Eps Kind = iota

	// Arg is a positional placeholder; binds the literal token.
	Arg

	// Cmd is a fixed command word; matches only an exact token.
	Cmd

	// Shorts is a merged cluster of short options.
	Shorts

	// Long is a single long option.
	Long

	// AnyOpt is the "[options]" placeholder: any registered option not
	// otherwise named in the same line.
	AnyOpt

	// Optional is a bracket group: zero or one occurrence of the child.
	Optional

	// Required is a parenthesis group: the child must match if this branch is taken.
	Required

	// Sequence matches all children in order.
	Sequence

	// Alternation matches exactly one of its two children.
	Alternation

	// Repeat matches its child zero or more times.
	Repeat
)

// Bindings maps canonical option/argument names to matched values:
// bool for presence, string for a single capture, []string for repeated
// captures. One fresh map is used per match call.
type Bindings map[string]any

// Node is one vertex of a compiled pattern tree.
type Node struct {
	// Kind selects the variant.
	Kind Kind

	// Name contains the Arg placeholder name or the Cmd literal.
	Name string

	// Opts contains the cluster members for Shorts, the single descriptor
	// for Long, and the shadowed descriptors for AnyOpt.
	Opts []*option.Desc

	// Reg is the registry an AnyOpt node draws from.
	Reg *option.Registry

	// Rep marks a leaf that collects repeated captures.
	Rep bool

	// Children contains the group members: one node for Optional, Required,
	// and Repeat, two for Alternation, two or more for Sequence.
	Children []*Node

	// consumption state, one match call only
	matched bool
	used    []bool         // Shorts: per-descriptor
	seen    []*option.Desc // AnyOpt: descriptors accounted for
	branch  int            // Alternation: 0 uncommitted, 1 left, 2 right
	count   int            // Repeat: accepted tokens
}

// NewEps creates an empty node.
func NewEps() *Node {
	return &Node{Kind: Eps}
}

// NewArg creates a positional placeholder node.
func NewArg(name string) *Node {
	return &Node{Kind: Arg, Name: name}
}

// NewCmd creates a command word node.
func NewCmd(word string) *Node {
	return &Node{Kind: Cmd, Name: word}
}

// NewShorts creates a short option cluster node.
func NewShorts(descs []*option.Desc) *Node {
	return &Node{Kind: Shorts, Opts: descs, used: make([]bool, len(descs))}
}

// Merge adds a descriptor to a Shorts node; adjacent clusters in one usage
// line describe the same invocation slot.
func (n *Node) Merge(d *option.Desc) {
	n.Opts = append(n.Opts, d)
	n.used = append(n.used, false)
}

// NewLong creates a long option node.
func NewLong(d *option.Desc) *Node {
	return &Node{Kind: Long, Opts: []*option.Desc{d}}
}

// NewAnyOpt creates an "[options]" placeholder node. The compiler fills Opts
// with the descriptors named elsewhere in the line once the line is parsed.
func NewAnyOpt(reg *option.Registry) *Node {
	return &Node{Kind: AnyOpt, Reg: reg}
}

// NewOptional creates a bracket group node.
func NewOptional(child *Node) *Node {
	return &Node{Kind: Optional, Children: []*Node{child}}
}

// NewRequired creates a parenthesis group node.
func NewRequired(child *Node) *Node {
	return &Node{Kind: Required, Children: []*Node{child}}
}

// NewSequence creates a sequence node. The caller is expected to have dropped
// Eps members and unwrapped singletons already.
func NewSequence(children []*Node) *Node {
	return &Node{Kind: Sequence, Children: children}
}

// NewAlternation creates a binary alternation node.
func NewAlternation(left, right *Node) *Node {
	return &Node{Kind: Alternation, Children: []*Node{left, right}}
}

// NewRepeat creates a repetition node and marks every leaf of the child as
// collecting repeated captures.
func NewRepeat(child *Node) *Node {
	child.markRep()
	return &Node{Kind: Repeat, Children: []*Node{child}}
}

func (n *Node) markRep() {
	switch n.Kind {
	case Arg, Cmd, Shorts, Long, AnyOpt:
		n.Rep = true
	case Eps:
	default:
		for _, c := range n.Children {
			c.markRep()
		}
	}
}

// Clone returns a deep copy with fresh consumption state. The compile-time
// topology (descriptor lists, registry reference) stays shared.
func (n *Node) Clone() *Node {
	c := &Node{Kind: n.Kind, Name: n.Name, Opts: n.Opts, Reg: n.Reg, Rep: n.Rep}
	if n.used != nil {
		c.used = make([]bool, len(n.used))
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// snapshot deep-copies the node including its consumption state, so a
// speculative match can be undone.
func (n *Node) snapshot() *Node {
	c := &Node{
		Kind: n.Kind, Name: n.Name, Opts: n.Opts, Reg: n.Reg, Rep: n.Rep,
		matched: n.matched, branch: n.branch, count: n.count,
	}
	if n.used != nil {
		c.used = make([]bool, len(n.used))
		copy(c.used, n.used)
	}
	if n.seen != nil {
		c.seen = append([]*option.Desc(nil), n.seen...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.snapshot()
		}
	}
	return c
}

// String renders the tree in a compact prefix form, e.g.
// "(seq run (opt --verbose) NAME)". Used for diagnostics and tests.
func (n *Node) String() string {
	switch n.Kind {
	case Eps:
		return "()"
	case Arg, Cmd:
		return n.Name
	case Shorts:
		var b strings.Builder
		b.WriteByte('-')
		for _, d := range n.Opts {
			b.WriteRune(d.Short)
		}
		return b.String()
	case Long:
		return "--" + n.Opts[0].Long
	case AnyOpt:
		return "[options]"
	case Optional:
		return "(opt " + n.Children[0].String() + ")"
	case Required:
		return "(req " + n.Children[0].String() + ")"
	case Sequence:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return "(seq " + strings.Join(parts, " ") + ")"
	case Alternation:
		return "(alt " + n.Children[0].String() + " " + n.Children[1].String() + ")"
	case Repeat:
		return "(rep " + n.Children[0].String() + ")"
	}
	return "(?)"
}
