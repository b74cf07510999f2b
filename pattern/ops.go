package pattern

import (
	"github.com/argot-lang/argot/option"
)

// The four node operations. The matcher resolves spellings and operands
// through the registry before dispatching, so the tree only ever sees
// descriptor identities plus an already-extracted operand value.

// MatchShort tries to account for one resolved rune of a short option
// cluster token. operand is the extracted operand value, empty for options
// without one. Reports whether this node or a descendant accepted it.
func (n *Node) MatchShort(d *option.Desc, operand string, b Bindings) bool {
	return n.matchOption(d, operand, b)
}

// MatchLong tries to account for one resolved long option token.
// Reports whether this node or a descendant accepted it.
func (n *Node) MatchLong(d *option.Desc, operand string, b Bindings) bool {
	return n.matchOption(d, operand, b)
}

// An option is matched by descriptor identity, so a usage line naming
// --verbose also accounts for its registered -v spelling and vice versa.
func (n *Node) matchOption(d *option.Desc, operand string, b Bindings) bool {
	switch n.Kind {
	case Eps, Arg, Cmd:
		return false

	case Shorts:
		for i, o := range n.Opts {
			if o != d || n.used[i] {
				continue
			}
			n.used[i] = true
			n.bindOption(d, operand, b)
			return true
		}
		return false

	case Long:
		if n.Opts[0] != d || n.matched {
			return false
		}
		n.matched = true
		n.bindOption(d, operand, b)
		return true

	case AnyOpt:
		if n.shadowed(d) {
			return false
		}
		for _, o := range n.seen {
			if o == d {
				return false
			}
		}
		n.seen = append(n.seen, d)
		n.bindOption(d, operand, b)
		return true

	case Optional, Required:
		return n.Children[0].matchOption(d, operand, b)

	case Sequence:
		// options are not tied to a position: every term gets a chance
		for _, c := range n.Children {
			if c.matchOption(d, operand, b) {
				return true
			}
		}
		return false

	case Alternation:
		return n.matchBranch(func(c *Node) bool { return c.matchOption(d, operand, b) })

	case Repeat:
		return n.matchRepeat(func(c *Node) bool { return c.matchOption(d, operand, b) })
	}
	return false
}

// MatchArg tries to account for one bare token as a positional or command.
// Reports whether this node or a descendant accepted it.
func (n *Node) MatchArg(token string, b Bindings) bool {
	switch n.Kind {
	case Eps, Shorts, Long, AnyOpt:
		return false

	case Arg:
		if n.matched {
			return false
		}
		n.matched = true
		bindValue(b, n.Name, token, n.Rep)
		return true

	case Cmd:
		if token != n.Name || n.matched {
			return false
		}
		n.matched = true
		b[n.Name] = true
		return true

	case Optional, Required:
		return n.Children[0].MatchArg(token, b)

	case Sequence:
		// positionals determine order: a term that still needs input and
		// cannot be left behind blocks the rest of the sequence
		for _, c := range n.Children {
			if c.MatchArg(token, b) {
				return true
			}
			if !c.CanFill() {
				return false
			}
		}
		return false

	case Alternation:
		return n.matchBranch(func(c *Node) bool { return c.MatchArg(token, b) })

	case Repeat:
		return n.matchRepeat(func(c *Node) bool { return c.MatchArg(token, b) })
	}
	return false
}

// matchBranch delegates to the committed alternation branch, or tries left
// then right and commits the branch that accepts.
func (n *Node) matchBranch(try func(*Node) bool) bool {
	switch n.branch {
	case 1:
		return try(n.Children[0])
	case 2:
		return try(n.Children[1])
	}
	if try(n.Children[0]) {
		n.branch = 1
		return true
	}
	if try(n.Children[1]) {
		n.branch = 2
		return true
	}
	return false
}

// matchRepeat delegates to the child; when a complete child declines, its
// consumption state is reset and the token is offered once more.
func (n *Node) matchRepeat(try func(*Node) bool) bool {
	c := n.Children[0]
	if try(c) {
		n.count++
		return true
	}
	if n.count == 0 || !c.CanFill() {
		return false
	}
	saved := c.snapshot()
	c.reset()
	if try(c) {
		n.count++
		return true
	}
	n.Children[0] = saved
	return false
}

// CanFill reports whether the node can reach a satisfied state with no more
// input: options and untouched optional groups fill trivially, positionals
// and commands only once matched. CanFill is pure, it never writes bindings
// and never changes consumption state.
func (n *Node) CanFill() bool {
	switch n.Kind {
	case Eps, Shorts, Long, AnyOpt:
		return true
	case Arg, Cmd:
		return n.matched
	case Optional:
		return !n.Children[0].touched() || n.Children[0].CanFill()
	case Required:
		return n.Children[0].CanFill()
	case Sequence:
		for _, c := range n.Children {
			if !c.CanFill() {
				return false
			}
		}
		return true
	case Alternation:
		switch n.branch {
		case 1:
			return n.Children[0].CanFill()
		case 2:
			return n.Children[1].CanFill()
		}
		return n.Children[0].CanFill() || n.Children[1].CanFill()
	case Repeat:
		return n.count == 0 || n.Children[0].CanFill()
	}
	return false
}

// touched reports whether any token was accounted for in this subtree.
func (n *Node) touched() bool {
	switch n.Kind {
	case Eps:
		return false
	case Arg, Cmd, Long:
		return n.matched
	case AnyOpt:
		return len(n.seen) > 0
	case Shorts:
		for _, u := range n.used {
			if u {
				return true
			}
		}
		return false
	case Repeat:
		return n.count > 0 || n.Children[0].touched()
	default:
		for _, c := range n.Children {
			if c.touched() {
				return true
			}
		}
		return false
	}
}

// reset clears the consumption state of the subtree. Bindings written so far
// are kept; Repeat relies on that when collecting repeated captures.
func (n *Node) reset() {
	n.matched = false
	n.branch = 0
	n.count = 0
	n.seen = nil
	for i := range n.used {
		n.used[i] = false
	}
	for _, c := range n.Children {
		c.reset()
	}
}

// FillDefaults binds a default value for every name mentioned in the subtree
// that is still absent from b: false for flags and commands, an empty list
// for repeated captures, the registry default for operand options that
// document one. Called once on the winning line after input is exhausted.
func (n *Node) FillDefaults(b Bindings) {
	switch n.Kind {
	case Eps:
	case Arg:
		if _, has := b[n.Name]; !has && n.Rep {
			b[n.Name] = []string{}
		}
	case Cmd:
		if _, has := b[n.Name]; !has {
			b[n.Name] = false
		}
	case Shorts, Long:
		for _, d := range n.Opts {
			n.fillOption(d, b)
		}
	case AnyOpt:
		for _, d := range n.Reg.All() {
			if !n.shadowed(d) {
				n.fillOption(d, b)
			}
		}
	default:
		for _, c := range n.Children {
			c.FillDefaults(b)
		}
	}
}

func (n *Node) shadowed(d *option.Desc) bool {
	for _, o := range n.Opts {
		if o == d {
			return true
		}
	}
	return false
}

func (n *Node) fillOption(d *option.Desc, b Bindings) {
	if _, has := b[d.Name()]; has {
		return
	}
	switch {
	case !d.HasOperand:
		b[d.Name()] = false
	case n.Rep:
		b[d.Name()] = []string{}
	case d.Default != "":
		b[d.Name()] = d.Default
	}
}

func (n *Node) bindOption(d *option.Desc, operand string, b Bindings) {
	if d.HasOperand {
		bindValue(b, d.Name(), operand, n.Rep)
	} else {
		b[d.Name()] = true
	}
}

func bindValue(b Bindings, name, value string, rep bool) {
	if rep {
		list, _ := b[name].([]string)
		b[name] = append(list, value)
	} else {
		b[name] = value
	}
}
