// Package typesig models var usage signatures as tagged symbol trees. Trees
// arrive as nested YAML sequences, get their implied namespace qualifiers
// stripped, and render as s-expressions in the usage block.
package typesig

import (
	"fmt"
	"strings"
)

// Node is either a symbol leaf or an ordered list of child nodes.
type Node struct {
	Sym      string
	Children []Node
	list     bool
}

// Symbol returns a leaf node.
func Symbol(s string) Node { return Node{Sym: s} }

// List returns a list node with the given children. An empty list is valid.
func List(children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Children: children, list: true}
}

// IsList reports whether the node is a list rather than a symbol leaf.
func (n Node) IsList() bool { return n.list }

// Parse converts a YAML-decoded value into a signature tree. Sequences become
// list nodes, scalars become symbol leaves.
func Parse(v any) (Node, error) {
	switch t := v.(type) {
	case []any:
		children := make([]Node, 0, len(t))
		for _, el := range t {
			child, err := Parse(el)
			if err != nil {
				return Node{}, err
			}
			children = append(children, child)
		}
		return List(children...), nil
	case string:
		return Symbol(t), nil
	case int, int64, float64, bool:
		return Symbol(fmt.Sprint(t)), nil
	case nil:
		return Node{}, fmt.Errorf("signature tree contains a null node")
	default:
		return Node{}, fmt.Errorf("signature tree contains unsupported value of type %T", v)
	}
}

// ParseList converts a YAML sequence of signature trees.
func ParseList(v any) ([]Node, error) {
	if v == nil {
		return nil, nil
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("signatures must be a sequence, got %T", v)
	}
	nodes := make([]Node, 0, len(seq))
	for _, el := range seq {
		node, err := Parse(el)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// StripImplied returns a copy of the tree with qualified symbols shortened
// wherever the qualifier is in the implied set: "my.lib.core.frob" becomes
// "frob" when "my.lib.core" is implied. Qualifiers are matched longest-first
// on dot boundaries, so an implied "my.lib" never truncates "my.lib.core.frob"
// to "core.frob" when "my.lib.core" is also implied.
func StripImplied(n Node, implied []string) Node {
	if n.IsList() {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = StripImplied(c, implied)
		}
		return List(children...)
	}
	return Symbol(stripSym(n.Sym, implied))
}

func stripSym(sym string, implied []string) string {
	best := ""
	for _, prefix := range implied {
		if prefix == "" || len(prefix) <= len(best) {
			continue
		}
		if strings.HasPrefix(sym, prefix+".") {
			best = prefix
		}
	}
	if best == "" {
		return sym
	}
	return sym[len(best)+1:]
}

// String renders the tree as an s-expression. Leaves print their symbol,
// lists print space-joined children in parentheses.
func (n Node) String() string {
	if !n.IsList() {
		return n.Sym
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
