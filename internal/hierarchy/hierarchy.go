// Package hierarchy lays out dotted namespace names as a tree for the
// sidebar. The output is a flat node sequence carrying the geometry the
// templates need to draw indentation and connector lines.
package hierarchy

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/refdoc/internal/util/sets"
)

// Node is one row of the rendered namespace tree. Depth is the number of dot
// separated segments in Name. Height is the number of strictly deeper nodes
// that follow before the next sibling-or-ancestor row, which fixes the length
// of the vertical connector. Branch reports whether the connector continues
// downward to a following sibling.
type Node struct {
	Name   string
	Depth  int
	Height int
	Branch bool
}

// Tail returns the last name segment, the part shown next to the connector.
func (n Node) Tail() string {
	if i := strings.LastIndex(n.Name, "."); i >= 0 {
		return n.Name[i+1:]
	}
	return n.Name
}

// Build computes the tree layout for a set of dotted names. Ancestor prefixes
// missing from the input become synthetic rows so the tree never skips a
// level. The sequence is the lexicographic name order with each name's
// prefixes expanded in place, first occurrence winning.
func Build(names []string) []Node {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	seen := sets.New[string]()
	var nodes []Node
	for _, name := range sorted {
		for _, prefix := range prefixes(name) {
			if seen.Has(prefix) {
				continue
			}
			seen.Add(prefix)
			nodes = append(nodes, Node{
				Name:  prefix,
				Depth: strings.Count(prefix, ".") + 1,
			})
		}
	}

	for i := range nodes {
		nodes[i].Height = lookaheadHeight(nodes, i)
		nodes[i].Branch = i+1 < len(nodes) && nodes[i+1].Depth == nodes[i].Depth
	}
	return nodes
}

// prefixes expands a dotted name into its cumulative path prefixes,
// shallowest first: "a.b.c" yields "a", "a.b", "a.b.c".
func prefixes(name string) []string {
	segments := strings.Split(name, ".")
	out := make([]string, len(segments))
	for i := range segments {
		out[i] = strings.Join(segments[:i+1], ".")
	}
	return out
}

// lookaheadHeight counts the run of strictly deeper nodes following i. The
// run ends at the first node at the same depth or above, the boundary the
// connector line has to reach.
func lookaheadHeight(nodes []Node, i int) int {
	depth := nodes[i].Depth
	count := 0
	for _, n := range nodes[i+1:] {
		if n.Depth <= depth {
			break
		}
		count++
	}
	return count
}
