package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildExpandsAndOrders(t *testing.T) {
	nodes := Build([]string{"my.other", "my.lib.core", "my.lib.util.io"})

	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	require.Equal(t, []string{
		"my",
		"my.lib",
		"my.lib.core",
		"my.lib.util",
		"my.lib.util.io",
		"my.other",
	}, names)
}

func TestDepthMatchesSegmentCount(t *testing.T) {
	nodes := Build([]string{"a.b.c", "a.d", "x"})
	for _, n := range nodes {
		require.Equal(t, strings.Count(n.Name, ".")+1, n.Depth, n.Name)
	}
}

func TestNodeCountEqualsDistinctPrefixes(t *testing.T) {
	names := []string{"a.b.c", "a.b.d", "a.e", "f.g"}
	nodes := Build(names)

	distinct := map[string]struct{}{}
	for _, name := range names {
		segs := strings.Split(name, ".")
		for i := range segs {
			distinct[strings.Join(segs[:i+1], ".")] = struct{}{}
		}
	}
	require.Len(t, nodes, len(distinct))
}

func TestHeightCountsDeeperRun(t *testing.T) {
	nodes := Build([]string{"my.other", "my.lib.core", "my.lib.util.io"})
	byName := map[string]Node{}
	for _, n := range nodes {
		byName[n.Name] = n
	}

	// Everything after "my" is deeper until the sequence ends.
	require.Equal(t, 5, byName["my"].Height)
	// my.lib is followed by my.lib.core, my.lib.util, my.lib.util.io before
	// my.other closes the run at depth 2.
	require.Equal(t, 3, byName["my.lib"].Height)
	// my.lib.core meets its sibling my.lib.util immediately.
	require.Equal(t, 0, byName["my.lib.core"].Height)
	require.Equal(t, 1, byName["my.lib.util"].Height)
	require.Equal(t, 0, byName["my.lib.util.io"].Height)
	require.Equal(t, 0, byName["my.other"].Height)
}

func TestHeightZeroWhenNextRowIsShallower(t *testing.T) {
	nodes := Build([]string{"a.b.c", "x"})
	// Sequence: a, a.b, a.b.c, x. The deep leaf is followed by a depth-1
	// row, so its connector terminates at once.
	require.Equal(t, "a.b.c", nodes[2].Name)
	require.Equal(t, 0, nodes[2].Height)
}

func TestBranchMarksFollowingSibling(t *testing.T) {
	nodes := Build([]string{"a.b", "a.c", "d"})
	// Sequence: a, a.b, a.c, d.
	require.False(t, nodes[0].Branch)
	require.True(t, nodes[1].Branch)
	require.False(t, nodes[2].Branch)
	require.False(t, nodes[len(nodes)-1].Branch)
}

func TestTail(t *testing.T) {
	require.Equal(t, "core", Node{Name: "my.lib.core"}.Tail())
	require.Equal(t, "solo", Node{Name: "solo"}.Tail())
}

func TestBuildEmptyInput(t *testing.T) {
	require.Empty(t, Build(nil))
}
