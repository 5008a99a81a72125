package graphutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PandaAwAke/PropertyGraph/graphutil"
)

func TestReachable_FollowsForwardEdges(t *testing.T) {
	adj := map[int][]int{
		1: {2, 3},
		2: {4},
		3: {4},
		4: {},
		5: {1},
	}
	got := graphutil.Reachable(1, func(n int) []int { return adj[n] })
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, keys(got))
}

func TestReachable_CyclesTerminate(t *testing.T) {
	adj := map[int][]int{1: {2}, 2: {1}}
	got := graphutil.Reachable(1, func(n int) []int { return adj[n] })
	assert.ElementsMatch(t, []int{1, 2}, keys(got))
}

func TestReachableFromAny_UnionsStarts(t *testing.T) {
	adj := map[int][]int{1: {2}, 3: {4}, 2: {}, 4: {}}
	got := graphutil.ReachableFromAny([]int{1, 3}, func(n int) []int { return adj[n] })
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, keys(got))
}

func TestFingerprint_DeterministicAndSensitiveToInput(t *testing.T) {
	a, err := graphutil.Fingerprint([]byte("node-1"))
	require.NoError(t, err)
	b, err := graphutil.Fingerprint([]byte("node-1"))
	require.NoError(t, err)
	c, err := graphutil.Fingerprint([]byte("node-2"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func keys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
