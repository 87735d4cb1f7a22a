package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeInsertGet(t *testing.T) {
	n := New(0)
	created := n.Insert([]int{1, 2, 3}, 42)
	assert.True(t, created)

	v, ok := n.Get([]int{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = n.Get([]int{1, 2})
	assert.True(t, ok, "an intermediate node resolves like any other node")
	assert.Equal(t, 0, v, "an intermediate node holds the zero value")

	_, ok = n.Get([]int{9})
	assert.False(t, ok)
}

func TestNodeInsertReuse(t *testing.T) {
	n := New(0)
	require.True(t, n.Insert([]int{1, 2}, 1))
	// Re-inserting along an existing path creates no new nodes.
	assert.False(t, n.Insert([]int{1, 2}, 2))
	v, ok := n.Get([]int{1, 2})
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestNodeContains(t *testing.T) {
	n := New(0)
	n.Insert([]int{1, 2}, 1)
	assert.True(t, n.Contains([]int{1, 2}))
	assert.False(t, n.Contains([]int{1, 3}))
	assert.True(t, n.Contains(nil), "root always resolves")
}

func TestNodeForEachVisitsEveryNode(t *testing.T) {
	n := New(0)
	n.Insert([]int{1}, 10)
	n.Insert([]int{1, 2}, 12)
	n.Insert([]int{3}, 30)

	seen := map[string]int{}
	n.ForEach(func(path []int, v int) {
		seen[key(path)] = v
	})

	assert.Equal(t, 0, seen[key(nil)])
	assert.Equal(t, 10, seen[key([]int{1})])
	assert.Equal(t, 12, seen[key([]int{1, 2})])
	assert.Equal(t, 30, seen[key([]int{3})])
}

func TestNodeForEachMutMutates(t *testing.T) {
	n := New(0)
	n.Insert([]int{1}, 1)
	n.Insert([]int{2}, 2)

	n.ForEachMut(func(path []int, v *int) {
		if len(path) == 1 {
			*v *= 10
		}
	})

	v1, _ := n.Get([]int{1})
	v2, _ := n.Get([]int{2})
	assert.Equal(t, 10, v1)
	assert.Equal(t, 20, v2)
}

func TestNodeCountFnEnumeratesMatchingSubsets(t *testing.T) {
	n := New(0)
	n.Insert([]int{1, 2}, 0)
	n.Insert([]int{1, 3}, 0)
	n.Insert([]int{2, 3}, 0)

	var matched [][]int
	n.CountFn([]int{1, 2, 3}, 2, func(path []int, v *int) {
		*v++
		matched = append(matched, append([]int(nil), path...))
	})

	assert.ElementsMatch(t, [][]int{{1, 2}, {1, 3}, {2, 3}}, matched)

	v, _ := n.Get([]int{1, 2})
	assert.Equal(t, 1, v)
}

func TestNodeCountFnRespectsDepthShorterThanTransaction(t *testing.T) {
	n := New(0)
	n.Insert([]int{5}, 0)

	var matched [][]int
	n.CountFn([]int{1, 2}, 1, func(path []int, v *int) {
		matched = append(matched, path)
	})
	assert.Empty(t, matched, "transaction doesn't contain candidate item 5")
}

func TestNodeFilter(t *testing.T) {
	n := New(0)
	n.Insert([]int{1}, 5)
	n.Insert([]int{2}, 1)
	n.Insert([]int{3}, 9)

	n.Filter(1, func(v int) bool { return v >= 5 })

	assert.True(t, n.Contains([]int{1}))
	assert.False(t, n.Contains([]int{2}))
	assert.True(t, n.Contains([]int{3}))
}

func TestCleanupRemovesAllSentinelSubtrees(t *testing.T) {
	n := New(false)
	n.Insert([]int{1}, true)
	n.Insert([]int{2}, false)
	n.Insert([]int{3, 4}, false)

	Cleanup(n, false)

	assert.True(t, n.Contains([]int{1}))
	assert.False(t, n.Contains([]int{2}))
	assert.False(t, n.Contains([]int{3, 4}))
}

func key(path []int) string {
	s := ""
	for _, p := range path {
		s += string(rune('a' + p))
	}
	return s
}
