package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSetRoundTrip(t *testing.T) {
	s := NewSet()
	s.Insert([]int{1, 2})
	s.Insert([]int{1, 3})
	s.Insert([]int{2})

	data, err := SerializeSet(s)
	require.NoError(t, err)

	got := NewSet()
	require.NoError(t, MergeSet(got, data))

	assertSameSet(t, s, got)
}

func TestSerializeEmptySetRoundTrip(t *testing.T) {
	s := NewSet()
	data, err := SerializeSet(s)
	require.NoError(t, err)
	assert.Equal(t, []uint64{maxUint64ForTest}, data)

	got := NewSet()
	require.NoError(t, MergeSet(got, data))
	assert.True(t, got.IsEmpty())
}

func TestMergeSetOrsPresenceBits(t *testing.T) {
	a := NewSet()
	a.Insert([]int{1})
	dataA, err := SerializeSet(a)
	require.NoError(t, err)

	b := NewSet()
	b.Insert([]int{2})
	dataB, err := SerializeSet(b)
	require.NoError(t, err)

	merged := NewSet()
	require.NoError(t, MergeSet(merged, dataA))
	require.NoError(t, MergeSet(merged, dataB))

	assert.True(t, merged.Contains([]int{1}))
	assert.True(t, merged.Contains([]int{2}))
	assert.Equal(t, 2, merged.Len())
}

func TestSerializeCounterRoundTrip(t *testing.T) {
	c := NewCounter()
	c.Insert([]int{1, 2})
	c.Insert([]int{1, 3})
	c.Increment([]int{1, 2})
	c.Increment([]int{1, 2})
	c.Increment([]int{1, 3})

	data := SerializeCounter(c)

	got := NewCounter()
	got.Insert([]int{1, 2})
	got.Insert([]int{1, 3})
	require.NoError(t, MergeCounter(got, data))

	v12, _ := got.Get([]int{1, 2})
	v13, _ := got.Get([]int{1, 3})
	assert.Equal(t, uint64(2), v12)
	assert.Equal(t, uint64(1), v13)
}

// TestMergeCounterSumsAcrossPartials exercises the Count Distribution
// shape directly: two independently-counted partitions' serialized
// counters must sum, not overwrite, when merged into a coordinator's
// counter built over the same candidate skeleton.
func TestMergeCounterSumsAcrossPartials(t *testing.T) {
	skeleton := func() *Counter {
		c := NewCounter()
		c.Insert([]int{1})
		c.Insert([]int{2})
		return c
	}

	partA := skeleton()
	partA.Increment([]int{1})
	partA.Increment([]int{1})

	partB := skeleton()
	partB.Increment([]int{1})
	partB.Increment([]int{2})

	coordinator := skeleton()
	require.NoError(t, MergeCounter(coordinator, SerializeCounter(partA)))
	require.NoError(t, MergeCounter(coordinator, SerializeCounter(partB)))

	v1, _ := coordinator.Get([]int{1})
	v2, _ := coordinator.Get([]int{2})
	assert.Equal(t, uint64(3), v1)
	assert.Equal(t, uint64(1), v2)
}

func TestSerializeSetRejectsOverflowItem(t *testing.T) {
	s := NewSet()
	overflowing := leafBit
	s.Insert([]int{int(overflowing)})
	_, err := SerializeSet(s)
	assert.Error(t, err)
}

const maxUint64ForTest = ^uint64(0)

func assertSameSet(t *testing.T, a, b *Set) {
	t.Helper()
	var got [][]int
	a.ForEach(func(path []int) { got = append(got, append([]int(nil), path...)) })
	for _, p := range got {
		assert.True(t, b.Contains(p), "missing path %v", p)
	}
	assert.Equal(t, a.Len(), b.Len())
}
