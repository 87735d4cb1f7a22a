package pairs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankedIncrementRequiresBothItemsFrequent(t *testing.T) {
	r := NewRanked([]int{10, 20, 30})

	assert.True(t, r.Increment(10, 20))
	assert.False(t, r.Increment(10, 99), "99 is not in F1")

	v, ok := r.Get(10, 20)
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)

	_, ok = r.Get(10, 99)
	assert.False(t, ok)
}

// TestRankedGetOrderIndependent: Get(i,j) after k Increment(i,j)
// calls returns k, and (i,j)/(j,i) address the same cell.
func TestRankedGetOrderIndependent(t *testing.T) {
	r := NewRanked([]int{1, 2, 3})
	for i := 0; i < 5; i++ {
		r.Increment(2, 1)
	}
	v1, _ := r.Get(1, 2)
	v2, _ := r.Get(2, 1)
	assert.Equal(t, uint64(5), v1)
	assert.Equal(t, v1, v2)
}

func TestRankedForEachTranslatesBackToItemIDs(t *testing.T) {
	r := NewRanked([]int{5, 9})
	r.Increment(5, 9)
	r.Increment(5, 9)

	var pairs [][2]int
	r.ForEach(func(pair [2]int, count uint64) {
		pairs = append(pairs, pair)
		assert.Equal(t, uint64(2), count)
	})
	assert.Equal(t, [][2]int{{5, 9}}, pairs)
}

func TestFullCounter(t *testing.T) {
	f := NewFull(4)
	f.Increment(1, 3)
	f.Increment(3, 1)
	assert.Equal(t, uint64(2), f.Get(1, 3))
}
