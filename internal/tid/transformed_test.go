package tid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprioriminer/apriori-miner/internal/dataset"
)

func TestFromTransactionsCopiesRawItems(t *testing.T) {
	ts := dataset.New([][]int{{1, 2}, {3}}, 4)
	td := FromTransactions(ts)
	require.Len(t, td.Rows(), 2)
	assert.Equal(t, []int{1, 2}, td.Rows()[0])
	assert.Equal(t, []int{3}, td.Rows()[1])
}

// TestCountAdvancesTransformedDatabase exercises the transformed-DB
// counting step: for transactions [{1,2,3},{1,2},{1,3}] and the pairs
// {1,2}, {1,3} and {2,3} joined from {1},{2},{3}, every row extends
// into at least one pair. As in RunAprioriTID, one pass-1 candidate is
// pushed per item id so that candidate index equals item id, which is
// what FromTransactions relies on.
func TestCountAdvancesTransformedDatabase(t *testing.T) {
	ts := dataset.New([][]int{{1, 2, 3}, {1, 2}, {1, 3}}, 4)
	c := New(1)
	for item := 0; item < ts.NumItems; item++ {
		c.Push([]int{item}, [2]int{noGenerator, noGenerator})
	}
	c.At(1).Count = 3
	c.At(2).Count = 2
	c.At(3).Count = 2
	c.UpdateTree()
	c.Join(func(*CandidateID) {})

	td := FromTransactions(ts)

	next := td.Count(c)

	require.Len(t, next.Rows(), 3, "every row contains at least one surviving pair")

	idx12 := findCandidate(c, []int{1, 2})
	idx13 := findCandidate(c, []int{1, 3})
	idx23 := findCandidate(c, []int{2, 3})
	require.NotEqual(t, -1, idx12)
	require.NotEqual(t, -1, idx13)
	require.NotEqual(t, -1, idx23)

	assert.Equal(t, uint64(2), c.At(idx12).Count, "{1,2} occurs in transactions 1 and 2")
	assert.Equal(t, uint64(2), c.At(idx13).Count, "{1,3} occurs in transactions 1 and 3")
	assert.Equal(t, uint64(1), c.At(idx23).Count, "{2,3} occurs only in transaction 1")
}

func TestCountDropsEmptyRows(t *testing.T) {
	ts := dataset.New([][]int{{1, 2}, {9, 10}}, 11)
	c := New(1)
	for item := 0; item < ts.NumItems; item++ {
		c.Push([]int{item}, [2]int{noGenerator, noGenerator})
	}
	c.At(1).Count = 5
	c.At(2).Count = 5
	c.UpdateTree()
	c.Join(func(*CandidateID) {})

	td := FromTransactions(ts)
	next := td.Count(c)
	assert.Len(t, next.Rows(), 1, "the second row has no surviving extension")
}

// TestCountAgreesAboveHashSetThreshold forces the large-row branch (row
// length over hashSetThreshold) and checks every pairwise extension in
// the single oversized row still gets counted once.
func TestCountAgreesAboveHashSetThreshold(t *testing.T) {
	c := New(1)
	ids := make([]int, 0, hashSetThreshold+5)
	for i := 0; i < hashSetThreshold+5; i++ {
		id := c.Push([]int{i}, [2]int{noGenerator, noGenerator})
		c.At(id).Count = 2
		ids = append(ids, id)
	}
	c.UpdateTree()
	c.Join(func(*CandidateID) {})

	row := append([]int(nil), ids...)
	td := &TransformedDatabase{rows: [][]int{row}}

	next := td.Count(c)
	require.Len(t, next.Rows(), 1)
	wantExtensions := (len(ids) * (len(ids) - 1)) / 2
	assert.Len(t, next.Rows()[0], wantExtensions)
}

func findCandidate(c *Candidates, items []int) int {
	idx := -1
	for i := 0; i < c.Len(); i++ {
		cand := c.At(i)
		if len(cand.Items) != len(items) {
			continue
		}
		match := true
		for j := range items {
			if cand.Items[j] != items[j] {
				match = false
				break
			}
		}
		if match {
			idx = i
			break
		}
	}
	return idx
}
