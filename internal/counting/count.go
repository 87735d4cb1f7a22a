// Package counting implements the per-transaction counting pass: given
// a transaction and a trie of candidates, bump the count of every
// candidate that is a subset of the transaction. The pass picks per
// transaction between enumerating the transaction's own n-subsets
// (cheap when candidates outnumber those subsets) and walking the
// candidate trie checking each one against the transaction (cheap when
// there are few candidates relative to the transaction's subsets).
package counting

import (
	"math"

	"github.com/aprioriminer/apriori-miner/internal/trie"
)

// Count bumps every depth-n candidate in counter that is a subset of
// the sorted, deduplicated transaction d.
func Count(counter *trie.Counter, d []int, n int) {
	if len(d) < n {
		return
	}
	if float64(counter.Len())*float64(n) > combinationsEstimate(len(d), n) {
		enumerateCombinations(n, d, func(v []int) {
			counter.Increment(v)
		})
		return
	}
	counter.ForEachMut(func(v []int, c *uint64) {
		if len(v) < n {
			return
		}
		if containsSubsequence(v, d) {
			*c++
		}
	})
}

// combinationsEstimate approximates C(len(d), n) as a float via a
// partial factorial ratio, avoiding the full factorial and tolerating
// overflow to +Inf.
func combinationsEstimate(dLen, n int) float64 {
	hi := dLen
	lo := dLen - n + 1
	if n+1 > lo {
		lo = n + 1
	}
	acc := 1.0
	for x := lo; x <= hi; x++ {
		acc *= float64(x)
	}
	if !math.IsInf(acc, 0) {
		hi2 := dLen - n + 1
		if n+1 < hi2 {
			hi2 = n + 1
		}
		for x := 2; x < hi2; x++ {
			acc /= float64(x)
		}
	}
	return acc
}

// containsSubsequence reports whether v (ascending, deduplicated) is a
// subset of d (ascending, deduplicated), via a single forward merge
// pass over d.
func containsSubsequence(v, d []int) bool {
	i := 0
	for _, a := range v {
		found := false
		for i < len(d) {
			switch {
			case a < d[i]:
				return false
			case a == d[i]:
				i++
				found = true
			default:
				i++
				continue
			}
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// enumerateCombinations calls f with every ascending n-length
// combination drawn from d (ascending, deduplicated).
func enumerateCombinations(n int, d []int, f func(v []int)) {
	if n == 0 {
		f(nil)
		return
	}
	stack := make([]int, n)
	var helper func(i, start int)
	helper = func(i, start int) {
		if i >= n {
			f(stack)
			return
		}
		for j := start; j < len(d); j++ {
			stack[i] = d[j]
			helper(i+1, j+1)
		}
	}
	helper(0, 0)
}
