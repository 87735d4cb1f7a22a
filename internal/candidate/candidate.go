// Package candidate generates Ck from Fk-1: join itemsets sharing a
// common (k-2)-prefix, then drop any join result that has a
// non-frequent (k-1)-subset.
package candidate

import "github.com/aprioriminer/apriori-miner/internal/trie"

// Generate joins prev (Fk-1) against itself and prunes any candidate
// with a non-frequent (k-1)-subset, returning the survivors as a fresh
// Counter ready for the next counting pass.
func Generate(prev *trie.Set) *trie.Counter {
	raw := trie.NewCounter()
	prev.Join(raw)

	result := trie.NewCounter()
	raw.ForEach(func(path []int, _ uint64) {
		if survives(prev, path) {
			result.Insert(path)
		}
	})
	return result
}

// survives checks every (k-1)-subset of v other than the two used to
// build it (those are frequent by construction) against prev. v has
// length k; the two subsets formed by dropping the last or
// second-to-last item are the join's own generators and are skipped.
func survives(prev *trie.Set, v []int) bool {
	if len(v) <= 2 {
		return true
	}
	pruner := append([]int(nil), v[1:]...)
	if !prev.Contains(pruner) {
		return false
	}
	for i := 0; i < len(pruner)-2; i++ {
		pruner[i] = v[i]
		if !prev.Contains(pruner) {
			return false
		}
	}
	return true
}
