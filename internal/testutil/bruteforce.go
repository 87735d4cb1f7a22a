// Package testutil holds the brute-force reference oracle and the
// seeded random dataset generator shared by internal/level's and
// internal/distributed's test suites. It lives outside any single
// _test.go file so the oracle isn't copied twice; nothing here is a
// production path.
package testutil

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/aprioriminer/apriori-miner/internal/dataset"
)

// BruteForce enumerates every subset of the item universe 0..numItems
// and returns the itemsets (as sorted ascending slices) whose support
// across ts meets minSupport. Only usable for small numItems; it
// exists purely as a reference oracle.
func BruteForce(ts *dataset.TransactionSet, minSupport uint64, numItems int) [][]int {
	sets := make([]map[int]struct{}, len(ts.Transactions))
	for i, tx := range ts.Transactions {
		m := make(map[int]struct{}, len(tx))
		for _, item := range tx {
			m[item] = struct{}{}
		}
		sets[i] = m
	}

	var out [][]int
	for mask := 1; mask < (1 << uint(numItems)); mask++ {
		var items []int
		for item := 0; item < numItems; item++ {
			if mask&(1<<uint(item)) != 0 {
				items = append(items, item)
			}
		}
		var support uint64
		for _, m := range sets {
			if isSubset(items, m) {
				support++
			}
		}
		if support >= minSupport {
			out = append(out, items)
		}
	}
	return out
}

func isSubset(items []int, tx map[int]struct{}) bool {
	for _, item := range items {
		if _, ok := tx[item]; !ok {
			return false
		}
	}
	return true
}

// Key renders an ascending itemset as a comparable string, for set
// comparisons between two frequent-itemset families regardless of
// discovery order.
func Key(items []int) string {
	cp := append([]int(nil), items...)
	sort.Ints(cp)
	return fmt.Sprint(cp)
}

// Keys renders every itemset in a collection via Key, for set-equality
// assertions.
func Keys(itemsets [][]int) map[string]bool {
	out := make(map[string]bool, len(itemsets))
	for _, it := range itemsets {
		out[Key(it)] = true
	}
	return out
}

// RandomDataset builds a deterministic pseudo-random transaction set
// over numItems items, numTx transactions each of length in
// [1, maxLen]. Seeded explicitly so every test run sees the same
// database.
func RandomDataset(seed int64, numItems, numTx, maxLen int) *dataset.TransactionSet {
	r := rand.New(rand.NewSource(seed))
	transactions := make([][]int, 0, numTx)
	for i := 0; i < numTx; i++ {
		length := 1 + r.Intn(maxLen)
		seen := make(map[int]struct{}, length)
		for len(seen) < length && len(seen) < numItems {
			seen[r.Intn(numItems)] = struct{}{}
		}
		tx := make([]int, 0, len(seen))
		for item := range seen {
			tx = append(tx, item)
		}
		sort.Ints(tx)
		transactions = append(transactions, tx)
	}
	return dataset.New(transactions, numItems)
}
