package tid

import (
	"github.com/aprioriminer/apriori-miner/internal/dataset"
	"github.com/aprioriminer/apriori-miner/internal/trie"
)

// TransformedDatabase holds, per surviving transaction, the list of
// (k-1)-candidate ids it contains — replacing the raw item list once
// AprioriTID switches from scanning items to scanning candidate ids.
type TransformedDatabase struct {
	rows [][]int
}

// Rows returns the current rows (read-only; callers must not mutate).
func (td *TransformedDatabase) Rows() [][]int { return td.rows }

// FromTransactions seeds the first transformation directly from the
// raw transaction set (pass 1's candidates are just item ids, so no
// translation is needed yet).
func FromTransactions(ts *dataset.TransactionSet) *TransformedDatabase {
	rows := make([][]int, len(ts.Transactions))
	for i, tx := range ts.Transactions {
		rows[i] = append([]int(nil), tx...)
	}
	return &TransformedDatabase{rows: rows}
}

// Transition rewrites a raw transaction set into candidate-id rows
// using transition (a lookup for the depth-n candidates), dropping
// transactions that contain none.
func Transition(ts *dataset.TransactionSet, transition *trie.Transition, depth int) *TransformedDatabase {
	td := &TransformedDatabase{}
	for _, tx := range ts.Transactions {
		var row []int
		transition.CountFn(tx, depth, func(id int) {
			row = append(row, id)
		})
		if len(row) == 0 {
			continue
		}
		td.rows = append(td.rows, row)
	}
	return td
}

// hashSetThreshold is the row-size cutover between a linear scan and a
// hash-set membership test when looking up "is the other generator
// present in this row". Both branches are semantically identical; the
// cutover only affects which is faster.
const hashSetThreshold = 200

// Count advances the transformed database one level: for every row,
// walk its candidate ids, and for each one follow its extensions,
// keeping extensions whose other generator is also present in the
// row. Candidates that picked up a new occurrence have their count in
// c bumped. Returns the next level's TransformedDatabase (rows that
// matched at least one extension).
func (td *TransformedDatabase) Count(c *Candidates) *TransformedDatabase {
	next := &TransformedDatabase{}
	for _, row := range td.rows {
		var matched []int
		if len(row) > hashSetThreshold {
			present := make(map[int]struct{}, len(row))
			for _, n := range row {
				present[n] = struct{}{}
			}
			matched = extendRow(c, row, func(other int) bool {
				_, ok := present[other]
				return ok
			})
		} else {
			matched = extendRow(c, row, func(other int) bool {
				return containsInt(row, other)
			})
		}
		if len(matched) == 0 {
			continue
		}
		for _, id := range matched {
			c.all[id].Count++
		}
		next.rows = append(next.rows, matched)
	}
	return next
}

func extendRow(c *Candidates, row []int, present func(other int) bool) []int {
	var matched []int
	for _, n := range row {
		cand := c.all[n]
		for ext := range cand.Extensions {
			extended := c.all[ext]
			other := extended.Generators[1]
			if extended.Generators[0] != n {
				other = extended.Generators[0]
			}
			if present(other) {
				matched = append(matched, ext)
			}
		}
	}
	return matched
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
