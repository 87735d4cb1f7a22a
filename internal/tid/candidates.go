// Package tid implements AprioriTID's per-run bookkeeping: candidates
// carry generator/extension links instead of raw items once the
// database has been transformed, and counting walks the transformed
// database instead of re-scanning raw transactions.
package tid

import (
	"github.com/aprioriminer/apriori-miner/internal/apperr"
	"github.com/aprioriminer/apriori-miner/internal/trie"
)

// noGenerator marks an absent generator link (pass-1 candidates have
// none).
const noGenerator = -1

// CandidateID is one candidate itemset plus the bookkeeping AprioriTID
// needs: which two (k-1)-candidates generated it, and which
// k-candidates extend it (so counting can walk from a (k-1)-candidate
// present in a transaction straight to its extensions).
type CandidateID struct {
	Items      []int
	Generators [2]int
	Extensions map[int]struct{}
	Count      uint64
}

func newCandidateID(items []int, gen [2]int) *CandidateID {
	return &CandidateID{Items: items, Generators: gen, Extensions: make(map[int]struct{})}
}

// Candidates holds every candidate generated so far across all levels,
// a cumulative presence tree of the ones that turned out frequent (for
// pruning the next join), and the half-open index range of the
// current level's candidates.
type Candidates struct {
	all        []*CandidateID
	tree       *trie.Set
	prevStart  int
	prevEnd    int
	minSupport uint64
}

// New returns an empty Candidates for the given minimum support count.
func New(minSupport uint64) *Candidates {
	return &Candidates{tree: trie.NewSet(), minSupport: minSupport}
}

// Push appends a new candidate, registering it as an extension of its
// first generator (if any). Registering only the first generator is
// deliberate, not an oversight: by the time a transaction's translated
// candidate set is walked for counting, both generators of any truly
// present candidate are guaranteed present too (anti-monotonicity), so
// one back-link is enough to discover the extension and avoids
// double-counting it through both.
func (c *Candidates) Push(items []int, generators [2]int) int {
	id := len(c.all)
	c.prevEnd++
	cand := newCandidateID(items, generators)
	if g := generators[0]; g != noGenerator {
		c.all[g].Extensions[id] = struct{}{}
	}
	c.all = append(c.all, cand)
	return id
}

// At returns the candidate at index i.
func (c *Candidates) At(i int) *CandidateID { return c.all[i] }

// Len returns the total number of candidates tracked across all
// levels.
func (c *Candidates) Len() int { return len(c.all) }

// CurrLen returns the size of the current level's range.
func (c *Candidates) CurrLen() int { return c.prevEnd - c.prevStart }

// CurrEmpty reports whether the current level's range is empty (the
// loop-termination signal AprioriTID uses).
func (c *Candidates) CurrEmpty() bool { return c.CurrLen() == 0 }

// ForEachRange visits every candidate in the current level's range.
func (c *Candidates) ForEachRange(f func(*CandidateID)) {
	for i := c.prevStart; i < c.prevEnd; i++ {
		f(c.all[i])
	}
}

// UpdateTree inserts every current-range candidate meeting minSupport
// into the cumulative presence tree, so the next join can prune
// against it.
func (c *Candidates) UpdateTree() {
	c.ForEachRange(func(cand *CandidateID) {
		if cand.Count >= c.minSupport {
			c.tree.Insert(cand.Items)
		}
	})
}

func (c *Candidates) prune(v []int) bool {
	pruner := append([]int(nil), v[1:]...)
	if !c.tree.Contains(pruner) {
		return true
	}
	if len(pruner) < 2 {
		return false
	}
	for i := 0; i < len(pruner)-2; i++ {
		pruner[i] = v[i]
		if !c.tree.Contains(pruner) {
			return true
		}
	}
	return false
}

// Join groups the current range's candidates by (k-2)-prefix, pairs up
// shared-prefix candidates, prunes any result with a non-frequent
// subset, and pushes survivors as the next level — becoming the new
// current range. f is invoked once per new candidate pushed.
func (c *Candidates) Join(f func(*CandidateID)) {
	type group struct {
		prefix []int
		lasts  []int
		ids    []int
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for idx := c.prevStart; idx < c.prevEnd; idx++ {
		cand := c.all[idx]
		if cand.Count < c.minSupport {
			continue
		}
		items := cand.Items
		prefix := items[:len(items)-1]
		key := encodeKey(prefix)
		g, ok := groups[key]
		if !ok {
			g = &group{prefix: append([]int(nil), prefix...)}
			groups[key] = g
			order = append(order, key)
		}
		g.lasts = append(g.lasts, items[len(items)-1])
		g.ids = append(g.ids, idx)
	}

	c.prevStart = c.prevEnd

	for _, key := range order {
		g := groups[key]
		prefix := append([]int(nil), g.prefix...)
		for i := 0; i < len(g.lasts); i++ {
			for j := i + 1; j < len(g.lasts); j++ {
				lo, hi := g.lasts[i], g.lasts[j]
				id1, id2 := g.ids[i], g.ids[j]
				if lo > hi {
					lo, hi = hi, lo
					id1, id2 = id2, id1
				}
				candidate := append(append([]int(nil), prefix...), lo, hi)
				if c.prune(candidate) {
					continue
				}
				id := c.Push(candidate, [2]int{id1, id2})
				f(c.all[id])
			}
		}
	}
}

// ToVec encodes the current range's counts as a flat, position-aligned
// slice. Both ends must agree on the range's candidate order, which
// holds because Count Distribution always has the coordinator build
// and broadcast the candidate list before any worker counts it.
func (c *Candidates) ToVec() []uint64 {
	out := make([]uint64, 0, c.CurrLen())
	c.ForEachRange(func(cand *CandidateID) {
		out = append(out, cand.Count)
	})
	return out
}

// AddFromVec adds v element-wise into the current range's counts.
func (c *Candidates) AddFromVec(v []uint64) error {
	if len(v) != c.CurrLen() {
		return apperr.New(apperr.CodeInvariantViolation, "candidate count vector length mismatch")
	}
	i := 0
	for idx := c.prevStart; idx < c.prevEnd; idx++ {
		c.all[idx].Count += v[i]
		i++
	}
	return nil
}

// NewCandidateSpec carries one pushed candidate's shape (items plus
// already-resolved generator ids) across a Count Distribution
// rendezvous, so a worker replica can reproduce the coordinator's
// exact Candidates indexing without re-deriving it through its own
// Join or prune step.
type NewCandidateSpec struct {
	Items      []int
	Generators [2]int
}

// ExportRange captures the current level's range as specs, for
// broadcasting to distributed worker replicas after a Join.
func (c *Candidates) ExportRange() []NewCandidateSpec {
	specs := make([]NewCandidateSpec, 0, c.CurrLen())
	c.ForEachRange(func(cand *CandidateID) {
		specs = append(specs, NewCandidateSpec{
			Items:      append([]int(nil), cand.Items...),
			Generators: cand.Generators,
		})
	})
	return specs
}

// ImportRange pushes specs verbatim as the next level's range and
// returns the index the first one landed at. Used by a distributed
// worker replica to mirror a coordinator's already-computed Join (or
// initial pass-1 seeding) without redoing the join or prune step
// itself — both sides push in the same order, so ids line up exactly.
func (c *Candidates) ImportRange(specs []NewCandidateSpec) int {
	start := len(c.all)
	c.prevStart = c.prevEnd
	for _, s := range specs {
		c.Push(s.Items, s.Generators)
	}
	return start
}

func encodeKey(path []int) string {
	b := make([]byte, 0, len(path)*4)
	for _, v := range path {
		b = appendInt(b, v)
		b = append(b, ',')
	}
	return string(b)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
