// Package hybrid implements AprioriHybrid: run in plain-counter mode
// until candidate growth shrinks enough to be worth the translation
// cost, then switch permanently to AprioriTID's representation.
package hybrid

import (
	"github.com/aprioriminer/apriori-miner/internal/candidate"
	"github.com/aprioriminer/apriori-miner/internal/dataset"
	"github.com/aprioriminer/apriori-miner/internal/tid"
	"github.com/aprioriminer/apriori-miner/internal/trie"
)

// switchCeiling bounds the switch so a huge candidate set collapsing
// (merely because it started huge) doesn't trigger a translation that
// costs more than it saves.
const switchCeiling = 100_000

type mode int

const (
	modeApriori mode = iota
	modeTID
)

// Container holds either representation behind one interface: the
// trie-counter candidates-and-counts Apriori normally uses, or the
// generator-linked candidates-plus-transformed-database AprioriTID
// uses after the switch. Once switched, it never reverts.
type Container struct {
	mode        mode
	counter     *trie.Counter
	candidates  *tid.Candidates
	transformed *tid.TransformedDatabase

	minSupport uint64
	prevLen    int
}

// New starts a Container in Apriori mode, seeded with the already-
// counted pass-two counter.
func New(p2 *trie.Counter, minSupport uint64) *Container {
	return &Container{mode: modeApriori, counter: p2, minSupport: minSupport}
}

// ForEach visits every candidate at the level last run, with its
// count.
func (c *Container) ForEach(f func(items []int, count uint64)) {
	switch c.mode {
	case modeApriori:
		c.counter.ForEach(f)
	case modeTID:
		c.candidates.ForEachRange(func(cand *tid.CandidateID) {
			f(cand.Items, cand.Count)
		})
	}
}

// Run advances the container to depth n: Apriori mode filters the
// current counter to frequent itemsets, joins+counts the next level,
// and checks the shrinkage condition; if it fires, the whole container
// converts to TID mode (translating the database once) and never goes
// back. TID mode just delegates to Candidates.Join and
// TransformedDatabase.Count.
func (c *Container) Run(data *dataset.TransactionSet, n int) {
	switch c.mode {
	case modeApriori:
		c.runApriori(data, n)
	case modeTID:
		c.candidates.UpdateTree()
		c.candidates.Join(func(*tid.CandidateID) {})
		c.transformed = c.transformed.Count(c.candidates)
	}
}

func (c *Container) runApriori(data *dataset.TransactionSet, n int) {
	prev := c.prevLen
	frequent := c.counter.ToFrequent(c.minSupport)
	next := candidate.Generate(frequent)
	c.prevLen = next.Len()

	if c.prevLen < prev && prev < switchCeiling {
		c.switchToTID(data, next, n)
		return
	}
	for _, tx := range data.Transactions {
		next.CountFn(tx, n)
	}
	c.counter = next
}

func (c *Container) switchToTID(data *dataset.TransactionSet, next *trie.Counter, n int) {
	candidates := tid.New(c.minSupport)
	transition := trie.NewTransition()
	next.ForEach(func(items []int, _ uint64) {
		index := candidates.Push(append([]int(nil), items...), [2]int{-1, -1})
		transition.Insert(items, index)
	})
	transformed := tid.Transition(data, transition, n)
	transition.ForEach(func(_ []int, entry trie.TransitionEntry) {
		candidates.At(entry.Index).Count = entry.Count
	})

	c.mode = modeTID
	c.candidates = candidates
	c.transformed = transformed
	c.counter = nil
}

// ToVec encodes the container's current counts for Count Distribution.
func (c *Container) ToVec() []uint64 {
	switch c.mode {
	case modeApriori:
		return trie.SerializeCounter(c.counter)
	default:
		return c.candidates.ToVec()
	}
}

// AddFromVec merges remote counts for the same level into the
// container.
func (c *Container) AddFromVec(v []uint64) error {
	switch c.mode {
	case modeApriori:
		return trie.MergeCounter(c.counter, v)
	default:
		return c.candidates.AddFromVec(v)
	}
}
