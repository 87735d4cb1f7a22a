package trie

import (
	"strconv"
	"strings"
)

// Counter is a trie of running counts: each inserted path accumulates
// how many times it has been observed.
type Counter struct {
	root *Node[uint64]
	n    int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{root: New[uint64](0)}
}

// Len returns the number of distinct paths counted (not the sum of
// counts).
func (c *Counter) Len() int { return c.n }

func (c *Counter) IsEmpty() bool { return c.n == 0 }

// Insert registers path with an initial count of zero if it isn't
// already present; it is a no-op (not a reset) if path already exists.
func (c *Counter) Insert(path []int) {
	if !c.root.Contains(path) {
		if c.root.Insert(path, 0) {
			c.n++
		}
	}
}

// Increment adds one to path's count and reports whether path was
// already registered. Unlike Insert, it never creates a node: a path
// that wasn't already present is left untouched and false is
// returned. This matters for the enumerate-subsets counting strategy
// (package counting), which probes every subsequence of a transaction
// and relies on Increment being a no-op for the ones that aren't
// candidates.
func (c *Counter) Increment(path []int) bool {
	n := c.root
	for _, p := range path {
		child, ok := n.children[p]
		if !ok {
			return false
		}
		n = child
	}
	n.value++
	return true
}

// IncrementOrCreate adds one to path's count, creating it at 1 if it
// wasn't already registered.
func (c *Counter) IncrementOrCreate(path []int) {
	v, ok := c.root.Get(path)
	if c.root.Insert(path, v+1) && !ok {
		c.n++
	}
}

// CountFn is the hot counting kernel: for transaction t, bump every
// registered candidate that is a subsequence of t and has the given
// depth.
func (c *Counter) CountFn(t []int, depth int) {
	c.root.CountFn(t, depth, func(_ []int, v *uint64) {
		*v++
	})
}

// Get returns the current count for path.
func (c *Counter) Get(path []int) (uint64, bool) {
	return c.root.Get(path)
}

// ForEachMut visits every candidate (leaf) path with a mutable
// pointer to its count. Interior prefix nodes carry no count of their
// own and are skipped.
func (c *Counter) ForEachMut(f func(path []int, count *uint64)) {
	forEachLeafMut(c.root, nil, f)
}

// ForEach visits every candidate (leaf) path with its count, in
// unspecified order.
func (c *Counter) ForEach(f func(path []int, count uint64)) {
	forEachLeafMut(c.root, nil, func(path []int, v *uint64) {
		f(path, *v)
	})
}

func forEachLeafMut(n *Node[uint64], stack []int, f func([]int, *uint64)) {
	if len(n.children) == 0 {
		if len(stack) > 0 {
			f(stack, &n.value)
		}
		return
	}
	for k, child := range n.children {
		forEachLeafMut(child, append(stack, k), f)
	}
}

// Filter drops candidates at the given depth whose count fails keep
// (the σ-support cut after a counting pass), along with any prefix
// branch emptied by the drop.
func (c *Counter) Filter(depth int, keep func(uint64) bool) {
	c.root.Filter(depth, keep)
	n := 0
	c.ForEach(func([]int, uint64) { n++ })
	c.n = n
}

// ToFrequent drains every path whose count meets minCount into a fresh
// Set, suitable as next level's Fk.
func (c *Counter) ToFrequent(minCount uint64) *Set {
	s := NewSet()
	c.ForEach(func(path []int, count uint64) {
		if count >= minCount {
			cp := append([]int(nil), path...)
			s.Insert(cp)
		}
	})
	return s
}

func encodeKey(path []int) string {
	var b strings.Builder
	for _, v := range path {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}
