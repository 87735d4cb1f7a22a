// Wire encodings for shipping trie contents between Count Distribution
// workers. The counter form carries no keys of its own, so sender and
// receiver must agree on a traversal order; Go's builtin map
// randomizes iteration per instance, so both sides walk children in
// ascending key order via sortedKeys.
package trie

import (
	"math"
	"sort"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
)

const leafBit = uint64(1) << 63

func sortedKeys[T any](children map[int]*Node[T]) []int {
	keys := make([]int, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// SerializeSet encodes a Set's presence tree. Format: depth-first
// preorder, each node with children emits [child_count, (key,
// <child>)...]; a leaf emits nothing of its own, instead tagging the
// high bit of its own key (written by its parent) to mark it
// terminal. An empty tree encodes as [math.MaxUint64].
func SerializeSet(s *Set) ([]uint64, error) {
	var out []uint64
	if err := serializeBoolNode(s.root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func serializeBoolNode(n *Node[bool], out *[]uint64) error {
	if len(n.children) == 0 {
		if len(*out) == 0 {
			*out = append(*out, math.MaxUint64)
			return nil
		}
		last := len(*out) - 1
		if (*out)[last]&leafBit != 0 {
			return apperr.New(apperr.CodeSerializeOverflow, "item id too large to encode (collides with leaf marker bit)")
		}
		(*out)[last] |= leafBit
		return nil
	}
	*out = append(*out, uint64(len(n.children)))
	for _, k := range sortedKeys(n.children) {
		if k < 0 || uint64(k) >= leafBit {
			return apperr.New(apperr.CodeSerializeOverflow, "item id too large to encode")
		}
		*out = append(*out, uint64(k))
		if err := serializeBoolNode(n.children[k], out); err != nil {
			return err
		}
	}
	return nil
}

// MergeSet decodes data (as produced by SerializeSet) and merges its
// marked paths into s, recomputing s's length afterward.
func MergeSet(s *Set, data []uint64) error {
	it := &uint64Iter{data: data}
	if err := mergeBoolNode(s.root, it); err != nil {
		return err
	}
	if !it.done() {
		return apperr.New(apperr.CodeInvariantViolation, "trailing data after decoding set")
	}
	n := 0
	s.root.ForEach(func(path []int, v bool) {
		if v && len(path) > 0 {
			n++
		}
	})
	s.n = n
	return nil
}

func mergeBoolNode(n *Node[bool], it *uint64Iter) error {
	size, ok := it.next()
	if !ok {
		return apperr.New(apperr.CodeInvariantViolation, "truncated set encoding")
	}
	if size == math.MaxUint64 {
		return nil
	}
	for i := uint64(0); i < size; i++ {
		next, ok := it.next()
		if !ok {
			return apperr.New(apperr.CodeInvariantViolation, "truncated set encoding")
		}
		isEnd := next&leafBit != 0
		if isEnd {
			next &^= leafBit
		}
		key := int(next)
		child, exists := n.children[key]
		if !exists {
			child = New(false)
			n.children[key] = child
		}
		if isEnd {
			child.value = true
		} else if err := mergeBoolNode(child, it); err != nil {
			return err
		}
	}
	return nil
}

// SerializeCounter encodes a Counter's counts as a flat ascending-key
// preorder list (root included). The receiver must hold a Counter
// built over the identical path set for MergeCounter to line values up
// correctly — this format carries no keys of its own.
func SerializeCounter(c *Counter) []uint64 {
	var out []uint64
	serializeCounterNode(c.root, &out)
	return out
}

func serializeCounterNode(n *Node[uint64], out *[]uint64) {
	*out = append(*out, n.value)
	for _, k := range sortedKeys(n.children) {
		serializeCounterNode(n.children[k], out)
	}
}

// MergeCounter adds data's counts element-wise into c, in the same
// ascending-key preorder SerializeCounter used to produce data.
func MergeCounter(c *Counter, data []uint64) error {
	it := &uint64Iter{data: data}
	if err := mergeCounterNode(c.root, it); err != nil {
		return err
	}
	if !it.done() {
		return apperr.New(apperr.CodeInvariantViolation, "trailing data after decoding counter")
	}
	return nil
}

func mergeCounterNode(n *Node[uint64], it *uint64Iter) error {
	v, ok := it.next()
	if !ok {
		return apperr.New(apperr.CodeInvariantViolation, "truncated counter encoding")
	}
	n.value += v
	for _, k := range sortedKeys(n.children) {
		if err := mergeCounterNode(n.children[k], it); err != nil {
			return err
		}
	}
	return nil
}

type uint64Iter struct {
	data []uint64
	pos  int
}

func (it *uint64Iter) next() (uint64, bool) {
	if it.pos >= len(it.data) {
		return 0, false
	}
	v := it.data[it.pos]
	it.pos++
	return v, true
}

func (it *uint64Iter) done() bool { return it.pos >= len(it.data) }
