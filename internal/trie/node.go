// Package trie implements the integer-keyed prefix tree used to store
// candidate itemsets and their counts, transported between workers in
// Count Distribution. Item ids are sparse integers, so nodes key their
// children by map rather than a fixed alphabet array.
package trie

// Node is a generic node of an integer-keyed trie. A path of k edges
// from the root corresponds to an ascending itemset of length k; the
// value at that node is meaningful once k reaches the depth a caller
// cares about (a terminal node for that level).
type Node[T any] struct {
	children map[int]*Node[T]
	value    T
}

// New returns an empty node holding value as its own (root) value.
func New[T any](value T) *Node[T] {
	return &Node[T]{children: make(map[int]*Node[T]), value: value}
}

// Value returns this node's own value.
func (n *Node[T]) Value() T { return n.value }

// NumChildren returns the number of direct children.
func (n *Node[T]) NumChildren() int { return len(n.children) }

// Insert walks (creating as needed) the path from n and sets the
// terminal node's value. Returns whether any new node was created
// along the way.
func (n *Node[T]) Insert(path []int, value T) bool {
	if len(path) == 0 {
		n.value = value
		return false
	}
	var zero T
	if child, ok := n.children[path[0]]; ok {
		return child.Insert(path[1:], value)
	}
	child := New(zero)
	child.Insert(path[1:], value)
	n.children[path[0]] = child
	return true
}

// Get walks path and returns the terminal node's value, or false if
// any edge along the path is missing.
func (n *Node[T]) Get(path []int) (T, bool) {
	if len(path) == 0 {
		return n.value, true
	}
	var zero T
	if child, ok := n.children[path[0]]; ok {
		return child.Get(path[1:])
	}
	return zero, false
}

// Contains reports whether path resolves to a node.
func (n *Node[T]) Contains(path []int) bool {
	_, ok := n.Get(path)
	return ok
}

// ForEach visits every node (including the root and non-terminals) in
// an unspecified order, passing the path from the root and the node's
// value. The slice passed to f is only valid for the duration of the
// call; copy it if you need to retain it.
func (n *Node[T]) ForEach(f func(path []int, value T)) {
	n.forEachHelper(nil, f)
}

func (n *Node[T]) forEachHelper(stack []int, f func([]int, T)) {
	f(stack, n.value)
	for k, c := range n.children {
		c.forEachHelper(append(stack, k), f)
	}
}

// ForEachMut is like ForEach but hands f a mutable pointer to each
// node's value.
func (n *Node[T]) ForEachMut(f func(path []int, value *T)) {
	n.forEachMutHelper(nil, f)
}

func (n *Node[T]) forEachMutHelper(stack []int, f func([]int, *T)) {
	f(stack, &n.value)
	for k, c := range n.children {
		c.forEachMutHelper(append(stack, k), f)
	}
}

// CountFn is the hot-path counting kernel: for transaction
// t, enumerate every depth-length subsequence of t that matches a
// root-to-node path in the trie, and invoke f with the matched path
// and a pointer to that node's value. Complexity is linear in the
// number of matched prefixes times their fan-out.
func (n *Node[T]) CountFn(t []int, depth int, f func(path []int, value *T)) {
	n.countFnHelper(t, nil, depth, f)
}

func (n *Node[T]) countFnHelper(t []int, stack []int, depth int, f func([]int, *T)) {
	if depth == 0 {
		f(stack, &n.value)
		return
	}
	if len(t) < depth {
		return
	}
	for i, item := range t {
		child, ok := n.children[item]
		if !ok {
			continue
		}
		child.countFnHelper(t[i+1:], append(stack, item), depth-1, f)
	}
}

// Filter drops every child at the given depth whose value fails keep.
// depth=1 means "filter this node's direct children"; larger depths
// recurse first, and branches emptied by the drop are removed along
// the way.
func (n *Node[T]) Filter(depth int, keep func(T) bool) {
	if depth <= 1 {
		for k, c := range n.children {
			if !keep(c.value) {
				delete(n.children, k)
			}
		}
		return
	}
	for k, c := range n.children {
		c.Filter(depth-1, keep)
		if len(c.children) == 0 {
			delete(n.children, k)
		}
	}
}

// Cleanup removes every subtree whose every terminal value equals
// sentinel. Requires a comparable value type, so it is a free function
// rather than a method.
func Cleanup[T comparable](n *Node[T], sentinel T) {
	cleanupHelper(n, sentinel)
}

func cleanupHelper[T comparable](n *Node[T], sentinel T) bool {
	for k, c := range n.children {
		if cleanupHelper(c, sentinel) {
			delete(n.children, k)
		}
	}
	return len(n.children) == 0 && n.value == sentinel
}
