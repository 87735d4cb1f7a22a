package pairs

// Full is the pass-two counter indexed directly by item id, sized to
// the dataset's full item cardinality. Use Ranked instead whenever F1
// is much smaller than the item universe (the common case), to avoid
// allocating a matrix over items that can never appear in a pair.
type Full struct {
	arr *Array2D
}

// NewFull allocates a counter over numItems items.
func NewFull(numItems int) *Full {
	return &Full{arr: NewArray2D(numItems)}
}

func (c *Full) Increment(a, b int) { c.arr.Increment(a, b) }
func (c *Full) Get(a, b int) uint64 { return c.arr.Get(a, b) }
func (c *Full) Len() int           { return c.arr.Len() }

func (c *Full) ForEach(f func(pair [2]int, count uint64)) {
	c.arr.Iterate(func(row, col int, count uint64) {
		f([2]int{col, row}, count)
	})
}

func (c *Full) ToVec() []uint64          { return c.arr.ToVec() }
func (c *Full) AddFromVec(v []uint64)    { c.arr.AddFromVec(v) }

// Ranked is the pass-two counter restricted to F1: items are addressed
// by their rank within the provided frequent-1-itemset slice, so the
// backing matrix is sized |F1|×|F1| instead of numItems×numItems.
type Ranked struct {
	arr    *Array2D
	rank   map[int]int
	byRank []int
}

// NewRanked builds a Ranked counter over the given frequent items
// (already the F1 set, in any order — rank is assigned by position).
func NewRanked(items []int) *Ranked {
	rank := make(map[int]int, len(items))
	byRank := append([]int(nil), items...)
	for i, item := range byRank {
		rank[item] = i
	}
	return &Ranked{arr: NewArray2D(len(byRank)), rank: rank, byRank: byRank}
}

// Increment bumps the pair's count if both items are in F1; reports
// whether it did.
func (c *Ranked) Increment(a, b int) bool {
	ra, ok1 := c.rank[a]
	rb, ok2 := c.rank[b]
	if !ok1 || !ok2 {
		return false
	}
	c.arr.Increment(ra, rb)
	return true
}

// Get returns the count for the pair if both items are in F1.
func (c *Ranked) Get(a, b int) (uint64, bool) {
	ra, ok1 := c.rank[a]
	rb, ok2 := c.rank[b]
	if !ok1 || !ok2 {
		return 0, false
	}
	return c.arr.Get(ra, rb), true
}

func (c *Ranked) Len() int { return c.arr.Len() }

// ForEach visits every pair with its original item ids (translated
// back through byRank).
func (c *Ranked) ForEach(f func(pair [2]int, count uint64)) {
	c.arr.Iterate(func(row, col int, count uint64) {
		f([2]int{c.byRank[col], c.byRank[row]}, count)
	})
}

func (c *Ranked) ToVec() []uint64       { return c.arr.ToVec() }
func (c *Ranked) AddFromVec(v []uint64) { c.arr.AddFromVec(v) }
