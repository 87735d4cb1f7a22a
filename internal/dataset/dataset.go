// Package dataset owns the transactional database: parsing, storage,
// iteration and even partitioning across workers.
package dataset

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
)

// TransactionSet is a read-only-after-construction sequence of
// transactions, each a strictly ascending, deduplicated slice of item
// ids, plus the cached item cardinality. The total size is not cached;
// Size computes it on each call.
type TransactionSet struct {
	Transactions [][]int
	NumItems     int
}

// New builds a TransactionSet from already-sorted, deduplicated
// transactions. NumItems is the highest item id seen, plus one.
func New(transactions [][]int, numItems int) *TransactionSet {
	return &TransactionSet{Transactions: transactions, NumItems: numItems}
}

// Len returns the number of transactions.
func (t *TransactionSet) Len() int { return len(t.Transactions) }

// Size returns the sum of all transaction lengths.
func (t *TransactionSet) Size() int {
	n := 0
	for _, tx := range t.Transactions {
		n += len(tx)
	}
	return n
}

// FromDat parses the ASCII .dat format: one transaction per line,
// whitespace-separated non-negative decimal integers. Blank lines are
// skipped. A line that fails to parse is dropped silently and the
// rest of the file is still processed.
func FromDat(r io.Reader) (*TransactionSet, error) {
	var transactions [][]int
	max := -1
	scanner := bufio.NewScanner(r)
	// .dat files can contain very long transactions; grow the buffer
	// generously rather than fail on a long line.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		items := make([]int, 0, len(fields))
		ok := true
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 {
				ok = false
				break
			}
			items = append(items, n)
		}
		if !ok || len(items) == 0 {
			continue
		}
		items = sortDedup(items)
		if len(items) == 0 {
			continue
		}
		if items[len(items)-1] > max {
			max = items[len(items)-1]
		}
		transactions = append(transactions, items)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInputIO, "failed reading dataset", err)
	}
	return New(transactions, max+1), nil
}

func sortDedup(items []int) []int {
	sort.Ints(items)
	out := items[:0:0]
	for i, v := range items {
		if i == 0 || v != items[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Partition splits the database into n roughly-even contiguous chunks,
// the last absorbing the remainder. Used by Count Distribution to
// assign each rank its slice of the database.
func (t *TransactionSet) Partition(n int) []*TransactionSet {
	if n <= 0 {
		return nil
	}
	total := len(t.Transactions)
	base := total / n
	out := make([]*TransactionSet, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + base
		if i == n-1 {
			end = total
		}
		out[i] = New(t.Transactions[start:end], t.NumItems)
		start = end
	}
	return out
}
