// Package level drives the level-by-level mining loop for a single
// process, wiring together dataset, trie, pairs, candidate, counting,
// tid and hybrid.
package level

import (
	"time"

	"go.uber.org/zap"

	"github.com/aprioriminer/apriori-miner/internal/candidate"
	"github.com/aprioriminer/apriori-miner/internal/counting"
	"github.com/aprioriminer/apriori-miner/internal/dataset"
	"github.com/aprioriminer/apriori-miner/internal/hybrid"
	"github.com/aprioriminer/apriori-miner/internal/pairs"
	"github.com/aprioriminer/apriori-miner/internal/tid"
	"github.com/aprioriminer/apriori-miner/internal/trie"
	"github.com/aprioriminer/apriori-miner/internal/writer"
)

// PassOne counts every single item across the dataset and returns the
// ones meeting minSupport, writing each to w.
func PassOne(ts *dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter) []int {
	counts := make([]uint64, ts.NumItems)
	for _, tx := range ts.Transactions {
		for _, item := range tx {
			counts[item]++
		}
	}
	frequent := make([]int, 0)
	for item, count := range counts {
		if count >= minSupport {
			frequent = append(frequent, item)
			w.WriteSet([]int{item})
		}
	}
	return frequent
}

// passTwoSet counts every pair drawn from F1 and returns the frequent
// ones as a Set, writing each to w. Restricted to F1 via pairs.Ranked,
// so items that can never form a frequent pair cost no matrix space.
func passTwoSet(ts *dataset.TransactionSet, f1 []int, minSupport uint64, w writer.FrequentSetWriter) *trie.Set {
	counter := pairs.NewRanked(f1)
	for _, tx := range ts.Transactions {
		for i, a := range tx {
			for _, b := range tx[i+1:] {
				counter.Increment(a, b)
			}
		}
	}
	f2 := trie.NewSet()
	counter.ForEach(func(pair [2]int, count uint64) {
		if count >= minSupport {
			items := []int{pair[0], pair[1]}
			f2.Insert(items)
			w.WriteSet(items)
		}
	})
	return f2
}

// RunApriori implements the plain multi-pass algorithm: join with
// subset pruning, count every transaction against the surviving
// candidate set, filter by support, repeat.
func RunApriori(ts *dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter, log *zap.SugaredLogger) {
	f1 := PassOne(ts, minSupport, w)
	prev := passTwoSet(ts, f1, minSupport, w)
	for k := 3; ; k++ {
		start := time.Now()
		next := candidate.Generate(prev)
		for _, tx := range ts.Transactions {
			counting.Count(next, tx, k)
		}
		frequent := next.ToFrequent(minSupport)
		log.Debugw("apriori level done", "k", k, "candidates", next.Len(), "frequent", frequent.Len(), "elapsed", time.Since(start))
		if frequent.IsEmpty() {
			return
		}
		frequent.ForEach(func(items []int) {
			w.WriteSet(items)
		})
		prev = frequent
	}
}

// RunAprioriTrie implements the trie-only variant: every level,
// including 1 and 2, is counted with trie.Counter.CountFn instead of
// the dense pass-one and pass-two counters. Candidate generation is
// the same join-with-pruning; each level builds a fresh Counter from
// the previous level's frequent Set, so no trie is carried over from
// one level to the next.
func RunAprioriTrie(ts *dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter, log *zap.SugaredLogger) {
	prev := trie.NewSet()
	for item := 0; item < ts.NumItems; item++ {
		prev.Insert([]int{item})
	}
	for k := 1; ; k++ {
		start := time.Now()
		var counter *trie.Counter
		if k == 1 {
			counter = trie.NewCounter()
			prev.ForEach(func(path []int) { counter.Insert(path) })
		} else {
			counter = candidate.Generate(prev)
		}
		for _, tx := range ts.Transactions {
			counter.CountFn(tx, k)
		}
		frequent := counter.ToFrequent(minSupport)
		log.Debugw("apriori-trie level done", "k", k, "candidates", counter.Len(), "frequent", frequent.Len(), "elapsed", time.Since(start))
		if frequent.IsEmpty() {
			return
		}
		frequent.ForEach(func(items []int) { w.WriteSet(items) })
		prev = frequent
	}
}

// RunAprioriTID rewrites the database into candidate-id rows right
// after pass 1, then counts every later level against the (shrinking)
// transformed database instead of rescanning raw transactions.
func RunAprioriTID(ts *dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter, log *zap.SugaredLogger) {
	c := tid.New(minSupport)
	for item := 0; item < ts.NumItems; item++ {
		c.Push([]int{item}, [2]int{-1, -1})
	}
	for _, tx := range ts.Transactions {
		for _, item := range tx {
			c.At(item).Count++
		}
	}
	c.ForEachRange(func(cand *tid.CandidateID) {
		if cand.Count >= minSupport {
			w.WriteSet(cand.Items)
		}
	})
	c.UpdateTree()
	c.Join(func(*tid.CandidateID) {})

	transformed := tid.FromTransactions(ts)
	for k := 2; ; k++ {
		start := time.Now()
		transformed = transformed.Count(c)
		if c.CurrEmpty() {
			return
		}
		c.ForEachRange(func(cand *tid.CandidateID) {
			if cand.Count >= minSupport {
				w.WriteSet(cand.Items)
			}
		})
		c.UpdateTree()
		c.Join(func(*tid.CandidateID) {})
		log.Debugw("apriori-tid level done", "k", k, "rows", len(transformed.Rows()), "elapsed", time.Since(start))
	}
}

// RunAprioriHybrid starts in Apriori mode and switches permanently to
// TID mode once candidate growth shrinks.
func RunAprioriHybrid(ts *dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter, log *zap.SugaredLogger) {
	f1 := PassOne(ts, minSupport, w)
	f2 := passTwoSet(ts, f1, minSupport, w)
	p2 := trie.NewCounter()
	f2.ForEach(func(items []int) { p2.Insert(items) })
	for _, tx := range ts.Transactions {
		p2.CountFn(tx, 2)
	}

	container := hybrid.New(p2, minSupport)
	for k := 3; ; k++ {
		start := time.Now()
		container.Run(ts, k)
		total := 0
		container.ForEach(func(items []int, count uint64) {
			if count < minSupport {
				return
			}
			total++
			w.WriteSet(items)
		})
		log.Debugw("apriori-hybrid level done", "k", k, "frequent", total, "elapsed", time.Since(start))
		if total == 0 {
			return
		}
	}
}
