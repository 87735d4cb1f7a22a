// Package distributed implements Count Distribution: partition the
// dataset once across a fixed number of workers, then at every level
// broadcast the current candidate set, let every worker count
// independently against its own partition, and sum the partials
// before filtering to frequent.
//
// The scheme maps naturally onto MPI-style ranks; inside one Go
// process none of that machinery earns its keep. A "broadcast" is
// just every goroutine closing over the same read-only candidate
// data, a "gather" is an errgroup.Wait barrier, and "stop" is simply
// not entering the next loop iteration. The level-by-level
// synchronous rendezvous survives; a wire protocol around it doesn't
// need to.
package distributed

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
	"github.com/aprioriminer/apriori-miner/internal/candidate"
	"github.com/aprioriminer/apriori-miner/internal/counting"
	"github.com/aprioriminer/apriori-miner/internal/dataset"
	"github.com/aprioriminer/apriori-miner/internal/level"
	"github.com/aprioriminer/apriori-miner/internal/pairs"
	"github.com/aprioriminer/apriori-miner/internal/tid"
	"github.com/aprioriminer/apriori-miner/internal/trie"
	"github.com/aprioriminer/apriori-miner/internal/writer"
)

// MinWorkers is the smallest worker count Count Distribution accepts:
// splitting across fewer partitions gives none of the parallel
// counting benefit and is almost certainly a misconfiguration.
const MinWorkers = 2

// switchCeiling mirrors package hybrid's bound on when a shrinking
// candidate count is worth switching representations.
const switchCeiling = 100_000

// gather runs work once per partition concurrently — the fan-out half
// of a level's rendezvous — and returns one result per partition in
// partition order once every goroutine has finished (the fan-in
// barrier). None of the per-partition work can fail in a way callers
// need to react to mid-level; a malformed broadcast would mean a bug
// in this package, not bad input.
func gather[T any](n int, work func(i int) T) []T {
	results := make([]T, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = work(i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func validate(numWorkers int) error {
	if numWorkers < MinWorkers {
		return apperr.New(apperr.CodeConfig, "count distribution requires at least 2 workers")
	}
	return nil
}

// passTwoDistributed runs the shared pass-1/pass-2 prelude: pass one
// needs no partitioning (it's one pass over every item regardless of
// how the rows are split), pass two counts pairs per partition and
// sums them centrally. Returns F1 and the frequent pair set, with both
// already written to w.
func passTwoDistributed(ts *dataset.TransactionSet, parts []*dataset.TransactionSet, minSupport uint64, w writer.FrequentSetWriter) (f1 []int, f2 *trie.Set) {
	f1 = level.PassOne(ts, minSupport, w)
	if len(f1) == 0 {
		return f1, trie.NewSet()
	}

	combined := pairs.NewRanked(f1)
	partials := gather(len(parts), func(i int) []uint64 {
		local := pairs.NewRanked(f1)
		for _, tx := range parts[i].Transactions {
			for a, va := range tx {
				for _, vb := range tx[a+1:] {
					local.Increment(va, vb)
				}
			}
		}
		return local.ToVec()
	})
	for _, v := range partials {
		combined.AddFromVec(v)
	}

	f2 = trie.NewSet()
	combined.ForEach(func(pair [2]int, count uint64) {
		if count >= minSupport {
			items := []int{pair[0], pair[1]}
			f2.Insert(items)
			w.WriteSet(items)
		}
	})
	return f1, f2
}

// RunApriori implements Count Distribution's plain-Apriori variant.
func RunApriori(ts *dataset.TransactionSet, minSupport uint64, numWorkers int, w writer.FrequentSetWriter, log *zap.SugaredLogger) error {
	if err := validate(numWorkers); err != nil {
		return err
	}
	parts := ts.Partition(numWorkers)

	_, prev := passTwoDistributed(ts, parts, minSupport, w)
	if prev.IsEmpty() {
		return nil
	}

	for k := 3; ; k++ {
		candidateData, err := trie.SerializeSet(prev)
		if err != nil {
			return err
		}

		master := candidate.Generate(prev)

		partials := gather(len(parts), func(i int) []uint64 {
			set := trie.NewSet()
			if err := trie.MergeSet(set, candidateData); err != nil {
				return nil
			}
			local := candidate.Generate(set)
			for _, tx := range parts[i].Transactions {
				counting.Count(local, tx, k)
			}
			return trie.SerializeCounter(local)
		})
		for _, v := range partials {
			if err := trie.MergeCounter(master, v); err != nil {
				return err
			}
		}

		frequent := master.ToFrequent(minSupport)
		log.Debugw("count-distribution level done", "k", k, "candidates", master.Len(), "frequent", frequent.Len())
		if frequent.IsEmpty() {
			return nil
		}
		frequent.ForEach(func(items []int) { w.WriteSet(items) })
		prev = frequent
	}
}

// hybridWorker is one partition's persistent counting state across
// levels. Apriori-mode levels need nothing kept between calls (the
// candidate set arrives fresh each broadcast); once the coordinator
// signals a switch to TID mode, each worker must keep its own
// transformed database and a mirror of the coordinator's candidate
// bookkeeping so later levels can advance structurally in step,
// exactly as tid.TransformedDatabase.Count requires the extension
// links pushed by the previous level's Join.
type hybridWorker struct {
	partition   *dataset.TransactionSet
	candidates  *tid.Candidates
	transformed *tid.TransformedDatabase
}

// RunAprioriHybrid implements Count Distribution's hybrid variant:
// Apriori-mode levels broadcast a zero-count candidate set exactly
// like RunApriori; once the globally-summed candidate count shrinks
// below the previous level's (the same condition package hybrid
// uses), the coordinator switches every worker to TID mode in lock
// step by broadcasting the frozen candidate topology instead of
// counts, so each worker can build its own transformed database from
// only its own partition.
func RunAprioriHybrid(ts *dataset.TransactionSet, minSupport uint64, numWorkers int, w writer.FrequentSetWriter, log *zap.SugaredLogger) error {
	if err := validate(numWorkers); err != nil {
		return err
	}
	parts := ts.Partition(numWorkers)
	workers := make([]*hybridWorker, numWorkers)
	for i := range workers {
		workers[i] = &hybridWorker{partition: parts[i]}
	}

	_, f2 := passTwoDistributed(ts, parts, minSupport, w)
	if f2.IsEmpty() {
		return nil
	}
	frequent := f2

	var (
		tidMode    bool
		candidates *tid.Candidates
		prevLen    int
	)

	for k := 3; ; k++ {
		if !tidMode {
			next := candidate.Generate(frequent)
			newLen := next.Len()
			switching := prevLen != 0 && newLen < prevLen && prevLen < switchCeiling

			candidateData, err := trie.SerializeSet(frequent)
			if err != nil {
				return err
			}
			partials := gather(len(parts), func(i int) []uint64 {
				set := trie.NewSet()
				if err := trie.MergeSet(set, candidateData); err != nil {
					return nil
				}
				local := candidate.Generate(set)
				for _, tx := range workers[i].partition.Transactions {
					counting.Count(local, tx, k)
				}
				return trie.SerializeCounter(local)
			})
			for _, v := range partials {
				if err := trie.MergeCounter(next, v); err != nil {
					return err
				}
			}
			prevLen = newLen
			frequent = next.ToFrequent(minSupport)

			total := 0
			next.ForEach(func(items []int, count uint64) {
				if count >= minSupport {
					total++
					w.WriteSet(items)
				}
			})
			log.Debugw("count-distribution-hybrid level done", "k", k, "mode", "apriori", "frequent", total)
			if total == 0 {
				return nil
			}

			if switching {
				candidates = tid.New(minSupport)
				next.ForEach(func(items []int, count uint64) {
					if count < minSupport {
						return
					}
					idx := candidates.Push(append([]int(nil), items...), [2]int{-1, -1})
					candidates.At(idx).Count = count
				})
				candidates.UpdateTree()
				specs := candidates.ExportRange()
				// Advance the coordinator one join so the first
				// TID-mode level has extension links to count
				// against, and replicate both ranges on every
				// worker.
				candidates.Join(func(*tid.CandidateID) {})
				joined := candidates.ExportRange()
				for i, wk := range workers {
					wk.candidates = tid.New(minSupport)
					start := wk.candidates.ImportRange(specs)
					wk.transformed = tid.Transition(parts[i], transitionFromSpecs(specs, start), k)
					wk.candidates.ImportRange(joined)
				}
				tidMode = true
			}
			continue
		}

		partials := gather(len(parts), func(i int) []uint64 {
			wk := workers[i]
			wk.transformed = wk.transformed.Count(wk.candidates)
			return wk.candidates.ToVec()
		})
		for _, v := range partials {
			if err := candidates.AddFromVec(v); err != nil {
				return err
			}
		}
		if candidates.CurrEmpty() {
			return nil
		}
		total := 0
		candidates.ForEachRange(func(cand *tid.CandidateID) {
			if cand.Count >= minSupport {
				total++
				w.WriteSet(cand.Items)
			}
		})
		log.Debugw("count-distribution-hybrid level done", "k", k, "mode", "tid", "frequent", total)
		if total == 0 {
			return nil
		}
		candidates.UpdateTree()
		candidates.Join(func(*tid.CandidateID) {})
		specs := candidates.ExportRange()
		for _, wk := range workers {
			wk.candidates.ImportRange(specs)
		}
	}
}

func transitionFromSpecs(specs []tid.NewCandidateSpec, start int) *trie.Transition {
	t := trie.NewTransition()
	for i, s := range specs {
		t.Insert(s.Items, start+i)
	}
	return t
}
