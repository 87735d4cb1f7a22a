// Package cmd implements the apriori CLI's cobra command tree: a
// single root command taking the input path, support count and
// algorithm name as positionals, with flags for output, timing and
// worker count.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
	"github.com/aprioriminer/apriori-miner/internal/dataset"
	"github.com/aprioriminer/apriori-miner/internal/distributed"
	"github.com/aprioriminer/apriori-miner/internal/level"
	"github.com/aprioriminer/apriori-miner/internal/obslog"
	"github.com/aprioriminer/apriori-miner/internal/writer"
)

var (
	verbose    bool
	outputPath string
	printTime  bool
	csvPath    string
	numWorkers int

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "apriori <input.dat> <support> <algorithm>",
	Short: "Mine frequent itemsets from a transactional database",
	Long: `apriori mines every itemset whose occurrence count across a
transaction database meets a minimum support threshold, using one of
six Apriori-family engines.`,
	Example: `  apriori ./data/retail.dat 500 Apriori -o frequent.txt
  apriori ./data/retail.dat 500 AprioriHybrid -t
  apriori ./data/retail.dat 500 CountDistribution --workers 4 --csv timings.csv`,
	Args: cobra.ExactArgs(3),
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write frequent itemsets to PATH (discarded if absent)")
	rootCmd.Flags().BoolVarP(&printTime, "time", "t", false, "print wall-clock duration")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "append the run duration (seconds) as a new line to PATH")
	rootCmd.Flags().IntVarP(&numWorkers, "workers", "w", 2, "worker count for CountDistribution/CountDistributionHybrid (Go's goroutine stand-in for MPI rank count)")
}

// Execute runs the root command; on any error it has already been
// logged, so main only needs the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(c *cobra.Command, args []string) error {
	logger = obslog.New(verbose)
	defer logger.Sync() //nolint:errcheck

	inputPath := args[0]
	support, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		logger.Errorw("invalid support count", "value", args[1], "err", err)
		return apperr.New(apperr.CodeConfig, "support count must be a non-negative integer")
	}
	alg, err := parseAlgorithm(args[2])
	if err != nil {
		logger.Errorw("invalid algorithm", "value", args[2], "err", err)
		return err
	}

	if alg.distributed() && numWorkers < distributed.MinWorkers {
		logger.Errorw("not enough workers", "workers", numWorkers, "minimum", distributed.MinWorkers)
		return apperr.New(apperr.CodeConfig, "count distribution requires at least 2 workers")
	}

	f, err := os.Open(inputPath)
	if err != nil {
		logger.Errorw("failed to open input", "path", inputPath, "err", err)
		return apperr.Wrap(apperr.CodeInputIO, "failed to open input file", err)
	}
	ts, err := dataset.FromDat(f)
	_ = f.Close()
	if err != nil {
		logger.Errorw("failed to read input", "path", inputPath, "err", err)
		return err
	}
	logger.Infow("loaded dataset", "path", inputPath, "transactions", ts.Len(), "items", ts.NumItems, "size", ts.Size())

	w, closeWriter, err := openWriter(outputPath)
	if err != nil {
		logger.Errorw("failed to open output", "path", outputPath, "err", err)
		return err
	}
	defer func() {
		if err := closeWriter(); err != nil {
			logger.Errorw("failed to close output", "err", err)
		}
	}()

	start := time.Now()
	if err := run(alg, ts, support, w); err != nil {
		logger.Errorw("run failed", "algorithm", alg, "err", err)
		return err
	}
	elapsed := time.Since(start)

	logger.Infow("run complete", "algorithm", alg, "elapsed", elapsed)
	if printTime {
		fmt.Fprintf(c.OutOrStdout(), "%s\n", elapsed)
	}
	if csvPath != "" {
		if err := writer.AppendDuration(csvPath, elapsed); err != nil {
			logger.Errorw("failed to append csv timing", "path", csvPath, "err", err)
			return err
		}
	}
	return nil
}

func run(alg algorithm, ts *dataset.TransactionSet, support uint64, w writer.FrequentSetWriter) error {
	switch alg {
	case algApriori:
		level.RunApriori(ts, support, w, logger)
		return nil
	case algAprioriTID:
		level.RunAprioriTID(ts, support, w, logger)
		return nil
	case algAprioriHybrid:
		level.RunAprioriHybrid(ts, support, w, logger)
		return nil
	case algAprioriTrie:
		level.RunAprioriTrie(ts, support, w, logger)
		return nil
	case algCountDistribution:
		return distributed.RunApriori(ts, support, numWorkers, w, logger)
	case algCountDistributionHybrid:
		return distributed.RunAprioriHybrid(ts, support, numWorkers, w, logger)
	default:
		return apperr.New(apperr.CodeConfig, "unhandled algorithm")
	}
}

func openWriter(path string) (writer.FrequentSetWriter, func() error, error) {
	if path == "" {
		return writer.Discard{}, func() error { return nil }, nil
	}
	f, err := writer.NewFile(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
