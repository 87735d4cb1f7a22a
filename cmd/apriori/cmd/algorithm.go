package cmd

import (
	"strconv"
	"strings"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
)

// algorithm identifies which of the six CLI-selectable engines to run.
type algorithm int

const (
	algApriori algorithm = iota
	algAprioriTID
	algAprioriHybrid
	algAprioriTrie
	algCountDistribution
	algCountDistributionHybrid
)

func (a algorithm) String() string {
	switch a {
	case algApriori:
		return "Apriori"
	case algAprioriTID:
		return "AprioriTID"
	case algAprioriHybrid:
		return "AprioriHybrid"
	case algAprioriTrie:
		return "AprioriTrie"
	case algCountDistribution:
		return "CountDistribution"
	case algCountDistributionHybrid:
		return "CountDistributionHybrid"
	default:
		return "unknown"
	}
}

// distributed reports whether this algorithm runs over Count
// Distribution's worker partitions rather than a single process.
func (a algorithm) distributed() bool {
	return a == algCountDistribution || a == algCountDistributionHybrid
}

// parseAlgorithm matches the CLI's positional algorithm argument
// case-insensitively against the engine names.
func parseAlgorithm(s string) (algorithm, error) {
	switch strings.ToLower(s) {
	case "apriori":
		return algApriori, nil
	case "aprioritid":
		return algAprioriTID, nil
	case "apriorihybrid":
		return algAprioriHybrid, nil
	case "aprioritrie":
		return algAprioriTrie, nil
	case "countdistribution":
		return algCountDistribution, nil
	case "countdistributionhybrid":
		return algCountDistributionHybrid, nil
	default:
		return 0, apperr.New(apperr.CodeConfig, "unknown algorithm "+strconv.Quote(s)+"; want one of Apriori, AprioriTID, AprioriHybrid, AprioriTrie, CountDistribution, CountDistributionHybrid")
	}
}
