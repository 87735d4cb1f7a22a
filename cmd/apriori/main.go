// Command apriori mines frequent itemsets from a transactional .dat
// file using one of the Apriori-family algorithms.
package main

import "github.com/aprioriminer/apriori-miner/cmd/apriori/cmd"

func main() {
	cmd.Execute()
}
