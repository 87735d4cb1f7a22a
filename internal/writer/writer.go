// Package writer defines the output collaborator the mining engines
// consume: something that accepts frequent itemsets as they are
// discovered.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aprioriminer/apriori-miner/internal/apperr"
)

// FrequentSetWriter accepts one frequent itemset at a time. Order of
// itemsets is unspecified beyond "all k-itemsets before any
// (k+2)-itemsets"; callers should not rely on more.
type FrequentSetWriter interface {
	WriteSet(items []int)
}

// Discard drops every itemset. Used when no -o/--output is given.
type Discard struct{}

func (Discard) WriteSet([]int) {}

// Collector accumulates itemsets in memory, for tests and for
// property-based comparison against a brute-force reference.
type Collector struct {
	Sets [][]int
}

func (c *Collector) WriteSet(items []int) {
	cp := append([]int(nil), items...)
	c.Sets = append(c.Sets, cp)
}

// File writes one itemset per line, items space-separated, to the
// given path. Construct with NewFile; Close flushes and closes the
// underlying file.
type File struct {
	f *os.File
	w *bufio.Writer
}

// NewFile creates (truncating) the output file at path.
func NewFile(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeOutputIO, "failed to create output file", err)
	}
	return &File{f: f, w: bufio.NewWriter(f)}, nil
}

func (fw *File) WriteSet(items []int) {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Fprintf(fw.w, "%s\n", strings.Join(parts, " "))
}

// Close flushes buffered output and closes the file.
func (fw *File) Close() error {
	if err := fw.w.Flush(); err != nil {
		return apperr.Wrap(apperr.CodeOutputIO, "failed to flush output file", err)
	}
	if err := fw.f.Close(); err != nil {
		return apperr.Wrap(apperr.CodeOutputIO, "failed to close output file", err)
	}
	return nil
}

// AppendDuration appends a single CSV line "seconds\n" to path,
// creating the file with a header if it doesn't already exist. Backs
// the --csv flag.
func AppendDuration(path string, d time.Duration) error {
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperr.Wrap(apperr.CodeOutputIO, "failed to open csv file", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := io.WriteString(f, "duration_seconds\n"); err != nil {
			return apperr.Wrap(apperr.CodeOutputIO, "failed to write csv header", err)
		}
	}
	line := strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "\n"
	if _, err := io.WriteString(f, line); err != nil {
		return apperr.Wrap(apperr.CodeOutputIO, "failed to append csv line", err)
	}
	return nil
}
