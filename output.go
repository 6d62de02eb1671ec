package main

import (
	"bufio"
	"fmt"
	"os"
)

// WriteAggregateRows writes the per-round (round, mean, stddev) sequence as
// whitespace-separated flat rows, one per round.
func WriteAggregateRows(path string, agg *Aggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	for _, row := range agg.Rows() {
		fmt.Fprintf(w, "%d %.6f %.6f\n", row.Round, row.Mean, row.StdDev)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// WriteSearchHistory writes the outer-arm trajectory as (round, noise,
// cumulative reward) rows, ending with the winning noise value.
func WriteSearchHistory(path string, res SearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	for _, or := range res.History {
		fmt.Fprintf(w, "%d %.6f %.6f\n", or.Round, or.Noise, or.CumulativeReward)
	}
	fmt.Fprintf(w, "# best %.6f\n", res.BestNoise)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
