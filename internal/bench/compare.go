package bench

import (
	"fmt"

	"github.com/roach88/lootbench/internal/inventory"
	"github.com/roach88/lootbench/internal/sorting"
)

// SortRow is one algorithm's entry in a Report.
type SortRow struct {
	Algorithm   string `json:"algorithm"`
	Key         string `json:"key"`
	Elements    int    `json:"elements"`
	Comparisons int    `json:"comparisons"`
	ElapsedNS   int64  `json:"elapsed_ns"`
}

// SearchRow compares linear and binary search for one target after sorting.
type SearchRow struct {
	Key                string `json:"key"`
	Target             string `json:"target"`
	Found              bool   `json:"found"`
	LinearComparisons  int    `json:"linear_comparisons"`
	BinaryComparisons  int    `json:"binary_comparisons"`
	BinaryNeedsSorting bool   `json:"binary_needs_sorting,omitempty"`
}

// Report is the outcome of Compare.
type Report struct {
	Sorts    []SortRow   `json:"sorts"`
	Searches []SearchRow `json:"searches,omitempty"`
}

// Compare sorts an independent clone of s with each algorithm so every run
// starts from the same input. s itself is not modified.
func (t *Timer) Compare(s *inventory.ArrayStore, algs ...sorting.Algorithm) Report {
	if len(algs) == 0 {
		algs = sorting.All
	}
	report := Report{Sorts: make([]SortRow, 0, len(algs))}
	for _, alg := range algs {
		clone := s.Clone()
		m := t.Sort(alg, clone)
		report.Sorts = append(report.Sorts, SortRow{
			Algorithm:   alg.String(),
			Key:         alg.Key().String(),
			Elements:    clone.Len(),
			Comparisons: m.Comparisons,
			ElapsedNS:   m.Elapsed.Nanoseconds(),
		})
	}
	return report
}

// CompareSearches looks up every target by name, first linearly on the
// unsorted store and then by bisection after a bubble sort on a clone.
// The unsorted binary attempt is recorded as BinaryNeedsSorting.
func (t *Timer) CompareSearches(s *inventory.ArrayStore, targets []string) ([]SearchRow, error) {
	sorted := s.Clone()
	sorting.Bubble.Run(sorted)

	rows := make([]SearchRow, 0, len(targets))
	for _, target := range targets {
		row := SearchRow{Key: inventory.FieldName.String(), Target: target}

		lin := s.LinearSearch(target)
		row.Found = lin.Found
		row.LinearComparisons = lin.Comparisons

		if _, err := s.BinarySearch(inventory.NameKey(target)); inventory.IsNotSorted(err) {
			row.BinaryNeedsSorting = true
		}

		bin, err := sorted.BinarySearch(inventory.NameKey(target))
		if err != nil {
			return nil, fmt.Errorf("binary search %q: %w", target, err)
		}
		if bin.Found != lin.Found {
			return nil, fmt.Errorf("search mismatch for %q: linear found=%t, binary found=%t", target, lin.Found, bin.Found)
		}
		row.BinaryComparisons = bin.Comparisons

		if t.metrics != nil {
			t.metrics.ObserveSearch("linear", lin.Comparisons)
			t.metrics.ObserveSearch("binary", bin.Comparisons)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
