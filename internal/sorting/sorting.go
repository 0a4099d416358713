// Package sorting implements the three quadratic sorts lootbench compares.
//
// Each algorithm is bound to one key: bubble sort orders by name, insertion
// sort by category, selection sort by priority. They run in place over an
// inventory.ArrayStore and return the number of element comparisons made by
// that call alone.
package sorting

import (
	"fmt"
	"strings"

	"github.com/roach88/lootbench/internal/inventory"
)

// Algorithm is one of the closed set of sorts.
type Algorithm int

const (
	Bubble Algorithm = iota
	Insertion
	Selection
)

// All lists every algorithm in display order.
var All = []Algorithm{Bubble, Insertion, Selection}

var algorithmNames = [...]string{"bubble", "insertion", "selection"}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// Key returns the record field the algorithm orders by.
func (a Algorithm) Key() inventory.Field {
	switch a {
	case Insertion:
		return inventory.FieldCategory
	case Selection:
		return inventory.FieldPriority
	default:
		return inventory.FieldName
	}
}

// ParseAlgorithm accepts an algorithm name, or the name of the field it sorts by.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range All {
		if strings.EqualFold(s, a.String()) || strings.EqualFold(s, a.Key().String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q: must be one of %v", s, algorithmNames[:])
}

// ForField returns the algorithm bound to f.
func ForField(f inventory.Field) Algorithm {
	for _, a := range All {
		if a.Key() == f {
			return a
		}
	}
	return Bubble
}

// Run sorts s in place and returns the comparison count.
// Afterwards s.Order() reports the algorithm's key, including for stores
// with fewer than two records, which are trivially ordered.
func (a Algorithm) Run(s *inventory.ArrayStore) int {
	var fn func([]inventory.Record) int
	switch a {
	case Insertion:
		fn = insertionByCategory
	case Selection:
		fn = selectionByPriority
	default:
		fn = bubbleByName
	}
	return s.Reorder(a.Key(), fn)
}

// bubbleByName makes n-1 passes; pass i compares the n-1-i adjacent pairs of
// the unsorted prefix. There is no early exit, so the count is always n(n-1)/2.
func bubbleByName(recs []inventory.Record) int {
	comparisons := 0
	n := len(recs)
	for pass := 0; pass < n-1; pass++ {
		for j := 0; j < n-1-pass; j++ {
			comparisons++
			if recs[j].Name > recs[j+1].Name {
				recs[j], recs[j+1] = recs[j+1], recs[j]
			}
		}
	}
	return comparisons
}

// insertionByCategory counts every comparison made while shifting, including
// the one that stops the shift.
func insertionByCategory(recs []inventory.Record) int {
	comparisons := 0
	for i := 1; i < len(recs); i++ {
		held := recs[i]
		j := i - 1
		for j >= 0 {
			comparisons++
			if recs[j].Category <= held.Category {
				break
			}
			recs[j+1] = recs[j]
			j--
		}
		recs[j+1] = held
	}
	return comparisons
}

// selectionByPriority counts one comparison per candidate examined in the
// remaining suffix and swaps only when the minimum is out of place.
func selectionByPriority(recs []inventory.Record) int {
	comparisons := 0
	n := len(recs)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			comparisons++
			if recs[j].Priority < recs[minIdx].Priority {
				minIdx = j
			}
		}
		if minIdx != i {
			recs[i], recs[minIdx] = recs[minIdx], recs[i]
		}
	}
	return comparisons
}
