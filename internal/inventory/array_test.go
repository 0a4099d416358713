package inventory

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArray(t *testing.T, capacity int, recs ...Record) *ArrayStore {
	t.Helper()
	s, err := NewArrayStore(capacity)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, s.Insert(r))
	}
	return s
}

func names(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

// sortByName is a minimal in-place sort used to reach SortedByName without
// depending on the sorting package.
func sortByName(recs []Record) int {
	for i := 1; i < len(recs); i++ {
		for j := i; j > 0 && recs[j].Name < recs[j-1].Name; j-- {
			recs[j], recs[j-1] = recs[j-1], recs[j]
		}
	}
	return 0
}

func TestNewArrayStore_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := NewArrayStore(0)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidRecord, CodeOf(err))
}

func TestArrayStore_InsertUpToCapacity(t *testing.T) {
	for capacity := 1; capacity <= 20; capacity++ {
		s := newArray(t, capacity)
		for i := 0; i < capacity; i++ {
			require.NoError(t, s.Insert(Record{Name: string(rune('a' + i))}))
			assert.Equal(t, i+1, s.Len())
		}
		err := s.Insert(Record{Name: "overflow"})
		require.Error(t, err)
		assert.True(t, IsFull(err))
		assert.Equal(t, capacity, s.Len())
		assert.Equal(t, capacity, s.Cap())
	}
}

func TestArrayStore_Scenario(t *testing.T) {
	s := newArray(t, 3,
		Record{"A", "x", 1},
		Record{"B", "y", 2},
		Record{"C", "z", 3},
	)

	err := s.Insert(Record{"D", "w", 4})
	require.True(t, IsFull(err))

	removed, err := s.RemoveByName("B")
	require.NoError(t, err)
	assert.Equal(t, Record{"B", "y", 2}, removed)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, Unordered, s.Order())

	res := s.LinearSearch("C")
	assert.True(t, res.Found)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, 2, res.Comparisons)
}

func TestArrayStore_RemoveMissingLeavesStoreUntouched(t *testing.T) {
	s := newArray(t, 4, Record{Name: "B"}, Record{Name: "A"})
	s.Reorder(FieldName, sortByName)
	before := s.List()

	_, err := s.RemoveByName("Z")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, before, s.List())
	assert.Equal(t, SortedByName, s.Order(), "a failed removal must not touch order")
}

func TestArrayStore_RemoveFirstMatchOnly(t *testing.T) {
	s := newArray(t, 4,
		Record{"Faca", "arma", 1},
		Record{"Faca", "arma", 2},
		Record{"Kit", "cura", 3},
	)
	removed, err := s.RemoveByName("Faca")
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Priority)
	assert.Equal(t, []Record{{"Faca", "arma", 2}, {"Kit", "cura", 3}}, s.List())
}

func TestArrayStore_MutationResetsOrder(t *testing.T) {
	s := newArray(t, 5, Record{Name: "C"}, Record{Name: "A"}, Record{Name: "B"})

	s.Reorder(FieldName, sortByName)
	require.Equal(t, SortedByName, s.Order())
	require.NoError(t, s.Insert(Record{Name: "D"}))
	assert.Equal(t, Unordered, s.Order())

	s.Reorder(FieldName, sortByName)
	_, err := s.RemoveByName("A")
	require.NoError(t, err)
	assert.Equal(t, Unordered, s.Order(), "removal resets order even though it keeps the sort")
}

func TestArrayStore_ListIsACopy(t *testing.T) {
	s := newArray(t, 2, Record{Name: "A"})
	list := s.List()
	list[0].Name = "mutated"
	assert.Equal(t, "A", s.At(0).Name)
}

func TestArrayStore_LinearSearchMiss(t *testing.T) {
	s := newArray(t, 3, Record{Name: "A"}, Record{Name: "B"})
	res := s.LinearSearch("Z")
	assert.False(t, res.Found)
	assert.Equal(t, -1, res.Index)
	assert.Equal(t, 2, res.Comparisons)
}

func TestArrayStore_BinarySearchRequiresMatchingOrder(t *testing.T) {
	s := newArray(t, 3, Record{Name: "B"}, Record{Name: "A"})

	res, err := s.BinarySearch(NameKey("A"))
	require.Error(t, err)
	assert.True(t, IsNotSorted(err))
	assert.Zero(t, res.Comparisons)

	s.Reorder(FieldName, sortByName)
	res, err = s.BinarySearch(CategoryKey("x"))
	require.Error(t, err)
	assert.True(t, IsNotSorted(err))
	assert.Zero(t, res.Comparisons)
}

func TestArrayStore_BinarySearchMatchesLinear(t *testing.T) {
	letters := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for n := 1; n <= len(letters); n++ {
		s := newArray(t, 20)
		for i := n - 1; i >= 0; i-- {
			require.NoError(t, s.Insert(Record{Name: letters[i]}))
		}
		s.Reorder(FieldName, sortByName)
		bound := bits.Len(uint(n)) // ceil(log2(n+1))

		for _, name := range letters[:n] {
			bin, err := s.BinarySearch(NameKey(name))
			require.NoError(t, err)
			lin := s.LinearSearch(name)
			assert.True(t, bin.Found)
			assert.Equal(t, lin.Index, bin.Index, "n=%d name=%s", n, name)
			assert.LessOrEqual(t, bin.Comparisons, bound, "n=%d name=%s", n, name)
		}
	}
}

func TestArrayStore_BinarySearchMissOnFiveElements(t *testing.T) {
	s := newArray(t, 5,
		Record{Name: "B"}, Record{Name: "D"}, Record{Name: "F"}, Record{Name: "H"}, Record{Name: "J"},
	)
	s.Reorder(FieldName, sortByName)

	for _, probe := range []string{"A", "C", "E", "G", "I", "K"} {
		res, err := s.BinarySearch(NameKey(probe))
		require.NoError(t, err)
		assert.False(t, res.Found)
		assert.Equal(t, -1, res.Index)
		assert.LessOrEqual(t, res.Comparisons, 3, probe)
	}
}

func TestArrayStore_BinarySearchByPriority(t *testing.T) {
	s := newArray(t, 4, Record{"x", "", 1}, Record{"y", "", 4}, Record{"z", "", 9})
	s.Reorder(FieldPriority, func([]Record) int { return 0 })

	res, err := s.BinarySearch(PriorityKey(9))
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 2, res.Index)
}

func TestArrayStore_BinarySearchEmptyStore(t *testing.T) {
	s := newArray(t, 2)
	s.Reorder(FieldName, sortByName)
	res, err := s.BinarySearch(NameKey("A"))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Zero(t, res.Comparisons)
}

func TestArrayStore_CloneIsIndependent(t *testing.T) {
	s := newArray(t, 3, Record{Name: "B"}, Record{Name: "A"})
	c := s.Clone()
	c.Reorder(FieldName, sortByName)

	assert.Equal(t, []string{"B", "A"}, names(s.List()))
	assert.Equal(t, Unordered, s.Order())
	assert.Equal(t, []string{"A", "B"}, names(c.List()))
	assert.Equal(t, s.Cap(), c.Cap())
}

func TestArrayStore_LookupsNormalizeLikeNewRecord(t *testing.T) {
	for _, input := range []string{"Cafe\u0301", " Kit "} {
		t.Run(input, func(t *testing.T) {
			rec, err := NewRecord(input, " cura ", 2)
			require.NoError(t, err)
			s := newArray(t, 3, Record{Name: "Alfa"}, rec)

			res := s.LinearSearch(input)
			assert.True(t, res.Found)
			assert.Equal(t, 1, res.Index)

			s.Reorder(FieldName, sortByName)
			bin, err := s.BinarySearch(NameKey(input))
			require.NoError(t, err)
			assert.True(t, bin.Found)

			got, err := s.RemoveByName(input)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
			assert.Equal(t, []string{"Alfa"}, names(s.List()))
		})
	}
}

func TestCategoryKey_Normalizes(t *testing.T) {
	assert.Equal(t, "caf\u00e9", CategoryKey(" cafe\u0301 ").Text)
}
