package inventory

import "fmt"

// ArrayStore is a fixed-capacity sequence of records with no gaps.
//
// The backing slice is allocated once at construction and never grows.
// Not safe for concurrent use.
type ArrayStore struct {
	records []Record // len == live records, cap == capacity
	order   OrderState
}

// NewArrayStore creates an empty store that holds at most capacity records.
func NewArrayStore(capacity int) (*ArrayStore, error) {
	if capacity <= 0 {
		return nil, &Error{
			Code:    ErrCodeInvalidRecord,
			Message: fmt.Sprintf("capacity must be positive, got %d", capacity),
		}
	}
	return &ArrayStore{records: make([]Record, 0, capacity)}, nil
}

// Len returns the number of live records.
func (s *ArrayStore) Len() int { return len(s.records) }

// Cap returns the fixed capacity.
func (s *ArrayStore) Cap() int { return cap(s.records) }

// Order returns the key the store is currently sorted by, or Unordered.
func (s *ArrayStore) Order() OrderState { return s.order }

// Insert appends rec at the end. Fails with ErrCodeFull at capacity.
func (s *ArrayStore) Insert(rec Record) error {
	if len(s.records) == cap(s.records) {
		return newFullError(cap(s.records))
	}
	s.records = append(s.records, rec)
	s.order = Unordered
	return nil
}

// RemoveByName removes the first record whose name equals name, shifting
// every later record one slot left.
//
// Order is reset to Unordered on success even though a removal never breaks
// an existing sort. On ErrCodeNotFound the store is left untouched.
func (s *ArrayStore) RemoveByName(name string) (Record, error) {
	name = normalizeName(name)
	idx := s.indexOf(name)
	if idx < 0 {
		return Record{}, newNotFoundError(name)
	}

	removed := s.records[idx]
	copy(s.records[idx:], s.records[idx+1:])
	s.records[len(s.records)-1] = Record{}
	s.records = s.records[:len(s.records)-1]
	s.order = Unordered
	return removed, nil
}

func (s *ArrayStore) indexOf(name string) int {
	for i := range s.records {
		if s.records[i].Name == name {
			return i
		}
	}
	return -1
}

// List returns a copy of the live records in storage order.
func (s *ArrayStore) List() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// At returns the record at index i. It panics if i is out of range.
func (s *ArrayStore) At(i int) Record { return s.records[i] }

// LinearSearch scans from index 0 for the first record named name.
// Every record inspected counts as one comparison, including the match.
func (s *ArrayStore) LinearSearch(name string) SearchResult {
	name = normalizeName(name)
	res := SearchResult{Index: -1}
	for i := range s.records {
		res.Comparisons++
		if s.records[i].Name == name {
			res.Index = i
			res.Found = true
			return res
		}
	}
	return res
}

// BinarySearch bisects the live records for key.
//
// The store must be sorted by key.Field; otherwise it fails with
// ErrCodeNotSorted before touching any record. A miss is not an error:
// it returns Found == false with the number of midpoints inspected.
func (s *ArrayStore) BinarySearch(key Key) (SearchResult, error) {
	if want := key.Field.Order(); s.order != want {
		return SearchResult{Index: -1}, newNotSortedError(want, s.order)
	}

	res := SearchResult{Index: -1}
	lo, hi := 0, len(s.records)
	for lo < hi {
		mid := lo + (hi-lo)/2
		res.Comparisons++
		switch c := key.compare(s.records[mid]); {
		case c == 0:
			res.Index = mid
			res.Found = true
			return res, nil
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return res, nil
}

// Reorder hands the live records to fn for in-place rearrangement and then
// marks the store as sorted by field. fn returns the number of comparisons it
// made, which Reorder passes through.
//
// This is the only way to move the store out of Unordered. fn must leave the
// records ordered on field and must not retain the slice.
func (s *ArrayStore) Reorder(field Field, fn func([]Record) int) int {
	n := fn(s.records)
	s.order = field.Order()
	return n
}

// Clone returns an independent copy with the same capacity, records and order.
func (s *ArrayStore) Clone() *ArrayStore {
	records := make([]Record, len(s.records), cap(s.records))
	copy(records, s.records)
	return &ArrayStore{records: records, order: s.order}
}
