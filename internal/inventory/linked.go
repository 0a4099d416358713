package inventory

// node owns its record and, through next, the rest of the chain.
type node struct {
	rec  Record
	next *node
}

// LinkedStore is an unbounded singly-linked chain of records, newest first.
//
// head is the only entry point. Nodes are never handed out; callers see
// records by value. Not safe for concurrent use.
type LinkedStore struct {
	head *node
	size int

	// live counts nodes created and not yet released.
	live int
}

// NewLinkedStore creates an empty chain.
func NewLinkedStore() *LinkedStore {
	return &LinkedStore{}
}

// Len returns the number of records in the chain.
func (s *LinkedStore) Len() int { return s.size }

// Live returns the number of nodes allocated and not yet released.
// It equals Len for a consistent store and drops to zero after Clear.
func (s *LinkedStore) Live() int { return s.live }

// InsertFront prepends rec. The node is fully built before it is linked.
func (s *LinkedStore) InsertFront(rec Record) {
	n := &node{rec: rec, next: s.head}
	s.live++
	s.head = n
	s.size++
}

// RemoveByName unlinks the first node whose record is named name and returns
// its record. On ErrCodeNotFound the chain is unchanged.
func (s *LinkedStore) RemoveByName(name string) (Record, error) {
	name = normalizeName(name)
	var prev *node
	for cur := s.head; cur != nil; prev, cur = cur, cur.next {
		if cur.rec.Name != name {
			continue
		}
		if prev == nil {
			s.head = cur.next
		} else {
			prev.next = cur.next
		}
		s.release(cur)
		s.size--
		return cur.rec, nil
	}
	return Record{}, newNotFoundError(name)
}

// Each calls fn for every record from head to tail, stopping early if fn
// returns false. Each walk starts again from head.
func (s *LinkedStore) Each(fn func(Record) bool) {
	for cur := s.head; cur != nil; cur = cur.next {
		if !fn(cur.rec) {
			return
		}
	}
}

// List returns the records from head to tail.
func (s *LinkedStore) List() []Record {
	out := make([]Record, 0, s.size)
	s.Each(func(r Record) bool {
		out = append(out, r)
		return true
	})
	return out
}

// LinearSearch walks from head for the first record named name, counting one
// comparison per node inspected. The returned SearchResult has Index -1 since
// chain positions are not addressable.
func (s *LinkedStore) LinearSearch(name string) (Record, SearchResult) {
	name = normalizeName(name)
	res := SearchResult{Index: -1}
	for cur := s.head; cur != nil; cur = cur.next {
		res.Comparisons++
		if cur.rec.Name == name {
			res.Found = true
			return cur.rec, res
		}
	}
	return Record{}, res
}

// Clear releases every node from head to tail and empties the store.
// Calling it on an empty store does nothing.
func (s *LinkedStore) Clear() {
	cur := s.head
	s.head = nil
	for cur != nil {
		next := cur.next
		s.release(cur)
		cur = next
	}
	s.size = 0
}

// release detaches n so it no longer keeps the tail reachable.
func (s *LinkedStore) release(n *node) {
	n.next = nil
	s.live--
}
