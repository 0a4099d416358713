// Package scenario runs scripted store sessions and checks their outcomes.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: remove_then_search
//	description: "Removal compacts the array and resets order"
//	store: array        # or "list"
//	capacity: 3         # array stores only; defaults to 10
//	steps:
//	  - op: insert
//	    record: { name: A, category: x, priority: 1 }
//	  - op: remove
//	    name: B
//	    expect: { outcome: NOT_FOUND }
//	  - op: sort
//	    algorithm: bubble
//	    expect: { comparisons: 3, order: sorted-by-name, names: [A, B, C] }
//	  - op: bsearch
//	    field: name
//	    key: C
//	    expect: { outcome: OK, index: 2 }
//
// Files are decoded strictly (unknown YAML fields are rejected) and then
// checked against an embedded CUE schema before any step runs.
//
// # Operations
//
//   - insert: build a record from raw fields and insert it (front of a list)
//   - remove: remove the first record with the given name
//   - list: snapshot the records in storage order
//   - search: linear search by name
//   - bsearch: binary search on field (array only)
//   - sort: run a sorting algorithm (array only)
//
// # Determinism
//
// Traces never include elapsed time, so identical scenarios produce
// byte-identical canonical JSON and can be compared against golden files.
// Linked stores are always cleared when a run ends, including on error.
package scenario
