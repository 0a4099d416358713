// Package journal provides SQLite-backed storage for benchmark measurements.
//
// A journal is an append-only log of runs. Each run groups the sort and
// search measurements taken over one workload:
//   - Runs: id (UUIDv7), label, capacity, workload size and seed
//   - Sort measurements: algorithm, key, elements, comparisons, elapsed_ns
//   - Search measurements: strategy, target, found, comparisons
//
// Inventory records themselves are never written; only what was measured.
//
// # Ordering
//
// Every row carries a seq from the journal's Sequence. All reads use
// ORDER BY seq ASC, so output order never depends on wall time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The default path ":memory:" keeps the journal for the lifetime of the
// process only.
package journal
