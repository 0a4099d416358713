// Package inventory implements the two record stores compared by lootbench.
//
// ArrayStore is a fixed-capacity contiguous sequence. It tracks which key, if
// any, the live records are currently ordered by (OrderState). Every insert or
// removal resets that state to Unordered, even when a removal would in fact
// keep the sequence sorted. Binary search refuses to run unless the state
// matches the requested key.
//
// LinkedStore is an unbounded singly-linked chain. Each node exclusively owns
// its successor and nodes never leave the package. Clear releases every node
// exactly once and may be called any number of times.
//
// Both stores report comparison counts as return values. No counters are kept
// between calls, so two stores (or two tests) never share state.
package inventory
