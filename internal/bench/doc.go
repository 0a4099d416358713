// Package bench times sort invocations and compares algorithms.
//
// Timing wraps a single synchronous call: one clock reading before, one after.
// Comparison counts come from the sort itself, so a report carries both the
// wall-clock cost and the machine-independent cost of each run.
//
// Clock is injectable. Production code uses SystemClock, whose readings carry
// Go's monotonic component; tests use a stepping fake so elapsed times are exact.
package bench
