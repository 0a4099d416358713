package bench

import "time"

// Clock supplies readings for elapsed-time measurement.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock. Subtracting two of its readings uses
// the monotonic component, so wall-clock adjustments never skew a measurement.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
