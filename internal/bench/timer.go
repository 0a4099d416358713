package bench

import (
	"log/slog"
	"time"

	"github.com/roach88/lootbench/internal/inventory"
	"github.com/roach88/lootbench/internal/sorting"
)

// Measurement is the cost of one timed operation.
type Measurement struct {
	Elapsed     time.Duration `json:"elapsed_ns"`
	Comparisons int           `json:"comparisons"`
}

// Timer measures sort invocations.
type Timer struct {
	clock   Clock
	metrics *Metrics
	logger  *slog.Logger
}

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithClock replaces SystemClock.
func WithClock(c Clock) TimerOption {
	return func(t *Timer) { t.clock = c }
}

// WithMetrics records every sort measurement into m.
func WithMetrics(m *Metrics) TimerOption {
	return func(t *Timer) { t.metrics = m }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) TimerOption {
	return func(t *Timer) { t.logger = l }
}

// NewTimer creates a Timer reading SystemClock unless configured otherwise.
func NewTimer(opts ...TimerOption) *Timer {
	t := &Timer{clock: SystemClock{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TimedRun reads the clock immediately before and after op and returns the
// elapsed time with the comparison count op reported. It never retries.
func (t *Timer) TimedRun(op func() int) Measurement {
	start := t.clock.Now()
	comparisons := op()
	end := t.clock.Now()
	return Measurement{Elapsed: end.Sub(start), Comparisons: comparisons}
}

// Sort runs alg over s under TimedRun.
func (t *Timer) Sort(alg sorting.Algorithm, s *inventory.ArrayStore) Measurement {
	m := t.TimedRun(func() int { return alg.Run(s) })
	t.logger.Debug("sort finished",
		"algorithm", alg.String(),
		"key", alg.Key().String(),
		"elements", s.Len(),
		"comparisons", m.Comparisons,
		"elapsed", m.Elapsed,
	)
	if t.metrics != nil {
		t.metrics.ObserveSort(alg, m)
	}
	return m
}
