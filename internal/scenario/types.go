package scenario

import "github.com/roach88/lootbench/internal/inventory"

// TraceEvent records what one step did. Elapsed time is deliberately absent
// so traces are reproducible.
type TraceEvent struct {
	Step        int                `json:"step"`
	Op          string             `json:"op"`
	Target      string             `json:"target,omitempty"`
	Outcome     string             `json:"outcome"`
	Index       *int               `json:"index,omitempty"`
	Comparisons *int               `json:"comparisons,omitempty"`
	Length      int                `json:"length"`
	Order       string             `json:"order,omitempty"`
	Records     []inventory.Record `json:"records,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
