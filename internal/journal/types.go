package journal

// Run groups the measurements taken over one workload.
type Run struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
	Size     int    `json:"size"`
	Seed     uint64 `json:"seed"`
	Details  string `json:"details,omitempty"` // canonical JSON
	Seq      int64  `json:"seq"`
}

// SortMeasurement is one timed sort.
type SortMeasurement struct {
	RunID       string `json:"run_id"`
	Algorithm   string `json:"algorithm"`
	Key         string `json:"key"`
	Elements    int    `json:"elements"`
	Comparisons int    `json:"comparisons"`
	ElapsedNS   int64  `json:"elapsed_ns"`
	Seq         int64  `json:"seq"`
}

// SearchMeasurement is one search invocation.
type SearchMeasurement struct {
	RunID       string `json:"run_id"`
	Strategy    string `json:"strategy"` // "linear" or "binary"
	Target      string `json:"target"`
	Found       bool   `json:"found"`
	Comparisons int    `json:"comparisons"`
	Seq         int64  `json:"seq"`
}
