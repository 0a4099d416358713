package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lootbench/internal/report"
)

// TraceSnapshot is the golden-file form of a scenario run.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Store        string       `json:"store"`
	Trace        []TraceEvent `json:"trace"`
}

// Snapshot renders a result as canonical JSON.
func Snapshot(s *Scenario, result *Result) ([]byte, error) {
	return report.MarshalCanonical(TraceSnapshot{
		ScenarioName: s.Name,
		Store:        s.Store,
		Trace:        result.Trace,
	})
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/scenario -update
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return nil, err
	}

	traceJSON, err := Snapshot(s, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, traceJSON)

	return result, nil
}
