package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// Struct field order keeps the serialization deterministic, so golden
// comparisons are byte-stable.
type TraceSnapshot struct {
	ScenarioName  string       `json:"scenario_name"`
	Trace         []TraceEvent `json:"trace"`
	FinalPosition string       `json:"final_position"`
	EndedByBranch bool         `json:"ended_by_branch"`
	PathHash      string       `json:"path_hash"`
}

// RunWithGolden executes a scenario, checks its assertions, and compares
// the trace against a golden file stored in testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, failure := range Check(result, scenario.Assertions) {
		t.Error(failure)
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares a result's trace against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName:  scenarioName,
		Trace:         result.Trace,
		FinalPosition: result.FinalPosition,
		EndedByBranch: result.EndedByBranch,
		PathHash:      result.PathHash,
	}

	traceJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("marshal trace snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
}
