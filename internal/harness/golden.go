package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// snapshot is the serialized form of a scenario run, compared against a
// checked-in golden file. Signature hashes and plan IDs are excluded so
// goldens stay reviewable by hand.
type snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Steps        []StepResult `json:"steps"`
}

// RunGolden loads a scenario, runs it, and compares the step results
// against testdata/golden/<scenario name>.golden. Expectation failures in
// the scenario itself fail the test before the golden comparison.
//
// Regenerate goldens with: go test ./internal/harness -update
func RunGolden(t *testing.T, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	result, err := Run(context.Background(), s)
	if err != nil {
		t.Fatalf("run scenario %s: %v", s.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", s.Name, msg)
	}
	if !result.Pass {
		return
	}

	data, err := json.MarshalIndent(snapshot{ScenarioName: s.Name, Steps: result.Steps}, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)
}
