package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlight/surveyflow/internal/answer"
)

// TestScenarios executes every scenario under testdata/scenarios and
// compares each trace against its golden file.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRunBlockedStepRecorded(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "linear_flow.yaml"))
	require.NoError(t, err)

	// Drop every answer step: the first "next" lands on the required
	// name question and every later "next" must record a blocked event.
	var steps []Step
	for _, step := range scenario.Steps {
		if step.Do == StepNext {
			steps = append(steps, step)
		}
	}
	scenario.Steps = steps

	result, err := Run(scenario)
	require.NoError(t, err)

	require.NotEmpty(t, result.Trace)
	assert.Equal(t, "move", result.Trace[0].Kind)
	for _, ev := range result.Trace[1:] {
		assert.Equal(t, "blocked", ev.Kind)
		assert.Equal(t, "question[0]", ev.Position)
	}
	assert.Equal(t, "question[0]", result.FinalPosition)
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want answer.Value
	}{
		{"string", "Ada", answer.Text("Ada")},
		{"bool", true, answer.Bool(true)},
		{"int", 7, answer.Number(7)},
		{"float", 2.5, answer.Number(2.5)},
		{"list", []interface{}{"A", "B"}, answer.List{"A", "B"}},
		{"number map", map[string]interface{}{"a": 1, "b": 2.5}, answer.NumberMap{"a": 1, "b": 2.5}},
		{"text map", map[string]interface{}{"street": "1 Main St"}, answer.TextMap{"street": "1 Main St"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertValue_Rejected(t *testing.T) {
	_, err := convertValue(nil)
	assert.Error(t, err)

	_, err = convertValue([]interface{}{"A", 1})
	assert.Error(t, err)

	_, err = convertValue(map[string]interface{}{"a": 1, "b": "x"})
	assert.Error(t, err)
}
