package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceFullPath(t *testing.T) {
	surveyPath := writeFixture(t, "survey.yaml", validSurveyYAML)
	answersPath := writeFixture(t, "answers.json", validAnswersJSON)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{surveyPath, "--answers", answersPath})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "welcome")
	assert.Contains(t, output, "question[0]")
	assert.Contains(t, output, "question[2]")
	assert.Contains(t, output, "submitted")
	assert.Contains(t, output, "Path hash:")

	// Piped title renders the prior answer
	assert.Contains(t, output, "Ada, which team?")
}

func TestTraceBranchEnd(t *testing.T) {
	surveyPath := writeFixture(t, "survey.yaml", validSurveyYAML)
	answersPath := writeFixture(t, "answers.json", `{"name": "Ada", "role": "Other"}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{surveyPath, "--answers", answersPath})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Ended by branch rule.")
	assert.NotContains(t, output, "question[2]")
}

func TestTraceJSON(t *testing.T) {
	surveyPath := writeFixture(t, "survey.yaml", validSurveyYAML)
	answersPath := writeFixture(t, "answers.json", validAnswersJSON)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{surveyPath, "--answers", answersPath})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTraceNoAnswersBlocksAtRequired(t *testing.T) {
	surveyPath := writeFixture(t, "survey.yaml", validSurveyYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTraceCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{surveyPath})

	err := cmd.Execute()
	require.NoError(t, err)

	// The required first question blocks the traversal there.
	output := buf.String()
	assert.Contains(t, output, "question[0]")
	assert.NotContains(t, output, "submitted")
}

func TestTraceDeterministicHash(t *testing.T) {
	surveyPath := writeFixture(t, "survey.yaml", validSurveyYAML)
	answersPath := writeFixture(t, "answers.json", validAnswersJSON)

	run := func() string {
		buf := &bytes.Buffer{}
		rootOpts := &RootOptions{Format: "json"}
		cmd := NewTraceCommand(rootOpts)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{surveyPath, "--answers", answersPath})
		require.NoError(t, cmd.Execute())

		var resp struct {
			Data TraceResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		return resp.Data.PathHash
	}

	assert.Equal(t, run(), run())
}
