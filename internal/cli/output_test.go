package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(ExitFailure, "validation failed")
	assert.Equal(t, "validation failed", err.Error())

	wrapped := WrapExitError(ExitCommandError, "failed to open database", errors.New("no such file"))
	assert.Equal(t, "failed to open database: no such file", wrapped.Error())
	assert.ErrorContains(t, wrapped.Unwrap(), "no such file")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "boom")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))

	// Non-ExitError defaults to failure
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	// Wrapped ExitError is still found
	wrapped := WrapExitError(ExitCommandError, "outer", errors.New("inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Success(map[string]string{"key": "value"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success("all good"))
	assert.Contains(t, buf.String(), "all good")
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error("E111", "jump targets unknown question", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E111", resp.Error.Code)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("E101", "duplicate question id", nil))
	assert.Contains(t, buf.String(), "Error [E101]")
	assert.Contains(t, buf.String(), "duplicate question id")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	f.VerboseLog("loaded %d question(s)", 3)

	// Verbose output goes to stderr, keeping stdout parseable
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "loaded 3 question(s)")
}

func TestOutputFormatter_VerboseLogDisabled(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: false}

	f.VerboseLog("should not appear")
	assert.Empty(t, buf.String())
}
