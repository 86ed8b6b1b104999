package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlight/surveyflow/internal/loader"
	"github.com/pathlight/surveyflow/internal/session"
	"github.com/pathlight/surveyflow/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Token    string // optional - specific session only
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []session.Result `json:"sessions"`
	TotalSessions    int              `json:"total_sessions"`
	AllDeterministic bool             `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <survey-file>",
		Short: "Replay stored sessions and verify determinism",
		Long: `Replay stored sessions against a survey definition.

For each session the answer event log is rebuilt in seq order, a fresh
navigator is driven over the rebuilt answers, and the resulting path
hash is compared against the hash recorded when the session submitted.
Abandoned and still-active sessions have no recorded hash and are
reported as non-deterministic.

Exit codes:
  0 - All replayed sessions are deterministic
  1 - At least one session failed verification
  2 - Command error (database not found, etc.)

Examples:
  surveyflow replay survey.yaml --db sessions.db
  surveyflow replay survey.yaml --db sessions.db --session run-1
  surveyflow replay survey.yaml --db sessions.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplayCmd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Token, "session", "", "replay specific session only")

	return cmd
}

func runReplayCmd(opts *ReplayOptions, surveyPath string, cmd *cobra.Command) error {
	ctx := context.Background()

	sv, err := loader.LoadSurvey(surveyPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load survey", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var tokens []string
	if opts.Token != "" {
		tokens = []string{opts.Token}
	} else {
		tokens, err = st.ListSessionTokens(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	if len(tokens) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, ReplayResult{
				Sessions:         []session.Result{},
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	result := ReplayResult{
		Sessions:         make([]session.Result, 0, len(tokens)),
		TotalSessions:    len(tokens),
		AllDeterministic: true,
	}

	for _, token := range tokens {
		res, err := session.Replay(ctx, st, sv, token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", token), err)
		}

		result.Sessions = append(result.Sessions, res)
		if !res.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", result.TotalSessions)
	fmt.Fprintln(w)

	for _, s := range result.Sessions {
		status := "✓"
		if !s.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s (%s)\n", status, s.Token, s.State)

		if verbose {
			for _, pos := range s.Path {
				fmt.Fprintf(w, "    %s\n", pos)
			}
			fmt.Fprintf(w, "  Computed: %s\n", s.ComputedHash)
			fmt.Fprintf(w, "  Recorded: %s\n", s.RecordedHash)
		} else {
			fmt.Fprintf(w, "  Path: %d position(s)\n", len(s.Path))
		}

		if !s.Deterministic {
			fmt.Fprintln(w, "  Warning: path hash mismatch!")
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
