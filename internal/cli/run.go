package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/loader"
	"github.com/pathlight/surveyflow/internal/session"
	"github.com/pathlight/surveyflow/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	AnswersPath string
	Database    string
	Token       string // optional fixed token for reproducible runs
}

// RunResult holds the outcome of one recorded session.
type RunResult struct {
	Token         string `json:"token"`
	FinalPosition string `json:"final_position"`
	Submitted     bool   `json:"submitted"`
	EndedByBranch bool   `json:"ended_by_branch"`
	Answered      int    `json:"answered"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <survey-file>",
		Short: "Run a session from an answers file and record it",
		Long: `Run a respondent session against the store.

The session walks forward from the welcome screen. At each question the
answer file is consulted: a present answer is recorded as an event and
the session advances; a missing answer on an optional question advances
without recording; a missing answer on a required question stops the
run with the session left active.

Reaching the terminal position finalizes the session with its path
hash, which "surveyflow replay" later verifies.

Examples:
  surveyflow run survey.yaml --answers answers.json --db sessions.db
  surveyflow run survey.yaml --answers answers.json --db sessions.db --token run-1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AnswersPath, "answers", "", "path to JSON answers file (required)")
	_ = cmd.MarkFlagRequired("answers")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Token, "token", "", "fixed session token (default: generated UUIDv7)")

	return cmd
}

func runRun(opts *RunOptions, surveyPath string, cmd *cobra.Command) error {
	ctx := context.Background()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sv, err := loader.LoadSurvey(surveyPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load survey", err)
	}

	answers, err := loader.LoadAnswers(opts.AnswersPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load answers", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var gen session.TokenGenerator = session.UUIDv7Generator{}
	if opts.Token != "" {
		gen = session.NewFixedGenerator(opts.Token)
	}

	s, err := session.New(ctx, st, sv, gen)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open session", err)
	}

	answered := 0
	for {
		// Answer the current question first so proceed validation and
		// downstream skip logic see the accumulated state.
		if q := s.Current(); q != nil {
			if v, ok := answers[q.ID]; ok {
				if err := s.Answer(ctx, q.ID, v); err != nil {
					return WrapExitError(ExitCommandError, "failed to record answer", err)
				}
				answered++
				formatter.VerboseLog("answered %s", q.ID)
			}
		}

		pos, moved, err := s.Next(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to advance session", err)
		}
		if !moved || pos.Kind == engine.PosSubmitted {
			break
		}
	}

	result := RunResult{
		Token:         s.Token(),
		FinalPosition: s.Position().String(),
		Submitted:     s.Position().Kind == engine.PosSubmitted,
		EndedByBranch: s.EndedByBranch(),
		Answered:      answered,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Session %s\n", result.Token)
	fmt.Fprintf(w, "  Answered: %d\n", result.Answered)
	fmt.Fprintf(w, "  Final position: %s\n", result.FinalPosition)
	if result.Submitted {
		fmt.Fprintln(w, "✓ Submitted")
	} else {
		fmt.Fprintln(w, "Session left active (blocked by a required question).")
	}
	return nil
}
