package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/loader"
	"github.com/pathlight/surveyflow/internal/session"
	"github.com/pathlight/surveyflow/internal/survey"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	AnswersPath string
}

// TraceStep is one visited position in a trace.
type TraceStep struct {
	Position   string `json:"position"`
	QuestionID string `json:"question_id,omitempty"`
	Title      string `json:"title,omitempty"` // piped title as the respondent would see it
}

// TraceResult holds the full trace for one (survey, answers) pair.
type TraceResult struct {
	SurveyID      string      `json:"survey_id"`
	Steps         []TraceStep `json:"steps"`
	EndedByBranch bool        `json:"ended_by_branch"`
	StepsExceeded bool        `json:"steps_exceeded"`
	PathHash      string      `json:"path_hash"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <survey-file>",
		Short: "Trace the traversal a fixed answer set produces",
		Long: `Trace the path through a survey for a fixed answer set.

Drives a fresh navigator forward from the welcome screen until the
terminal position (or a validation block) and prints every visited
position with the piped question title. The engine is deterministic:
the same survey and answers always produce the same trace.

Examples:
  surveyflow trace survey.yaml --answers answers.json
  surveyflow trace survey.yaml --answers answers.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.AnswersPath, "answers", "", "path to JSON answers file")

	return cmd
}

func runTrace(opts *TraceOptions, surveyPath string, cmd *cobra.Command) error {
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

	answers := answer.Map{}
	if opts.AnswersPath != "" {
		answers, err = loader.LoadAnswers(opts.AnswersPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load answers", err)
		}
	}

	result, err := buildTrace(sv, answers)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to trace", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputTraceText(formatter, result)
}

// buildTrace drives a navigator over the answers and annotates every
// visited position with the question it lands on.
func buildTrace(sv *survey.Survey, answers answer.Map) (TraceResult, error) {
	nav := engine.NewNavigator(sv, answers)
	for {
		pos, moved := nav.Forward()
		if !moved || pos.Kind == engine.PosSubmitted {
			break
		}
	}

	trail := nav.Trail()
	steps := make([]TraceStep, len(trail))
	for i, pos := range trail {
		step := TraceStep{Position: pos.String()}
		if pos.Kind == engine.PosQuestion {
			q := &sv.Questions[pos.Index]
			step.QuestionID = q.ID
			step.Title = engine.Pipe(q.Title, sv, answers)
		}
		steps[i] = step
	}

	hash, err := session.PathHash(trail, answers)
	if err != nil {
		return TraceResult{}, err
	}

	return TraceResult{
		SurveyID:      sv.ID,
		Steps:         steps,
		EndedByBranch: nav.EndedByBranch(),
		StepsExceeded: nav.StepsExceeded(),
		PathHash:      hash,
	}, nil
}

func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Trace: %s\n\n", result.SurveyID)
	for _, step := range result.Steps {
		if step.QuestionID != "" {
			fmt.Fprintf(w, "  %-14s %s  %q\n", step.Position, step.QuestionID, step.Title)
			continue
		}
		fmt.Fprintf(w, "  %s\n", step.Position)
	}

	fmt.Fprintln(w)
	if result.EndedByBranch {
		fmt.Fprintln(w, "Ended by branch rule.")
	}
	if result.StepsExceeded {
		fmt.Fprintln(w, "Warning: step budget exceeded (jump cycle suspected).")
	}
	fmt.Fprintf(w, "Path hash: %s\n", result.PathHash)
	return nil
}
