package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlight/surveyflow/internal/loader"
	"github.com/pathlight/surveyflow/internal/validate"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validate.ValidationError `json:"errors,omitempty"`
	Warnings []validate.Warning         `json:"warnings,omitempty"`
	Cycles   []validate.CycleWarning    `json:"cycles,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <survey-file>",
		Short: "Validate a survey definition",
		Long: `Validate a survey definition without running it.

Checks schema conformance, duplicate ids and options, dangling branch
and carry-forward references, forward skip references, and jump cycles.

Exit codes:
  0 - Definition is valid (warnings do not fail validation)
  1 - Validation errors found
  2 - Command error (file not found, parse failure, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	sv, err := loader.LoadSurvey(path)
	if err != nil {
		var loadErr *loader.LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		return WrapExitError(ExitCommandError, "failed to load survey", err)
	}

	formatter.VerboseLog("Loaded survey %q with %d question(s)", sv.ID, len(sv.Questions))

	result := ValidationResult{
		Errors:   validate.Validate(sv),
		Warnings: validate.AnalyzeSkipReferences(sv),
		Cycles:   validate.AnalyzeCycles(sv),
	}
	result.Valid = len(result.Errors) == 0

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

// outputValidateSuccess outputs successful validation results. Warnings
// and cycle findings are reported but never affect the exit code.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Survey definition valid")

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning %s: %s\n", w.Code, w.Message)
	}
	for _, c := range result.Cycles {
		fmt.Fprintf(formatter.Writer, "  cycle: %s\n", c.Message)
	}
	return nil
}

// outputValidationErrors outputs validation errors and fails the command.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Errors[0].Code,
				Message: result.Errors[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning %s %s: %s\n", w.Code, w.Field, w.Message)
	}
	for _, c := range result.Cycles {
		fmt.Fprintf(formatter.Writer, "  cycle: %s\n", c.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
