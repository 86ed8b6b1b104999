// Package validate implements the authoring-time configuration checks:
// dangling logic references, carry-forward ordering violations, and
// static cycle analysis over the branch-jump graph.
//
// Nothing here runs on the respondent path. Violations are reported, not
// prevented - the engine tolerates every condition diagnosed here by
// degrading to safe behavior, so a published-but-broken survey loses
// quality rather than blocking respondents.
package validate

import (
	"fmt"

	"github.com/pathlight/surveyflow/internal/survey"
)

// Validation error codes (E100-E199).
const (
	// Question shape errors (E101-E109)
	ErrDuplicateQuestionID = "E101" // question id used more than once
	ErrDuplicateOption     = "E102" // option label repeated within a question

	// Branch logic errors (E110-E119)
	ErrDanglingConditionRef = "E110" // condition references unknown question id
	ErrDanglingJumpTarget   = "E111" // jump action targets unknown question id

	// Carry-forward errors (E120-E129)
	ErrMissingSource  = "E120" // source question id does not exist
	ErrSourceNoOption = "E121" // source question has no options
	ErrSourceNotPrior = "E122" // source is not strictly before the consumer
)

// Warning codes (W100-W199). Warnings flag configurations that work
// today but deserve an explicit authoring decision.
const (
	// WarnSkipForwardRef flags a skip condition referencing a question
	// positioned at or after its owner. The engine evaluates it anyway
	// (the answer is simply absent, so the condition is false), but the
	// author almost certainly meant a prior question.
	WarnSkipForwardRef = "W100"
)

// ValidationError is a single authoring-time configuration violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Warning is an advisory finding that does not fail validation.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Validate runs every static check over the full question list and
// returns all violations found. It never fails fast across questions,
// so the authoring UI can surface the complete picture at once.
func Validate(s *survey.Survey) []ValidationError {
	var errs []ValidationError

	ids := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if ids[q.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d].id", i),
				Message: fmt.Sprintf("duplicate question id %q", q.ID),
				Code:    ErrDuplicateQuestionID,
			})
		}
		ids[q.ID] = true

		seen := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			if seen[opt] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("questions[%d].options[%d]", i, j),
					Message: fmt.Sprintf("duplicate option %q in question %q", opt, q.ID),
					Code:    ErrDuplicateOption,
				})
			}
			seen[opt] = true
		}
	}

	errs = append(errs, validateBranchLogic(s)...)
	errs = append(errs, validateCarryForward(s)...)
	return errs
}

// validateBranchLogic checks that every branch condition reference and
// every jump target names an existing question. Jump targets may legally
// point in either direction, so ordering is deliberately not checked
// here - cycle analysis covers the associated risk.
func validateBranchLogic(s *survey.Survey) []ValidationError {
	var errs []ValidationError

	for i, q := range s.Questions {
		branch := q.Settings.Branch
		if branch == nil {
			continue
		}

		for ri, rule := range branch.Rules {
			for ci, cond := range rule.Conditions {
				if s.IndexOf(cond.QuestionID) < 0 {
					errs = append(errs, ValidationError{
						Field:   fmt.Sprintf("questions[%d].branch_logic.rules[%d].conditions[%d]", i, ri, ci),
						Message: fmt.Sprintf("condition references unknown question %q", cond.QuestionID),
						Code:    ErrDanglingConditionRef,
					})
				}
			}

			if rule.Action.Type == survey.ActionJump && s.IndexOf(rule.Action.TargetID) < 0 {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("questions[%d].branch_logic.rules[%d].action", i, ri),
					Message: fmt.Sprintf("jump targets unknown question %q", rule.Action.TargetID),
					Code:    ErrDanglingJumpTarget,
				})
			}
		}
	}

	return errs
}

// validateCarryForward checks that each carry-forward source exists, has
// at least one option, and sits strictly before the consuming question
// in the sequence. A missing source short-circuits the remaining checks
// for that question - they would only repeat the same root cause.
func validateCarryForward(s *survey.Survey) []ValidationError {
	var errs []ValidationError

	for i, q := range s.Questions {
		src := q.Settings.Source
		if src == nil || src.Type != survey.SourceTypeCarryForward {
			continue
		}

		field := fmt.Sprintf("questions[%d].option_source", i)

		srcIdx := s.IndexOf(src.SourceQuestionID)
		if srcIdx < 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("carry-forward source %q does not exist", src.SourceQuestionID),
				Code:    ErrMissingSource,
			})
			continue
		}

		if len(s.Questions[srcIdx].Options) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("carry-forward source %q has no options", src.SourceQuestionID),
				Code:    ErrSourceNoOption,
			})
		}

		if srcIdx >= i {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("carry-forward source %q must be positioned before question %q", src.SourceQuestionID, q.ID),
				Code:    ErrSourceNotPrior,
			})
		}
	}

	return errs
}

// AnalyzeSkipReferences reports skip conditions referencing questions at
// or after their owner. These are advisory: the engine's conservative
// missing-answer default keeps them harmless at respondent time, but
// they usually indicate an authoring mistake.
func AnalyzeSkipReferences(s *survey.Survey) []Warning {
	var warns []Warning

	for i, q := range s.Questions {
		skip := q.Settings.Skip
		if skip == nil {
			continue
		}
		for ci, cond := range skip.Conditions {
			srcIdx := s.IndexOf(cond.QuestionID)
			if srcIdx < 0 || srcIdx >= i {
				warns = append(warns, Warning{
					Field:   fmt.Sprintf("questions[%d].skip_logic.conditions[%d]", i, ci),
					Message: fmt.Sprintf("skip condition on question %q references %q, which is not positioned before it", q.ID, cond.QuestionID),
					Code:    WarnSkipForwardRef,
				})
			}
		}
	}

	return warns
}
