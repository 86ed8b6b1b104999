package engine

import (
	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// Outcome is the branch resolution result for a question: advance to the
// next visible question, jump to a target, or end the survey.
type Outcome struct {
	Type     survey.ActionType
	TargetID string // set only for jump outcomes
}

// Next, End are the fixed outcomes shared by every resolution that
// carries no jump target.
var (
	Next = Outcome{Type: survey.ActionNext}
	End  = Outcome{Type: survey.ActionEnd}
)

// ResolveBranch decides what happens after the owning question is
// answered. Rules are scanned in authored order and the FIRST rule whose
// combined condition result is true wins - implemented as an ordered
// scan with early return, never a filter, to keep order sensitivity.
//
// Disabled branch logic or an empty rule list resolves to Next. When no
// rule matches, the configured default action applies (Next unless the
// default is end).
//
// The resolver considers only this question's own branch logic; it is
// unaware of any other question's configuration.
func ResolveBranch(q *survey.Question, answers answer.Map) Outcome {
	branch := q.Settings.Branch
	if branch == nil || !branch.Enabled || len(branch.Rules) == 0 {
		return Next
	}

	for _, rule := range branch.Rules {
		if !evaluateConditions(rule.Conditions, rule.Combinator, answers) {
			continue
		}
		switch rule.Action.Type {
		case survey.ActionJump:
			return Outcome{Type: survey.ActionJump, TargetID: rule.Action.TargetID}
		case survey.ActionEnd:
			return End
		default:
			return Next
		}
	}

	if branch.DefaultAction == survey.ActionEnd {
		return End
	}
	return Next
}
