package engine

import (
	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// ShouldShow decides whether a question is visible under the current
// answers. Disabled skip logic, or skip logic with zero conditions,
// always shows the question.
//
// The resolver is pure and order-independent across questions: it is
// invoked per question, never as a pass over the whole list.
func ShouldShow(q *survey.Question, answers answer.Map) bool {
	skip := q.Settings.Skip
	if skip == nil || !skip.Enabled || len(skip.Conditions) == 0 {
		return true
	}
	return evaluateConditions(skip.Conditions, skip.Combinator, answers)
}
