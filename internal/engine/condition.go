package engine

import (
	"strings"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// Evaluate checks a single atomic condition against the answer map.
//
// The emptiness operators look only at the referenced answer's presence
// and shape; they never consult the condition's comparison value. For
// every other operator a missing answer is false - a prior answer the
// respondent never gave can never satisfy a positive condition.
//
// Malformed conditions degrade to false, never to an error.
func Evaluate(cond survey.Condition, answers answer.Map) bool {
	val, present := answers[cond.QuestionID]

	switch cond.Operator {
	case survey.OpIsEmpty:
		return !present || answer.IsEmpty(val)

	case survey.OpIsNotEmpty:
		return present && !answer.IsEmpty(val)
	}

	if !present {
		return false
	}

	switch cond.Operator {
	case survey.OpEquals:
		if list, ok := val.(answer.List); ok {
			return containsItem(list, cond.Value)
		}
		return answer.CompareString(val) == cond.Value

	case survey.OpNotEquals:
		if list, ok := val.(answer.List); ok {
			return !containsItem(list, cond.Value)
		}
		return answer.CompareString(val) != cond.Value

	case survey.OpContains:
		haystack := strings.ToLower(answer.CompareString(val))
		return strings.Contains(haystack, strings.ToLower(cond.Value))

	case survey.OpGreaterThan:
		// NaN on either side makes the comparison false. Accepted, not
		// special-cased.
		return answer.CompareNumber(val) > answer.ParseNumber(cond.Value)

	case survey.OpLessThan:
		return answer.CompareNumber(val) < answer.ParseNumber(cond.Value)

	default:
		return false
	}
}

// Combine folds a list of evaluated condition results.
//
// An empty list combined with "all" is vacuously true - this backs the
// "no conditions configured means the rule always applies" default used
// by skip logic and branch rules.
func Combine(results []bool, mode survey.Combinator) bool {
	if mode == survey.CombineAny {
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}

	// "all" (and any unrecognized combinator) requires every result.
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

// evaluateConditions evaluates a condition list and combines the results.
func evaluateConditions(conds []survey.Condition, mode survey.Combinator, answers answer.Map) bool {
	results := make([]bool, len(conds))
	for i, c := range conds {
		results[i] = Evaluate(c, answers)
	}
	return Combine(results, mode)
}

func containsItem(list answer.List, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
