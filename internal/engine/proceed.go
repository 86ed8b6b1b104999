package engine

import (
	"strings"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// CanProceed reports whether a forward transition is permitted from the
// current position. Pseudo-positions always permit proceeding; question
// positions apply per-type required validation. Backward transitions
// never consult this.
func (n *Navigator) CanProceed() bool {
	if n.pos.Kind != PosQuestion {
		return true
	}
	q := &n.survey.Questions[n.pos.Index]
	return n.answerComplete(q)
}

// answerComplete applies the type-specific proceed validation for one
// question against the current answers.
//
// Display types collect nothing and always pass. Optional questions pass
// regardless of answer state. A required question blocks while its
// answer is absent, empty, or semantically incomplete for its type.
func (n *Navigator) answerComplete(q *survey.Question) bool {
	if q.Type.IsDisplay() {
		return true
	}
	if !q.Required {
		return true
	}

	val, ok := n.answers[q.ID]
	if !ok || answer.IsEmpty(val) {
		return false
	}

	switch q.Type {
	case survey.TypeAddress:
		// A required address needs at least a non-blank street line.
		tm, ok := val.(answer.TextMap)
		return ok && strings.TrimSpace(tm["street"]) != ""

	case survey.TypeContactInfo:
		tm, ok := val.(answer.TextMap)
		if !ok {
			return false
		}
		for _, v := range tm {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
		return false

	case survey.TypeMatrix:
		// Every row must be rated.
		nm, ok := val.(answer.NumberMap)
		if !ok {
			return false
		}
		for _, row := range q.Settings.Rows {
			if _, rated := nm[row]; !rated {
				return false
			}
		}
		return true

	case survey.TypeRanking:
		// Every offered item must be ranked.
		list, ok := val.(answer.List)
		if !ok {
			return false
		}
		ranked := make(map[string]bool, len(list))
		for _, item := range list {
			ranked[item] = true
		}
		for _, opt := range ResolveOptions(q, n.survey, n.answers) {
			if !ranked[opt] {
				return false
			}
		}
		return true

	case survey.TypeConstantSum:
		// The allocated total must equal the configured total exactly.
		nm, ok := val.(answer.NumberMap)
		if !ok {
			return false
		}
		var sum float64
		for _, v := range nm {
			sum += v
		}
		return sum == q.Settings.Total

	case survey.TypeLegal:
		// Consent must be an explicit true.
		b, ok := val.(answer.Bool)
		return ok && bool(b)

	default:
		// Presence of a non-empty value is enough for simple inputs.
		return true
	}
}
