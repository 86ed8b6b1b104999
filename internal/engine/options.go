package engine

import (
	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// ResolveOptions computes the option list a question offers right now.
//
// Static questions (no option source, or any source type other than
// carry_forward) return their own option list unchanged. Carry-forward
// questions derive their list from the source question's own options,
// filtered against the respondent's answer to the source:
//
//   - selected: options the respondent picked, intersected with the
//     source's option list as a defensive filter against stale values
//   - not_selected: the source's options minus the picked ones
//   - all: the source's full option list, used to mirror rather than
//     restrict
//
// A dangling source falls back to the question's static options - a
// misconfigured source degrades the question, never the session.
func ResolveOptions(q *survey.Question, s *survey.Survey, answers answer.Map) []string {
	src := q.Settings.Source
	if src == nil || src.Type != survey.SourceTypeCarryForward {
		return q.Options
	}

	source := s.ByID(src.SourceQuestionID)
	if source == nil {
		return q.Options
	}

	if src.Mode == survey.ModeAll {
		return source.Options
	}

	selected := make(map[string]bool)
	for _, v := range answer.ToList(answers[source.ID]) {
		selected[v] = true
	}

	var out []string
	switch src.Mode {
	case survey.ModeSelected:
		for _, opt := range source.Options {
			if selected[opt] {
				out = append(out, opt)
			}
		}
	case survey.ModeNotSelected:
		for _, opt := range source.Options {
			if !selected[opt] {
				out = append(out, opt)
			}
		}
	default:
		return q.Options
	}
	return out
}
