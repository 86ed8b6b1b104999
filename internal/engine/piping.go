package engine

import (
	"regexp"
	"strings"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// pipeToken matches {{questionId}} placeholders. Non-greedy and
// non-nested: the body may not contain braces.
var pipeToken = regexp.MustCompile(`\{\{([^{}]+?)\}\}`)

// placeholderLimit caps the bracketed fallback rendering. The kept title
// prefix leaves room for the bracket and ellipsis so the whole
// placeholder stays within the limit.
const placeholderLimit = 30

// Pipe replaces {{questionId}} tokens in question text with a rendering
// of the referenced prior answer.
//
// An absent or empty answer renders a visible bracketed placeholder built
// from the referenced question's title (or the raw id when the question
// cannot be found) - never an error. Lists join with commas;
// address-shaped composites join their ordered fields skipping blanks;
// other composites fall back to their canonical JSON form, which is
// readable without promising round-trip fidelity.
func Pipe(text string, s *survey.Survey, answers answer.Map) string {
	return pipeToken.ReplaceAllStringFunc(text, func(token string) string {
		id := strings.TrimSpace(pipeToken.FindStringSubmatch(token)[1])

		val, ok := answers[id]
		if !ok || answer.IsEmpty(val) {
			q := s.ByID(id)
			if q == nil {
				return id
			}
			return titlePlaceholder(q.Title)
		}

		return renderValue(val)
	})
}

// titlePlaceholder renders "[<title prefix>...]" for an unanswered
// reference, truncating the title so the result stays readable inline.
func titlePlaceholder(title string) string {
	keep := placeholderLimit - 4 // bracket and ellipsis count against the limit
	r := []rune(title)
	if len(r) > keep {
		r = r[:keep]
	}
	return "[" + string(r) + "...]"
}

// addressFields is the fixed rendering order for address-shaped answers.
var addressFields = []string{"street", "city", "state", "zip", "country"}

func renderValue(v answer.Value) string {
	switch val := v.(type) {
	case answer.List:
		return strings.Join(val, ", ")

	case answer.TextMap:
		// An address-shaped composite joins its ordered fields,
		// skipping blanks.
		if _, isAddress := val["street"]; isAddress {
			var parts []string
			for _, f := range addressFields {
				if p := strings.TrimSpace(val[f]); p != "" {
					parts = append(parts, p)
				}
			}
			return strings.Join(parts, ", ")
		}
		return canonicalRender(val)

	case answer.NumberMap:
		return canonicalRender(val)

	default:
		return answer.CompareString(v)
	}
}

func canonicalRender(v answer.Value) string {
	b, err := answer.MarshalCanonical(v)
	if err != nil {
		return ""
	}
	return string(b)
}
