package harness

import (
	"context"
	"fmt"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/loader"
	"github.com/pathlight/surveyflow/internal/session"
	"github.com/pathlight/surveyflow/internal/survey"
)

// TraceEvent is one entry in a scenario's execution trace.
type TraceEvent struct {
	// Kind is "answer", "move", "back", or "blocked".
	Kind string `json:"kind"`

	// Question and Value are set for answer events.
	Question string `json:"question,omitempty"`
	Value    string `json:"value,omitempty"` // canonical JSON encoding

	// Position is the position label after the event (move/back/blocked).
	Position string `json:"position,omitempty"`

	// Title is the piped title at the position, when it is a question.
	Title string `json:"title,omitempty"`
}

// Result holds everything a scenario execution produced.
type Result struct {
	Trace         []TraceEvent
	FinalPosition string
	EndedByBranch bool
	PathHash      string
}

// Run executes a scenario: loads the survey, drives an in-memory
// session through the steps, and returns the execution trace.
//
// Step semantics mirror a respondent UI: "next" that cannot move (a
// required question is unanswered, or the session already submitted)
// records a blocked event instead of failing, because blocked forward
// movement is engine behavior worth asserting on.
func Run(scenario *Scenario) (*Result, error) {
	sv, err := loader.LoadSurvey(scenario.Survey)
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}

	ctx := context.Background()
	sess, err := session.New(ctx, nil, sv, session.NewFixedGenerator(scenario.Name))
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	result := &Result{}
	for i, step := range scenario.Steps {
		switch step.Do {
		case StepAnswer:
			v, err := convertValue(step.Value)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			if err := sess.Answer(ctx, step.Question, v); err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			encoded, err := answer.MarshalCanonical(v)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			result.Trace = append(result.Trace, TraceEvent{
				Kind:     StepAnswer,
				Question: step.Question,
				Value:    string(encoded),
			})

		case StepNext:
			pos, moved, err := sess.Next(ctx)
			if err != nil {
				return nil, fmt.Errorf("steps[%d]: %w", i, err)
			}
			kind := "move"
			if !moved {
				kind = "blocked"
			}
			result.Trace = append(result.Trace, positionEvent(kind, pos, sess, sv))

		case StepBack:
			pos, moved := sess.Back()
			kind := "back"
			if !moved {
				kind = "blocked"
			}
			result.Trace = append(result.Trace, positionEvent(kind, pos, sess, sv))
		}
	}

	result.FinalPosition = sess.Position().String()
	result.EndedByBranch = sess.EndedByBranch()

	hash, err := session.PathHash(session.Path(sv, sess.Answers()), sess.Answers())
	if err != nil {
		return nil, fmt.Errorf("path hash: %w", err)
	}
	result.PathHash = hash

	return result, nil
}

func positionEvent(kind string, pos engine.Position, sess *session.Session, sv *survey.Survey) TraceEvent {
	ev := TraceEvent{Kind: kind, Position: pos.String()}
	if q := sess.Current(); q != nil {
		ev.Question = q.ID
		ev.Title = engine.Pipe(q.Title, sv, sess.Answers())
	}
	return ev
}

// convertValue maps a YAML scalar or collection onto an answer value.
// Integers and floats both become numbers; string lists become list
// answers; string-keyed maps become number or text maps depending on
// their values, matching the wire decoding rules.
func convertValue(v interface{}) (answer.Value, error) {
	switch x := v.(type) {
	case string:
		return answer.Text(x), nil
	case bool:
		return answer.Bool(x), nil
	case int:
		return answer.Number(float64(x)), nil
	case float64:
		return answer.Number(x), nil
	case []interface{}:
		items := make([]string, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list answers must contain strings, got %T", item)
			}
			items[i] = s
		}
		return answer.List(items), nil
	case map[string]interface{}:
		allNumeric := len(x) > 0
		for _, item := range x {
			switch item.(type) {
			case int, float64:
			default:
				allNumeric = false
			}
		}
		if allNumeric {
			m := make(map[string]float64, len(x))
			for k, item := range x {
				switch n := item.(type) {
				case int:
					m[k] = float64(n)
				case float64:
					m[k] = n
				}
			}
			return answer.NumberMap(m), nil
		}
		m := make(map[string]string, len(x))
		for k, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("map answers must be all-numeric or all-string, got %T", item)
			}
			m[k] = s
		}
		return answer.TextMap(m), nil
	default:
		return nil, fmt.Errorf("unsupported answer value type %T", v)
	}
}
