package harness

import "fmt"

// Check evaluates every assertion against a result and returns all
// failures. Assertions never fail fast, so a broken scenario reports
// the complete picture at once.
func Check(result *Result, assertions []Assertion) []error {
	var failures []error

	for i, a := range assertions {
		if err := checkOne(result, &a); err != nil {
			failures = append(failures, fmt.Errorf("assertions[%d] (%s): %w", i, a.Type, err))
		}
	}

	return failures
}

func checkOne(result *Result, a *Assertion) error {
	switch a.Type {
	case AssertFinalPosition:
		if result.FinalPosition != a.Position {
			return fmt.Errorf("expected final position %q, got %q", a.Position, result.FinalPosition)
		}

	case AssertEndedByBranch:
		if result.EndedByBranch != a.Value {
			return fmt.Errorf("expected ended_by_branch=%v, got %v", a.Value, result.EndedByBranch)
		}

	case AssertTrailContains:
		if !trailHas(result, a.Position) {
			return fmt.Errorf("position %q never visited", a.Position)
		}

	case AssertTrailAbsent:
		if trailHas(result, a.Position) {
			return fmt.Errorf("position %q was visited", a.Position)
		}

	case AssertPipedTitle:
		title, visited := lastTitleFor(result, a.Question)
		if !visited {
			return fmt.Errorf("question %q never visited", a.Question)
		}
		if title != a.Title {
			return fmt.Errorf("expected title %q, got %q", a.Title, title)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}

	return nil
}

func trailHas(result *Result, position string) bool {
	for _, ev := range result.Trace {
		if ev.Position == position {
			return true
		}
	}
	return false
}

// lastTitleFor returns the piped title the respondent last saw for a
// question. The LAST visit matters: piping re-renders from the current
// answers, so an edited upstream answer changes what a revisit shows.
func lastTitleFor(result *Result, questionID string) (string, bool) {
	title, visited := "", false
	for _, ev := range result.Trace {
		if ev.Kind != StepAnswer && ev.Question == questionID {
			title, visited = ev.Title, true
		}
	}
	return title, visited
}
