package session

import (
	"strings"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/survey"
)

// Path computes the forward path a fixed answer set produces: a fresh
// navigator driven forward from welcome until it reaches the terminal
// position or is blocked by proceed validation.
//
// This is the replayable artifact - the engine is deterministic, so the
// same (survey, answers) pair must always produce the same path.
func Path(s *survey.Survey, answers answer.Map) []engine.Position {
	nav := engine.NewNavigator(s, answers)
	for {
		pos, moved := nav.Forward()
		if !moved || pos.Kind == engine.PosSubmitted {
			return nav.Trail()
		}
	}
}

// PathHash digests a path together with the answer snapshot that
// produced it. Stored at submit time; replay recomputes and compares.
func PathHash(path []engine.Position, answers answer.Map) (string, error) {
	snapshot, err := answer.MarshalMapCanonical(answers)
	if err != nil {
		return "", err
	}

	labels := make([]string, len(path))
	for i, p := range path {
		labels[i] = p.String()
	}

	var b strings.Builder
	b.WriteString(strings.Join(labels, "\n"))
	b.WriteByte('\n')
	b.Write(snapshot)
	return answer.Digest([]byte(b.String())), nil
}
