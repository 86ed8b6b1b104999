package engine

import (
	"fmt"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

// PositionKind identifies a slot in the traversal position space.
type PositionKind int

const (
	// PosWelcome is the welcome pseudo-position every session starts at.
	PosWelcome PositionKind = iota

	// PosRespondentInfo is the respondent-details pseudo-position,
	// present only when the survey is non-anonymous.
	PosRespondentInfo

	// PosQuestion is a linear index into the question sequence.
	PosQuestion

	// PosSubmitted is the terminal position: the session is ready to
	// finalize, whether it ran out of visible questions or a branch rule
	// ended it explicitly.
	PosSubmitted
)

// String returns a stable label for traces and logs.
func (k PositionKind) String() string {
	switch k {
	case PosWelcome:
		return "welcome"
	case PosRespondentInfo:
		return "respondent_info"
	case PosQuestion:
		return "question"
	case PosSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Position is the respondent's location in the flow. Index is
// meaningful only for PosQuestion.
type Position struct {
	Kind  PositionKind
	Index int
}

// String renders a position for traces: "welcome", "question[3]", etc.
func (p Position) String() string {
	if p.Kind == PosQuestion {
		return fmt.Sprintf("question[%d]", p.Index)
	}
	return p.Kind.String()
}

// DefaultMaxSteps bounds forward transitions per session. Branch jumps
// are not cycle-checked at authoring time, so a runaway configuration
// must terminate here instead of looping forever.
const DefaultMaxSteps = 1000

// Navigator owns the respondent's traversal position and computes where
// "next" and "back" lead, honoring both resolvers.
//
// The navigator is a pure function of (survey, position, answers): it
// re-evaluates visibility and branching from the CURRENT answer map on
// every forward transition, so editing a previous answer transparently
// recomputes the rest of the path. Nothing is cached.
//
// Not safe for concurrent use; each respondent session drives exactly
// one Navigator from one goroutine.
type Navigator struct {
	survey  *survey.Survey
	answers answer.Map

	pos      Position
	trail    []Position
	maxSteps int
	steps    int

	endedByBranch bool
	stepsExceeded bool
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithMaxSteps overrides the forward-transition budget.
// Use a small value in tests exercising cycle defense.
func WithMaxSteps(n int) NavigatorOption {
	return func(nav *Navigator) {
		nav.maxSteps = n
	}
}

// NewNavigator creates a navigator positioned at the welcome screen.
//
// The answer map is held by reference: the caller mutates it as the
// respondent answers, and every later transition is evaluated against
// the accumulated state at that moment.
func NewNavigator(s *survey.Survey, answers answer.Map, opts ...NavigatorOption) *Navigator {
	if answers == nil {
		answers = answer.Map{}
	}
	nav := &Navigator{
		survey:   s,
		answers:  answers,
		pos:      Position{Kind: PosWelcome},
		trail:    []Position{{Kind: PosWelcome}},
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(nav)
	}
	return nav
}

// Position returns the current position.
func (n *Navigator) Position() Position {
	return n.pos
}

// Trail returns every position entered so far, in order. The trail is
// what replay verification and golden traces compare.
func (n *Navigator) Trail() []Position {
	out := make([]Position, len(n.trail))
	copy(out, n.trail)
	return out
}

// EndedByBranch reports whether the terminal position was reached via an
// explicit branch end action rather than by exhausting the questions.
func (n *Navigator) EndedByBranch() bool {
	return n.endedByBranch
}

// StepsExceeded reports whether the traversal budget terminated the
// session. A true value almost always means the branch configuration
// contains a jump cycle.
func (n *Navigator) StepsExceeded() bool {
	return n.stepsExceeded
}

// Current returns the question at the current position, or nil for
// pseudo- and terminal positions.
func (n *Navigator) Current() *survey.Question {
	if n.pos.Kind != PosQuestion {
		return nil
	}
	return &n.survey.Questions[n.pos.Index]
}

// Forward advances to the next position. Returns the new position and
// whether a transition happened: blocked validation and terminal
// positions are no-ops.
func (n *Navigator) Forward() (Position, bool) {
	if n.pos.Kind == PosSubmitted {
		return n.pos, false
	}
	if !n.CanProceed() {
		return n.pos, false
	}

	n.steps++
	if n.steps > n.maxSteps {
		n.stepsExceeded = true
		return n.moveTo(Position{Kind: PosSubmitted}), true
	}

	switch n.pos.Kind {
	case PosWelcome:
		if !n.survey.Anonymous {
			return n.moveTo(Position{Kind: PosRespondentInfo}), true
		}
		return n.moveTo(n.firstVisibleFrom(0)), true

	case PosRespondentInfo:
		return n.moveTo(n.firstVisibleFrom(0)), true

	case PosQuestion:
		return n.moveTo(n.afterQuestion(n.pos.Index)), true
	}

	return n.pos, false
}

// Back retreats to the previous visible position. Only skip logic is
// consulted going backward - branch logic governs forward flow only, so
// a respondent who arrived by jump walks back through whatever is
// visible, not through the jump. Backward transitions are never blocked
// by validation.
func (n *Navigator) Back() (Position, bool) {
	switch n.pos.Kind {
	case PosWelcome, PosSubmitted:
		return n.pos, false

	case PosRespondentInfo:
		return n.moveTo(Position{Kind: PosWelcome}), true

	case PosQuestion:
		for i := n.pos.Index - 1; i >= 0; i-- {
			if ShouldShow(&n.survey.Questions[i], n.answers) {
				return n.moveTo(Position{Kind: PosQuestion, Index: i}), true
			}
		}
		if !n.survey.Anonymous {
			return n.moveTo(Position{Kind: PosRespondentInfo}), true
		}
		return n.moveTo(Position{Kind: PosWelcome}), true
	}

	return n.pos, false
}

// afterQuestion resolves the question's branch logic and computes the
// position that follows it.
func (n *Navigator) afterQuestion(i int) Position {
	q := &n.survey.Questions[i]

	switch out := ResolveBranch(q, n.answers); out.Type {
	case survey.ActionEnd:
		// Ready to finalize, not silently discarded.
		n.endedByBranch = true
		return Position{Kind: PosSubmitted}

	case survey.ActionJump:
		target := n.survey.IndexOf(out.TargetID)
		if target < 0 {
			// Dangling jump target: fall through to the default forward
			// scan rather than failing the session.
			return n.firstVisibleFrom(i + 1)
		}
		if ShouldShow(&n.survey.Questions[target], n.answers) {
			return Position{Kind: PosQuestion, Index: target}
		}
		// The target itself is hidden: keep scanning forward from the
		// target so the branch's intent is not silently skipped.
		return n.firstVisibleFrom(target + 1)

	default:
		return n.firstVisibleFrom(i + 1)
	}
}

// firstVisibleFrom scans forward from index i for the first question
// whose skip logic permits display. No visible question means the
// session is ready to submit.
func (n *Navigator) firstVisibleFrom(i int) Position {
	for ; i < len(n.survey.Questions); i++ {
		if ShouldShow(&n.survey.Questions[i], n.answers) {
			return Position{Kind: PosQuestion, Index: i}
		}
	}
	return Position{Kind: PosSubmitted}
}

func (n *Navigator) moveTo(p Position) Position {
	n.pos = p
	n.trail = append(n.trail, p)
	return p
}
